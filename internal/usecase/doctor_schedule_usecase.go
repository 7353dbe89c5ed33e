package usecase

import (
	"context"
	"errors"

	"medical-appointment-api/internal/converter"
	"medical-appointment-api/internal/delivery/dto"
	"medical-appointment-api/internal/domain/entity"
	"medical-appointment-api/internal/domain/repository"
	"medical-appointment-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrScheduleNotFound    = errors.New("schedule not found")
	ErrInvalidTimeRange    = errors.New("start time must be before end time")
	ErrInvalidClockFormat  = errors.New("invalid time format, use HH:MM")
	ErrScheduleDoctorUnset = errors.New("schedule doctor not found")
)

type DoctorScheduleUsecase interface {
	Create(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)
	GetByDoctorID(ctx context.Context, doctorID uuid.UUID) (*dto.ScheduleListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type doctorScheduleUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	scheduleRepo repository.DoctorScheduleRepository
	doctorRepo   repository.DoctorRepository
	slotCache    *service.SlotCacheService
	auditService service.AuditService
}

func NewDoctorScheduleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	scheduleRepo repository.DoctorScheduleRepository,
	doctorRepo repository.DoctorRepository,
	slotCache *service.SlotCacheService,
	auditService service.AuditService,
) DoctorScheduleUsecase {
	return &doctorScheduleUsecase{
		db:           db,
		log:          log,
		scheduleRepo: scheduleRepo,
		doctorRepo:   doctorRepo,
		slotCache:    slotCache,
		auditService: auditService,
	}
}

func validateClockRange(startTime, endTime string) error {
	start, err := service.ParseClock(startTime)
	if err != nil {
		return ErrInvalidClockFormat
	}
	end, err := service.ParseClock(endTime)
	if err != nil {
		return ErrInvalidClockFormat
	}
	if start >= end {
		return ErrInvalidTimeRange
	}
	return nil
}

func (u *doctorScheduleUsecase) Create(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if err := validateClockRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	schedule := &entity.DoctorSchedule{
		DoctorID:    req.DoctorID,
		DayOfWeek:   req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsAvailable: true,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(schedule).Error; err != nil {
			return err
		}
		return u.auditService.LogCreate(tx, actorID(ctx), entity.AuditActionScheduleCreate, "doctor_schedule", schedule.ID.String(), schedule)
	})
	if err != nil {
		u.log.Warnf("Failed to create schedule: %+v", err)
		return nil, err
	}

	u.slotCache.InvalidateDoctor(ctx, schedule.DoctorID)

	return converter.ScheduleToResponse(schedule), nil
}

func (u *doctorScheduleUsecase) GetByDoctorID(ctx context.Context, doctorID uuid.UUID) (*dto.ScheduleListResponse, error) {
	schedules, err := u.scheduleRepo.FindByDoctorID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find schedules for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.ScheduleListResponse{
		Schedules: converter.SchedulesToResponses(schedules),
		Total:     len(schedules),
	}, nil
}

func (u *doctorScheduleUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	schedule, err := u.scheduleRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find schedule %s: %+v", id, err)
		return nil, err
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}

	if err := validateClockRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	old := *schedule

	if req.DayOfWeek != nil {
		schedule.DayOfWeek = *req.DayOfWeek
	}
	schedule.StartTime = req.StartTime
	schedule.EndTime = req.EndTime
	if req.IsAvailable != nil {
		schedule.IsAvailable = *req.IsAvailable
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(schedule).Error; err != nil {
			return err
		}
		return u.auditService.LogUpdate(tx, actorID(ctx), entity.AuditActionScheduleUpdate, "doctor_schedule", schedule.ID.String(), old, schedule)
	})
	if err != nil {
		u.log.Warnf("Failed to update schedule %s: %+v", id, err)
		return nil, err
	}

	// Cached slot listings for this doctor may now be stale on any date.
	u.slotCache.InvalidateDoctor(ctx, schedule.DoctorID)

	return converter.ScheduleToResponse(schedule), nil
}

func (u *doctorScheduleUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	schedule, err := u.scheduleRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find schedule %s: %+v", id, err)
		return err
	}
	if schedule == nil {
		return ErrScheduleNotFound
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.DoctorSchedule{}, "id = ?", id).Error; err != nil {
			return err
		}
		return u.auditService.LogDelete(tx, actorID(ctx), entity.AuditActionScheduleDelete, "doctor_schedule", schedule.ID.String(), schedule)
	})
	if err != nil {
		u.log.Warnf("Failed to delete schedule %s: %+v", id, err)
		return err
	}

	u.slotCache.InvalidateDoctor(ctx, schedule.DoctorID)

	return nil
}
