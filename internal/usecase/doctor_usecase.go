package usecase

import (
	"context"
	"errors"
	"time"

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
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrEmailAlreadyExists  = errors.New("email is already registered")
	ErrInvalidScheduleSpan = errors.New("end date must not be before start date")
)

// scheduleRangeMaxDays bounds how far a single schedule query may expand.
const scheduleRangeMaxDays = 90

type DoctorUsecase interface {
	Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetAll(ctx context.Context) (*dto.DoctorListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	GetSchedule(ctx context.Context, id uuid.UUID, startDate, endDate string) (*dto.DoctorScheduleRangeResponse, error)
}

type doctorUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	doctorRepo   repository.DoctorRepository
	scheduleRepo repository.DoctorScheduleRepository
	auditService service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	scheduleRepo repository.DoctorScheduleRepository,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:           db,
		log:          log,
		doctorRepo:   doctorRepo,
		scheduleRepo: scheduleRepo,
		auditService: auditService,
	}
}

func (u *doctorUsecase) Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	doctor := &entity.Doctor{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Specialization: req.Specialization,
		LicenseNumber:  req.LicenseNumber,
		IsActive:       true,
	}

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(doctor).Error; err != nil {
			return err
		}
		return u.auditService.LogCreate(tx, actorID(ctx), entity.AuditActionDoctorCreate, "doctor", doctor.ID.String(), doctor)
	})
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetAll(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAllActive(ctx)
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *doctorUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	old := *doctor

	doctor.FirstName = req.FirstName
	doctor.LastName = req.LastName
	doctor.Email = req.Email
	doctor.Phone = req.Phone
	doctor.Specialization = req.Specialization
	doctor.LicenseNumber = req.LicenseNumber

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(doctor).Error; err != nil {
			return err
		}
		return u.auditService.LogUpdate(tx, actorID(ctx), entity.AuditActionDoctorUpdate, "doctor", doctor.ID.String(), old, doctor)
	})
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to update doctor %s: %+v", id, err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) Deactivate(ctx context.Context, id uuid.UUID) error {
	doctor, err := u.doctorRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", id, err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	doctor.IsActive = false

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(doctor).Error; err != nil {
			return err
		}
		return u.auditService.LogDelete(tx, actorID(ctx), entity.AuditActionDoctorDeactivate, "doctor", doctor.ID.String(), doctor)
	})
	if err != nil {
		u.log.Warnf("Failed to deactivate doctor %s: %+v", id, err)
		return err
	}

	return nil
}

// GetSchedule expands the doctor's weekly recurring schedule over a concrete
// date range. Defaults to the next seven days when no range is given.
func (u *doctorUsecase) GetSchedule(ctx context.Context, id uuid.UUID, startDate, endDate string) (*dto.DoctorScheduleRangeResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	start := time.Now().UTC().Truncate(24 * time.Hour)
	end := start.AddDate(0, 0, 6)

	if startDate != "" {
		start, err = time.Parse("2006-01-02", startDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
	}
	if endDate != "" {
		end, err = time.Parse("2006-01-02", endDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
	}
	if end.Before(start) {
		return nil, ErrInvalidScheduleSpan
	}
	if end.Sub(start) > scheduleRangeMaxDays*24*time.Hour {
		end = start.AddDate(0, 0, scheduleRangeMaxDays)
	}

	schedules, err := u.scheduleRepo.FindByDoctorID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find schedules for doctor %s: %+v", id, err)
		return nil, err
	}

	byWeekday := make(map[int][]entity.DoctorSchedule)
	for _, s := range schedules {
		byWeekday[s.DayOfWeek] = append(byWeekday[s.DayOfWeek], s)
	}

	var days []dto.ScheduleDayResponse
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		for _, s := range byWeekday[int(d.Weekday())] {
			days = append(days, dto.ScheduleDayResponse{
				Date:        d.Format("2006-01-02"),
				DayName:     d.Weekday().String(),
				StartTime:   converter.ClockString(s.StartTime),
				EndTime:     converter.ClockString(s.EndTime),
				IsAvailable: s.IsAvailable,
			})
		}
	}

	return &dto.DoctorScheduleRangeResponse{
		DoctorID:   doctor.ID,
		DoctorName: doctor.DisplayName(),
		Days:       days,
		Total:      len(days),
	}, nil
}
