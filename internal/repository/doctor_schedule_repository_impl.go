package repository

import (
	"context"
	"errors"

	"medical-appointment-api/internal/domain/entity"
	domainRepo "medical-appointment-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorScheduleRepository struct {
	db *gorm.DB
}

func NewDoctorScheduleRepository(db *gorm.DB) domainRepo.DoctorScheduleRepository {
	return &doctorScheduleRepository{db: db}
}

func (r *doctorScheduleRepository) Create(ctx context.Context, schedule *entity.DoctorSchedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *doctorScheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.DoctorSchedule, error) {
	var schedule entity.DoctorSchedule
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *doctorScheduleRepository) FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.DoctorSchedule, error) {
	var schedules []entity.DoctorSchedule
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("day_of_week ASC, start_time ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

// FindWindows returns the available windows for one weekday, ordered by
// start time so slot enumeration walks them in clock order.
func (r *doctorScheduleRepository) FindWindows(ctx context.Context, doctorID uuid.UUID, dayOfWeek int) ([]entity.DoctorSchedule, error) {
	var schedules []entity.DoctorSchedule
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND day_of_week = ? AND is_available = ?", doctorID, dayOfWeek, true).
		Order("start_time ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *doctorScheduleRepository) Update(ctx context.Context, schedule *entity.DoctorSchedule) error {
	return r.db.WithContext(ctx).Save(schedule).Error
}

func (r *doctorScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.DoctorSchedule{}).Error
}
