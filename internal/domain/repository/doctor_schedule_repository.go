package repository

import (
	"context"

	"medical-appointment-api/internal/domain/entity"

	"github.com/google/uuid"
)

type DoctorScheduleRepository interface {
	Create(ctx context.Context, schedule *entity.DoctorSchedule) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.DoctorSchedule, error)
	FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.DoctorSchedule, error)
	FindWindows(ctx context.Context, doctorID uuid.UUID, dayOfWeek int) ([]entity.DoctorSchedule, error)
	Update(ctx context.Context, schedule *entity.DoctorSchedule) error
	Delete(ctx context.Context, id uuid.UUID) error
}
