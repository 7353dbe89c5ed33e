package repository

import (
	"context"
	"time"

	"medical-appointment-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	// Create and LockByID run inside the caller's transaction.
	Create(tx *gorm.DB, appointment *entity.Appointment) error
	LockByID(tx *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	Update(tx *gorm.DB, appointment *entity.Appointment) error

	// FindActiveForDoctorDate returns non-cancelled appointments for the
	// doctor on the given date. Passing a transaction makes the read part
	// of the booking critical section.
	FindActiveForDoctorDate(tx *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error)

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	FindAll(ctx context.Context) ([]entity.Appointment, error)
}
