package repository

import (
	"context"

	"medical-appointment-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(ctx context.Context, doctor *entity.Doctor) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error)
	FindAllActive(ctx context.Context) ([]entity.Doctor, error)
	Update(ctx context.Context, doctor *entity.Doctor) error

	// LockByID loads the doctor row FOR UPDATE inside tx. Booking paths use
	// it to serialize slot checks per doctor.
	LockByID(tx *gorm.DB, id uuid.UUID) (*entity.Doctor, error)
}
