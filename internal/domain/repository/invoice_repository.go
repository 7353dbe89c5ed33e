package repository

import (
	"context"

	"medical-appointment-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepository interface {
	// Create persists the invoice together with its items inside the
	// caller's transaction.
	Create(tx *gorm.DB, invoice *entity.Invoice) error
	Update(tx *gorm.DB, invoice *entity.Invoice) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	FindAll(ctx context.Context) ([]entity.Invoice, error)
}
