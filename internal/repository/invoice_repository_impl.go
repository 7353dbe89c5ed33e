package repository

import (
	"context"
	"errors"

	"medical-appointment-api/internal/domain/entity"
	domainRepo "medical-appointment-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

// Create inserts the invoice and its items in one statement batch; gorm
// cascades the Items association on create.
func (r *invoiceRepository) Create(tx *gorm.DB, invoice *entity.Invoice) error {
	return tx.Create(invoice).Error
}

func (r *invoiceRepository) Update(tx *gorm.DB, invoice *entity.Invoice) error {
	return tx.Save(invoice).Error
}

func (r *invoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Items").
		Where("id = ?", id).
		First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindAll(ctx context.Context) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Items").
		Order("invoice_date DESC, created_at DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}
