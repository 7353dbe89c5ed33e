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
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvoiceNotFound    = errors.New("invoice not found")
	ErrInvoiceAlreadyPaid = errors.New("invoice is already paid")
)

type InvoiceUsecase interface {
	Create(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetAll(ctx context.Context) (*dto.InvoiceListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.InvoiceResponse, error)
	MarkPaid(ctx context.Context, id uuid.UUID, paymentMethod string) (*dto.InvoiceResponse, error)
}

type invoiceUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	invoiceRepo     repository.InvoiceRepository
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	serviceRepo     repository.ServiceRepository
	auditService    service.AuditService
}

func NewInvoiceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	invoiceRepo repository.InvoiceRepository,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	serviceRepo repository.ServiceRepository,
	auditService service.AuditService,
) InvoiceUsecase {
	return &invoiceUsecase{
		db:              db,
		log:             log,
		invoiceRepo:     invoiceRepo,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		auditService:    auditService,
	}
}

// Create issues a standalone invoice, optionally referencing an existing
// appointment. Prices are read from the service catalog at creation time.
func (u *invoiceUsecase) Create(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil || !patient.IsActive {
		return nil, ErrPatientNotFound
	}

	if req.AppointmentID != nil {
		appointment, err := u.appointmentRepo.FindByID(ctx, *req.AppointmentID)
		if err != nil {
			u.log.Warnf("Failed to find appointment %s: %+v", *req.AppointmentID, err)
			return nil, err
		}
		if appointment == nil {
			return nil, ErrAppointmentNotFound
		}
	}

	lines, items, err := loadBillingLines(ctx, u.log, u.serviceRepo, req.Services)
	if err != nil {
		return nil, err
	}

	totals := service.CalculateTotals(lines, decimal.NewFromFloat(req.TaxRate))
	now := time.Now().UTC()

	invoice := &entity.Invoice{
		InvoiceNumber: service.GenerateInvoiceNumber(now),
		PatientID:     req.PatientID,
		AppointmentID: req.AppointmentID,
		InvoiceDate:   now.Truncate(24 * time.Hour),
		Subtotal:      totals.Subtotal,
		TaxAmount:     totals.TaxAmount,
		TotalAmount:   totals.TotalAmount,
		Status:        entity.InvoiceStatusPending,
		Notes:         req.Notes,
		Items:         items,
	}

	if req.DueDate != "" {
		due, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		invoice.DueDate = &due
	}
	if req.PaymentMethod != "" {
		invoice.MarkPaid(req.PaymentMethod, now)
	}

	// One retry with a fresh number absorbs the rare suffix collision
	// against the unique invoice_number column.
	for attempt := 0; ; attempt++ {
		err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := u.invoiceRepo.Create(tx, invoice); err != nil {
				return err
			}
			return u.auditService.LogCreate(tx, actorID(ctx), entity.AuditActionInvoiceCreate, "invoice", invoice.ID.String(), invoice)
		})
		if err != nil && attempt == 0 && isDuplicateKeyError(err) {
			invoice.InvoiceNumber = service.GenerateInvoiceNumber(now)
			continue
		}
		break
	}
	if err != nil {
		u.log.Warnf("Failed to create invoice: %+v", err)
		return nil, err
	}

	resp := converter.InvoiceToResponse(invoice)
	resp.PatientName = patient.FullName()
	return resp, nil
}

func (u *invoiceUsecase) GetAll(ctx context.Context) (*dto.InvoiceListResponse, error) {
	invoices, err := u.invoiceRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find invoices: %+v", err)
		return nil, err
	}

	return &dto.InvoiceListResponse{
		Invoices: converter.InvoicesToResponses(invoices),
		Total:    len(invoices),
	}, nil
}

func (u *invoiceUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.InvoiceResponse, error) {
	invoice, err := u.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find invoice %s: %+v", id, err)
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}

	return converter.InvoiceToResponse(invoice), nil
}

// MarkPaid settles a pending invoice. Amounts never change here, only the
// payment fields.
func (u *invoiceUsecase) MarkPaid(ctx context.Context, id uuid.UUID, paymentMethod string) (*dto.InvoiceResponse, error) {
	invoice, err := u.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find invoice %s: %+v", id, err)
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}
	if invoice.IsPaid() {
		return nil, ErrInvoiceAlreadyPaid
	}

	invoice.MarkPaid(paymentMethod, time.Now().UTC())

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.invoiceRepo.Update(tx, invoice); err != nil {
			return err
		}
		return u.auditService.LogUpdate(tx, actorID(ctx), entity.AuditActionInvoicePay, "invoice", invoice.ID.String(), nil, invoice)
	})
	if err != nil {
		u.log.Warnf("Failed to mark invoice %s paid: %+v", id, err)
		return nil, err
	}

	return converter.InvoiceToResponse(invoice), nil
}
