package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceServiceLine is one requested service line on an invoice.
type InvoiceServiceLine struct {
	ServiceID uuid.UUID `json:"service_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"gte=1"`
}

type CreateInvoiceRequest struct {
	PatientID     uuid.UUID            `json:"patient_id" validate:"required"`
	AppointmentID *uuid.UUID           `json:"appointment_id"`
	Services      []InvoiceServiceLine `json:"services" validate:"required,min=1,dive"`
	TaxRate       float64              `json:"tax_rate" validate:"gte=0,lte=1"`
	PaymentMethod string               `json:"payment_method" validate:"omitempty,max=50"`
	DueDate       string               `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Notes         string               `json:"notes"`
}

type InvoiceItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ServiceID   uuid.UUID       `json:"service_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Description string          `json:"description,omitempty"`
}

type InvoiceResponse struct {
	ID            uuid.UUID             `json:"id"`
	InvoiceNumber string                `json:"invoice_number"`
	PatientID     uuid.UUID             `json:"patient_id"`
	PatientName   string                `json:"patient_name,omitempty"`
	AppointmentID *uuid.UUID            `json:"appointment_id,omitempty"`
	InvoiceDate   string                `json:"invoice_date"`
	DueDate       string                `json:"due_date,omitempty"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	TaxAmount     decimal.Decimal       `json:"tax_amount"`
	TotalAmount   decimal.Decimal       `json:"total_amount"`
	Status        string                `json:"status"`
	PaymentMethod string                `json:"payment_method,omitempty"`
	PaymentDate   *time.Time            `json:"payment_date,omitempty"`
	Notes         string                `json:"notes,omitempty"`
	Items         []InvoiceItemResponse `json:"items,omitempty"`
}

type InvoiceListResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
	Total    int               `json:"total"`
}
