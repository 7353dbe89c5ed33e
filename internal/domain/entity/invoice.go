package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the payment state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// Invoice is a bill issued to a patient, optionally tied to a completed
// appointment. Amounts are immutable once the invoice is paid; only the
// payment fields may still change.
type Invoice struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	InvoiceNumber string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"invoice_number"`
	PatientID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"patient_id"`
	AppointmentID *uuid.UUID      `gorm:"type:uuid;index" json:"appointment_id,omitempty"`
	InvoiceDate   time.Time       `gorm:"type:date;not null;index" json:"invoice_date"`
	DueDate       *time.Time      `gorm:"type:date" json:"due_date,omitempty"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	TaxAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"tax_amount"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Status        InvoiceStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentMethod string          `gorm:"type:varchar(50)" json:"payment_method,omitempty"`
	PaymentDate   *time.Time      `json:"payment_date,omitempty"`
	Notes         string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient     Patient      `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Appointment *Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
	Items       []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// IsPaid checks if the invoice has been settled
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// MarkPaid records the payment method and date and settles the invoice
func (i *Invoice) MarkPaid(method string, at time.Time) {
	i.Status = InvoiceStatusPaid
	i.PaymentMethod = method
	i.PaymentDate = &at
}
