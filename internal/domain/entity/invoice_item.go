package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceItem is one billed service line. TotalPrice is always
// Quantity × UnitPrice at the time of billing.
type InvoiceItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ServiceID   uuid.UUID       `gorm:"type:uuid;not null" json:"service_id"`
	Quantity    int             `gorm:"not null;default:1" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	Description string          `gorm:"type:varchar(500)" json:"description,omitempty"`

	// Relationships
	Service Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

func (InvoiceItem) TableName() string {
	return "invoice_items"
}
