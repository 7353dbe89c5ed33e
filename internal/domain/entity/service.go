package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service is a billable catalog item.
type Service struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name            string          `gorm:"type:varchar(255);not null" json:"name"`
	Description     string          `gorm:"type:text" json:"description,omitempty"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	DurationMinutes int             `gorm:"not null;default:30" json:"duration_minutes"`
	IsActive        bool            `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Service) TableName() string {
	return "services"
}
