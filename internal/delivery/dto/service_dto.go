package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateServiceRequest struct {
	Name            string          `json:"name" validate:"required,max=255"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price" validate:"required"`
	DurationMinutes int             `json:"duration_minutes" validate:"omitempty,gte=5,lte=480"`
}

type UpdateServiceRequest struct {
	Name            string          `json:"name" validate:"required,max=255"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price" validate:"required"`
	DurationMinutes int             `json:"duration_minutes" validate:"omitempty,gte=5,lte=480"`
}

type ServiceResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration_minutes"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
	Total    int               `json:"total"`
}
