package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateScheduleRequest struct {
	DoctorID    uuid.UUID `json:"doctor_id" validate:"required"`
	DayOfWeek   int       `json:"day_of_week" validate:"gte=0,lte=6"`
	StartTime   string    `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string    `json:"end_time" validate:"required,datetime=15:04"`
	IsAvailable *bool     `json:"is_available"`
}

type UpdateScheduleRequest struct {
	DayOfWeek   *int   `json:"day_of_week" validate:"omitempty,gte=0,lte=6"`
	StartTime   string `json:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime     string `json:"end_time" validate:"omitempty,datetime=15:04"`
	IsAvailable *bool  `json:"is_available"`
}

type ScheduleResponse struct {
	ID          uuid.UUID `json:"id"`
	DoctorID    uuid.UUID `json:"doctor_id"`
	DayOfWeek   int       `json:"day_of_week"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
	Total     int                `json:"total"`
}
