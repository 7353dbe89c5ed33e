package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateDoctorRequest struct {
	FirstName      string `json:"first_name" validate:"required,max=100"`
	LastName       string `json:"last_name" validate:"required,max=100"`
	Email          string `json:"email" validate:"required,email,max=255"`
	Phone          string `json:"phone" validate:"omitempty,max=20"`
	Specialization string `json:"specialization" validate:"omitempty,max=100"`
	LicenseNumber  string `json:"license_number" validate:"omitempty,max=50"`
}

type UpdateDoctorRequest struct {
	FirstName      string `json:"first_name" validate:"required,max=100"`
	LastName       string `json:"last_name" validate:"required,max=100"`
	Email          string `json:"email" validate:"required,email,max=255"`
	Phone          string `json:"phone" validate:"omitempty,max=20"`
	Specialization string `json:"specialization" validate:"omitempty,max=100"`
	LicenseNumber  string `json:"license_number" validate:"omitempty,max=50"`
}

type DoctorResponse struct {
	ID             uuid.UUID `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	Specialization string    `json:"specialization,omitempty"`
	LicenseNumber  string    `json:"license_number,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

// ScheduleDayResponse is one expanded calendar day of a doctor's weekly
// template, as returned by the schedule range endpoint.
type ScheduleDayResponse struct {
	Date        string `json:"date"`
	DayName     string `json:"day_name"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

type DoctorScheduleRangeResponse struct {
	DoctorID   uuid.UUID             `json:"doctor_id"`
	DoctorName string                `json:"doctor_name"`
	Days       []ScheduleDayResponse `json:"days"`
	Total      int                   `json:"total"`
}
