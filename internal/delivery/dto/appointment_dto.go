package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ScheduleAppointmentRequest struct {
	PatientID       uuid.UUID `json:"patient_id" validate:"required"`
	DoctorID        uuid.UUID `json:"doctor_id" validate:"required"`
	AppointmentDate string    `json:"appointment_date" validate:"required,datetime=2006-01-02"`
	AppointmentTime string    `json:"appointment_time" validate:"required,datetime=15:04"`
	DurationMinutes int       `json:"duration_minutes" validate:"omitempty,gte=15,lte=480"`
	Notes           string    `json:"notes"`
}

type AppointmentResponse struct {
	ID              uuid.UUID `json:"id"`
	PatientID       uuid.UUID `json:"patient_id"`
	PatientName     string    `json:"patient_name,omitempty"`
	DoctorID        uuid.UUID `json:"doctor_id"`
	DoctorName      string    `json:"doctor_name,omitempty"`
	AppointmentDate string    `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// TimeSlotResponse is one candidate start time for a doctor and date.
type TimeSlotResponse struct {
	Time        string `json:"time"`
	IsAvailable bool   `json:"is_available"`
}

type TimeSlotListResponse struct {
	Slots []TimeSlotResponse `json:"slots"`
	Total int                `json:"total"`
}

type CompleteAppointmentRequest struct {
	Services      []InvoiceServiceLine `json:"services" validate:"required,min=1,dive"`
	TaxRate       float64              `json:"tax_rate" validate:"gte=0,lte=1"`
	PaymentMethod string               `json:"payment_method" validate:"omitempty,max=50"`
}

type CompleteAppointmentResponse struct {
	AppointmentID uuid.UUID       `json:"appointment_id"`
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}
