package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePatientRequest struct {
	FirstName             string `json:"first_name" validate:"required,max=100"`
	LastName              string `json:"last_name" validate:"required,max=100"`
	Email                 string `json:"email" validate:"omitempty,email,max=255"`
	Phone                 string `json:"phone" validate:"omitempty,max=20"`
	DateOfBirth           string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Address               string `json:"address"`
	EmergencyContactName  string `json:"emergency_contact_name" validate:"omitempty,max=200"`
	EmergencyContactPhone string `json:"emergency_contact_phone" validate:"omitempty,max=20"`
	InsuranceProvider     string `json:"insurance_provider" validate:"omitempty,max=100"`
	InsurancePolicyNumber string `json:"insurance_policy_number" validate:"omitempty,max=50"`
}

type UpdatePatientRequest struct {
	FirstName             string `json:"first_name" validate:"required,max=100"`
	LastName              string `json:"last_name" validate:"required,max=100"`
	Email                 string `json:"email" validate:"omitempty,email,max=255"`
	Phone                 string `json:"phone" validate:"omitempty,max=20"`
	DateOfBirth           string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Address               string `json:"address"`
	EmergencyContactName  string `json:"emergency_contact_name" validate:"omitempty,max=200"`
	EmergencyContactPhone string `json:"emergency_contact_phone" validate:"omitempty,max=20"`
	InsuranceProvider     string `json:"insurance_provider" validate:"omitempty,max=100"`
	InsurancePolicyNumber string `json:"insurance_policy_number" validate:"omitempty,max=50"`
}

type PatientResponse struct {
	ID                    uuid.UUID `json:"id"`
	FirstName             string    `json:"first_name"`
	LastName              string    `json:"last_name"`
	Email                 string    `json:"email,omitempty"`
	Phone                 string    `json:"phone,omitempty"`
	DateOfBirth           string    `json:"date_of_birth,omitempty"`
	Address               string    `json:"address,omitempty"`
	EmergencyContactName  string    `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string    `json:"emergency_contact_phone,omitempty"`
	InsuranceProvider     string    `json:"insurance_provider,omitempty"`
	InsurancePolicyNumber string    `json:"insurance_policy_number,omitempty"`
	IsActive              bool      `json:"is_active"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
