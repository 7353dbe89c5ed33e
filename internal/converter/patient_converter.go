package converter

import (
	"medical-appointment-api/internal/delivery/dto"
	"medical-appointment-api/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to its response DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	resp := &dto.PatientResponse{
		ID:                    patient.ID,
		FirstName:             patient.FirstName,
		LastName:              patient.LastName,
		Email:                 patient.Email,
		Phone:                 patient.Phone,
		Address:               patient.Address,
		EmergencyContactName:  patient.EmergencyContactName,
		EmergencyContactPhone: patient.EmergencyContactPhone,
		InsuranceProvider:     patient.InsuranceProvider,
		InsurancePolicyNumber: patient.InsurancePolicyNumber,
		IsActive:              patient.IsActive,
		CreatedAt:             patient.CreatedAt,
		UpdatedAt:             patient.UpdatedAt,
	}

	if patient.DateOfBirth != nil {
		resp.DateOfBirth = patient.DateOfBirth.Format("2006-01-02")
	}

	return resp
}

// PatientsToResponses converts a slice of Patient entities
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return responses
}
