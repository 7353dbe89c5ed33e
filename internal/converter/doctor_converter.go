package converter

import (
	"medical-appointment-api/internal/delivery/dto"
	"medical-appointment-api/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to its response DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:             doctor.ID,
		FirstName:      doctor.FirstName,
		LastName:       doctor.LastName,
		Email:          doctor.Email,
		Phone:          doctor.Phone,
		Specialization: doctor.Specialization,
		LicenseNumber:  doctor.LicenseNumber,
		IsActive:       doctor.IsActive,
		CreatedAt:      doctor.CreatedAt,
		UpdatedAt:      doctor.UpdatedAt,
	}
}

// DoctorsToResponses converts a slice of Doctor entities
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}
