package converter

import (
	"medical-appointment-api/internal/delivery/dto"
	"medical-appointment-api/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to its response DTO.
// Patient and doctor names are filled when the relations were preloaded.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	resp := &dto.AppointmentResponse{
		ID:              appointment.ID,
		PatientID:       appointment.PatientID,
		DoctorID:        appointment.DoctorID,
		AppointmentDate: appointment.AppointmentDate.Format("2006-01-02"),
		AppointmentTime: ClockString(appointment.AppointmentTime),
		DurationMinutes: appointment.DurationMinutes,
		Status:          string(appointment.Status),
		Notes:           appointment.Notes,
		CreatedAt:       appointment.CreatedAt,
	}

	if appointment.Patient.ID != uuid.Nil {
		resp.PatientName = appointment.Patient.FullName()
	}
	if appointment.Doctor.ID != uuid.Nil {
		resp.DoctorName = appointment.Doctor.DisplayName()
	}

	return resp
}

// AppointmentsToResponses converts a slice of Appointment entities
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
