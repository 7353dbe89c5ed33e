package converter

import (
	"medical-appointment-api/internal/delivery/dto"
	"medical-appointment-api/internal/domain/entity"
)

// ScheduleToResponse converts a DoctorSchedule entity to its response DTO
func ScheduleToResponse(schedule *entity.DoctorSchedule) *dto.ScheduleResponse {
	if schedule == nil {
		return nil
	}

	return &dto.ScheduleResponse{
		ID:          schedule.ID,
		DoctorID:    schedule.DoctorID,
		DayOfWeek:   schedule.DayOfWeek,
		StartTime:   ClockString(schedule.StartTime),
		EndTime:     ClockString(schedule.EndTime),
		IsAvailable: schedule.IsAvailable,
		CreatedAt:   schedule.CreatedAt,
		UpdatedAt:   schedule.UpdatedAt,
	}
}

// SchedulesToResponses converts a slice of DoctorSchedule entities
func SchedulesToResponses(schedules []entity.DoctorSchedule) []dto.ScheduleResponse {
	responses := make([]dto.ScheduleResponse, len(schedules))
	for i := range schedules {
		responses[i] = *ScheduleToResponse(&schedules[i])
	}
	return responses
}

// ClockString normalizes a time-of-day column value to "HH:MM".
// Postgres time columns scan back as "HH:MM:SS".
func ClockString(t string) string {
	if len(t) > 5 {
		return t[:5]
	}
	return t
}
