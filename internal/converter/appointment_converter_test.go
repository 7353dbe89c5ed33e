package converter

import (
	"testing"
	"time"

	"medical-appointment-api/internal/domain/entity"

	"github.com/google/uuid"
)

func TestClockString(t *testing.T) {
	if got := ClockString("09:30:00"); got != "09:30" {
		t.Errorf("ClockString(09:30:00) = %q, want 09:30", got)
	}
	if got := ClockString("09:30"); got != "09:30" {
		t.Errorf("ClockString(09:30) = %q, want 09:30", got)
	}
	if got := ClockString(""); got != "" {
		t.Errorf("ClockString(\"\") = %q, want empty", got)
	}
}

func TestAppointmentToResponse(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		if AppointmentToResponse(nil) != nil {
			t.Fatal("expected nil response for nil entity")
		}
	})

	t.Run("WithoutPreloads", func(t *testing.T) {
		appointment := &entity.Appointment{
			ID:              uuid.New(),
			PatientID:       uuid.New(),
			DoctorID:        uuid.New(),
			AppointmentDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
			AppointmentTime: "09:30:00",
			DurationMinutes: 30,
			Status:          entity.AppointmentStatusScheduled,
		}

		resp := AppointmentToResponse(appointment)

		if resp.AppointmentDate != "2026-09-15" {
			t.Errorf("AppointmentDate = %q, want 2026-09-15", resp.AppointmentDate)
		}
		if resp.AppointmentTime != "09:30" {
			t.Errorf("AppointmentTime = %q, want 09:30", resp.AppointmentTime)
		}
		if resp.Status != "scheduled" {
			t.Errorf("Status = %q, want scheduled", resp.Status)
		}
		if resp.PatientName != "" || resp.DoctorName != "" {
			t.Error("names should stay empty without preloaded relations")
		}
	})

	t.Run("WithPreloads", func(t *testing.T) {
		appointment := &entity.Appointment{
			ID:              uuid.New(),
			AppointmentDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
			AppointmentTime: "14:00:00",
			Status:          entity.AppointmentStatusCompleted,
			Patient: entity.Patient{
				ID:        uuid.New(),
				FirstName: "Jane",
				LastName:  "Doe",
			},
			Doctor: entity.Doctor{
				ID:        uuid.New(),
				FirstName: "Gregory",
				LastName:  "House",
			},
		}

		resp := AppointmentToResponse(appointment)

		if resp.PatientName != "Jane Doe" {
			t.Errorf("PatientName = %q, want %q", resp.PatientName, "Jane Doe")
		}
		if resp.DoctorName != "Dr. Gregory House" {
			t.Errorf("DoctorName = %q, want %q", resp.DoctorName, "Dr. Gregory House")
		}
	})
}
