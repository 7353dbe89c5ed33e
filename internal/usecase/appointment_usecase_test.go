package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"medical-appointment-api/internal/delivery/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
)

// The usecase is built with nil repositories on purpose: any data access
// before the boundary checks would panic, so a clean sentinel error
// proves the request was rejected without touching the database.
func newBoundaryCheckUsecase() AppointmentUsecase {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewAppointmentUsecase(nil, log, nil, nil, nil, nil, nil, nil, nil, nil)
}

func TestScheduleRejectsPastDate(t *testing.T) {
	u := newBoundaryCheckUsecase()
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")

	_, err := u.Schedule(context.Background(), &dto.ScheduleAppointmentRequest{
		PatientID:       uuid.New(),
		DoctorID:        uuid.New(),
		AppointmentDate: yesterday,
		AppointmentTime: "09:00",
		DurationMinutes: 30,
	})

	if !errors.Is(err, ErrDateInPast) {
		t.Fatalf("err = %v, want ErrDateInPast", err)
	}
}

func TestScheduleRejectsMalformedInput(t *testing.T) {
	u := newBoundaryCheckUsecase()
	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")

	t.Run("BadDate", func(t *testing.T) {
		_, err := u.Schedule(context.Background(), &dto.ScheduleAppointmentRequest{
			PatientID:       uuid.New(),
			DoctorID:        uuid.New(),
			AppointmentDate: "15-09-2026",
			AppointmentTime: "09:00",
		})
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Fatalf("err = %v, want ErrInvalidDateFormat", err)
		}
	})

	t.Run("BadTime", func(t *testing.T) {
		_, err := u.Schedule(context.Background(), &dto.ScheduleAppointmentRequest{
			PatientID:       uuid.New(),
			DoctorID:        uuid.New(),
			AppointmentDate: tomorrow,
			AppointmentTime: "quarter past nine",
		})
		if !errors.Is(err, ErrInvalidTimeFormat) {
			t.Fatalf("err = %v, want ErrInvalidTimeFormat", err)
		}
	})
}

func TestGetAvailableTimeSlotsRejectsPastDate(t *testing.T) {
	u := newBoundaryCheckUsecase()
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")

	_, err := u.GetAvailableTimeSlots(context.Background(), uuid.New(), yesterday, 30)
	if !errors.Is(err, ErrDateInPast) {
		t.Fatalf("err = %v, want ErrDateInPast", err)
	}

	_, err = u.GetAvailableTimeSlots(context.Background(), uuid.New(), "not-a-date", 30)
	if !errors.Is(err, ErrInvalidDateFormat) {
		t.Fatalf("err = %v, want ErrInvalidDateFormat", err)
	}
}

func TestIsDuplicateKeyError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505"}

	if !isDuplicateKeyError(dup) {
		t.Error("unique violation should be recognized")
	}
	if !isDuplicateKeyError(fmt.Errorf("create invoice: %w", dup)) {
		t.Error("wrapped unique violation should be recognized")
	}
	if isDuplicateKeyError(&pgconn.PgError{Code: "23503"}) {
		t.Error("foreign key violation is not a duplicate key")
	}
	if isDuplicateKeyError(errors.New("connection refused")) {
		t.Error("plain errors are not duplicate keys")
	}
	if isDuplicateKeyError(nil) {
		t.Error("nil is not a duplicate key")
	}
}
