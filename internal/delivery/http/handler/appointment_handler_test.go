package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"medical-appointment-api/internal/delivery/dto"
	"medical-appointment-api/internal/usecase"
	"medical-appointment-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type mockAppointmentUsecase struct {
	appointments map[uuid.UUID]*dto.AppointmentResponse
	scheduleErr  error
	slots        *dto.TimeSlotListResponse
	slotsErr     error
}

func newMockAppointmentUsecase() *mockAppointmentUsecase {
	return &mockAppointmentUsecase{appointments: make(map[uuid.UUID]*dto.AppointmentResponse)}
}

func (m *mockAppointmentUsecase) Schedule(ctx context.Context, req *dto.ScheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	if m.scheduleErr != nil {
		return nil, m.scheduleErr
	}
	appointment := &dto.AppointmentResponse{
		ID:              uuid.New(),
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		DurationMinutes: req.DurationMinutes,
		Status:          "scheduled",
	}
	m.appointments[appointment.ID] = appointment
	return appointment, nil
}

func (m *mockAppointmentUsecase) GetAll(ctx context.Context) (*dto.AppointmentListResponse, error) {
	list := &dto.AppointmentListResponse{Appointments: []dto.AppointmentResponse{}}
	for _, a := range m.appointments {
		list.Appointments = append(list.Appointments, *a)
	}
	list.Total = len(list.Appointments)
	return list, nil
}

func (m *mockAppointmentUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, ok := m.appointments[id]
	if !ok {
		return nil, usecase.ErrAppointmentNotFound
	}
	return appointment, nil
}

func (m *mockAppointmentUsecase) Cancel(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, ok := m.appointments[id]
	if !ok {
		return nil, usecase.ErrAppointmentNotFound
	}
	if appointment.Status != "scheduled" {
		return nil, usecase.ErrAppointmentNotScheduled
	}
	appointment.Status = "cancelled"
	return appointment, nil
}

func (m *mockAppointmentUsecase) GetAvailableTimeSlots(ctx context.Context, doctorID uuid.UUID, date string, durationMinutes int) (*dto.TimeSlotListResponse, error) {
	if m.slotsErr != nil {
		return nil, m.slotsErr
	}
	if m.slots != nil {
		return m.slots, nil
	}
	return &dto.TimeSlotListResponse{Slots: []dto.TimeSlotResponse{}}, nil
}

func (m *mockAppointmentUsecase) CompleteWithBilling(ctx context.Context, id uuid.UUID, req *dto.CompleteAppointmentRequest) (*dto.CompleteAppointmentResponse, error) {
	appointment, ok := m.appointments[id]
	if !ok {
		return nil, usecase.ErrAppointmentNotFound
	}
	if appointment.Status != "scheduled" {
		return nil, usecase.ErrAppointmentNotScheduled
	}
	appointment.Status = "completed"
	return &dto.CompleteAppointmentResponse{
		AppointmentID: id,
		InvoiceID:     uuid.New(),
		InvoiceNumber: "INV-20260831-0A1B2C",
		TotalAmount:   decimal.RequireFromString("121.00"),
	}, nil
}

func scheduleBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(dto.ScheduleAppointmentRequest{
		PatientID:       uuid.New(),
		DoctorID:        uuid.New(),
		AppointmentDate: "2026-09-15",
		AppointmentTime: "09:30",
		DurationMinutes: 30,
	})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	return body
}

func TestAppointmentHandlerSchedule(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mock := newMockAppointmentUsecase()
		h := NewAppointmentHandler(mock, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(scheduleBody(t)))
		rec := httptest.NewRecorder()

		h.Schedule(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
		}
		if len(mock.appointments) != 1 {
			t.Errorf("expected 1 stored appointment, got %d", len(mock.appointments))
		}
	})

	t.Run("SlotTaken", func(t *testing.T) {
		mock := newMockAppointmentUsecase()
		mock.scheduleErr = usecase.ErrSlotUnavailable
		h := NewAppointmentHandler(mock, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(scheduleBody(t)))
		rec := httptest.NewRecorder()

		h.Schedule(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
		resp := decodeResponse(t, rec)
		if resp.Success {
			t.Error("expected failure envelope")
		}
		if resp.Message != usecase.ErrSlotUnavailable.Error() {
			t.Errorf("message = %q, want %q", resp.Message, usecase.ErrSlotUnavailable.Error())
		}
	})

	t.Run("OutsideWorkingHours", func(t *testing.T) {
		mock := newMockAppointmentUsecase()
		mock.scheduleErr = usecase.ErrOutsideSchedule
		h := NewAppointmentHandler(mock, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(scheduleBody(t)))
		rec := httptest.NewRecorder()

		h.Schedule(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("UnknownPatient", func(t *testing.T) {
		mock := newMockAppointmentUsecase()
		mock.scheduleErr = usecase.ErrPatientNotFound
		h := NewAppointmentHandler(mock, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(scheduleBody(t)))
		rec := httptest.NewRecorder()

		h.Schedule(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("MissingTime", func(t *testing.T) {
		h := NewAppointmentHandler(newMockAppointmentUsecase(), validator.NewValidator())

		body, _ := json.Marshal(dto.ScheduleAppointmentRequest{
			PatientID:       uuid.New(),
			DoctorID:        uuid.New(),
			AppointmentDate: "2026-09-15",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		h.Schedule(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}

func TestAppointmentHandlerCancel(t *testing.T) {
	mock := newMockAppointmentUsecase()
	id := uuid.New()
	mock.appointments[id] = &dto.AppointmentResponse{ID: id, Status: "scheduled"}
	h := NewAppointmentHandler(mock, validator.NewValidator())

	router := mux.NewRouter()
	router.HandleFunc("/api/admin/appointments/{id}/cancel", h.Cancel).Methods(http.MethodPost)

	t.Run("Success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/appointments/"+id.String()+"/cancel", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if mock.appointments[id].Status != "cancelled" {
			t.Errorf("status = %q, want cancelled", mock.appointments[id].Status)
		}
	})

	t.Run("AlreadyCancelled", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/appointments/"+id.String()+"/cancel", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/appointments/"+uuid.NewString()+"/cancel", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}

func TestAppointmentHandlerComplete(t *testing.T) {
	mock := newMockAppointmentUsecase()
	id := uuid.New()
	mock.appointments[id] = &dto.AppointmentResponse{ID: id, Status: "scheduled"}
	h := NewAppointmentHandler(mock, validator.NewValidator())

	router := mux.NewRouter()
	router.HandleFunc("/api/appointments/{id}/complete", h.Complete).Methods(http.MethodPost)

	body, _ := json.Marshal(dto.CompleteAppointmentRequest{
		Services: []dto.InvoiceServiceLine{{ServiceID: uuid.New(), Quantity: 1}},
		TaxRate:  0.1,
	})

	t.Run("Success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/appointments/"+id.String()+"/complete", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		if mock.appointments[id].Status != "completed" {
			t.Errorf("status = %q, want completed", mock.appointments[id].Status)
		}
	})

	t.Run("AlreadyCompleted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/appointments/"+id.String()+"/complete", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("NoServices", func(t *testing.T) {
		emptyBody, _ := json.Marshal(dto.CompleteAppointmentRequest{TaxRate: 0.1})
		req := httptest.NewRequest(http.MethodPost, "/api/appointments/"+id.String()+"/complete", bytes.NewReader(emptyBody))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}
