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
)

type mockDoctorUsecase struct {
	doctors  map[uuid.UUID]*dto.DoctorResponse
	schedule *dto.DoctorScheduleRangeResponse
	err      error
}

func newMockDoctorUsecase() *mockDoctorUsecase {
	return &mockDoctorUsecase{doctors: make(map[uuid.UUID]*dto.DoctorResponse)}
}

func (m *mockDoctorUsecase) Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	doctor := &dto.DoctorResponse{
		ID:        uuid.New(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		IsActive:  true,
	}
	m.doctors[doctor.ID] = doctor
	return doctor, nil
}

func (m *mockDoctorUsecase) GetAll(ctx context.Context) (*dto.DoctorListResponse, error) {
	list := &dto.DoctorListResponse{Doctors: []dto.DoctorResponse{}}
	for _, d := range m.doctors {
		list.Doctors = append(list.Doctors, *d)
	}
	list.Total = len(list.Doctors)
	return list, nil
}

func (m *mockDoctorUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, ok := m.doctors[id]
	if !ok {
		return nil, usecase.ErrDoctorNotFound
	}
	return doctor, nil
}

func (m *mockDoctorUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	doctor, ok := m.doctors[id]
	if !ok {
		return nil, usecase.ErrDoctorNotFound
	}
	doctor.FirstName = req.FirstName
	doctor.LastName = req.LastName
	doctor.Email = req.Email
	return doctor, nil
}

func (m *mockDoctorUsecase) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.doctors[id]; !ok {
		return usecase.ErrDoctorNotFound
	}
	delete(m.doctors, id)
	return nil
}

func (m *mockDoctorUsecase) GetSchedule(ctx context.Context, id uuid.UUID, startDate, endDate string) (*dto.DoctorScheduleRangeResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	if _, ok := m.doctors[id]; !ok {
		return nil, usecase.ErrDoctorNotFound
	}
	if m.schedule != nil {
		return m.schedule, nil
	}
	return &dto.DoctorScheduleRangeResponse{DoctorID: id, Days: []dto.ScheduleDayResponse{}}, nil
}

func TestDoctorHandlerCreate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mock := newMockDoctorUsecase()
		h := NewDoctorHandler(mock, newMockAppointmentUsecase(), validator.NewValidator())

		body, _ := json.Marshal(dto.CreateDoctorRequest{
			FirstName:      "Gregory",
			LastName:       "House",
			Email:          "g.house@example.com",
			Specialization: "Diagnostics",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/admin/doctors", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		mock := newMockDoctorUsecase()
		mock.err = usecase.ErrEmailAlreadyExists
		h := NewDoctorHandler(mock, newMockAppointmentUsecase(), validator.NewValidator())

		body, _ := json.Marshal(dto.CreateDoctorRequest{
			FirstName: "Gregory",
			LastName:  "House",
			Email:     "g.house@example.com",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/admin/doctors", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("MissingEmail", func(t *testing.T) {
		h := NewDoctorHandler(newMockDoctorUsecase(), newMockAppointmentUsecase(), validator.NewValidator())

		body, _ := json.Marshal(dto.CreateDoctorRequest{FirstName: "Gregory", LastName: "House"})
		req := httptest.NewRequest(http.MethodPost, "/api/admin/doctors", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}

func TestDoctorHandlerGetAvailableSlots(t *testing.T) {
	doctorID := uuid.New()

	newRouter := func(appointments *mockAppointmentUsecase) *mux.Router {
		doctors := newMockDoctorUsecase()
		doctors.doctors[doctorID] = &dto.DoctorResponse{ID: doctorID, IsActive: true}
		h := NewDoctorHandler(doctors, appointments, validator.NewValidator())
		router := mux.NewRouter()
		router.HandleFunc("/api/doctors/{id}/available-slots", h.GetAvailableSlots).Methods(http.MethodGet)
		return router
	}

	t.Run("Success", func(t *testing.T) {
		appointments := newMockAppointmentUsecase()
		appointments.slots = &dto.TimeSlotListResponse{
			Slots: []dto.TimeSlotResponse{
				{Time: "09:00", IsAvailable: true},
				{Time: "09:30", IsAvailable: false},
			},
			Total: 2,
		}
		router := newRouter(appointments)

		req := httptest.NewRequest(http.MethodGet,
			"/api/doctors/"+doctorID.String()+"/available-slots?appointmentDate=2026-09-15&durationMinutes=30", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		resp := decodeResponse(t, rec)
		if resp.Message != "Available slots retrieved successfully" {
			t.Errorf("unexpected message %q", resp.Message)
		}
	})

	t.Run("MissingDate", func(t *testing.T) {
		router := newRouter(newMockAppointmentUsecase())

		req := httptest.NewRequest(http.MethodGet,
			"/api/doctors/"+doctorID.String()+"/available-slots", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("NoSlots", func(t *testing.T) {
		router := newRouter(newMockAppointmentUsecase())

		req := httptest.NewRequest(http.MethodGet,
			"/api/doctors/"+doctorID.String()+"/available-slots?appointmentDate=2026-09-15", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		resp := decodeResponse(t, rec)
		if resp.Message != "No available slots for this date" {
			t.Errorf("unexpected message %q", resp.Message)
		}
	})

	t.Run("UnknownDoctor", func(t *testing.T) {
		appointments := newMockAppointmentUsecase()
		appointments.slotsErr = usecase.ErrDoctorNotFound
		router := newRouter(appointments)

		req := httptest.NewRequest(http.MethodGet,
			"/api/doctors/"+doctorID.String()+"/available-slots?appointmentDate=2026-09-15", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}

func TestDoctorHandlerGetSchedule(t *testing.T) {
	doctorID := uuid.New()
	doctors := newMockDoctorUsecase()
	doctors.doctors[doctorID] = &dto.DoctorResponse{ID: doctorID, FirstName: "Gregory", LastName: "House", IsActive: true}
	doctors.schedule = &dto.DoctorScheduleRangeResponse{
		DoctorID:   doctorID,
		DoctorName: "Dr. Gregory House",
		Days: []dto.ScheduleDayResponse{
			{Date: "2026-09-15", DayName: "Tuesday", StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
		},
		Total: 1,
	}
	h := NewDoctorHandler(doctors, newMockAppointmentUsecase(), validator.NewValidator())

	router := mux.NewRouter()
	router.HandleFunc("/api/doctors/{id}/schedule", h.GetSchedule).Methods(http.MethodGet)

	t.Run("Found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet,
			"/api/doctors/"+doctorID.String()+"/schedule?startDate=2026-09-15&endDate=2026-09-21", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("UnknownDoctor", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet,
			"/api/doctors/"+uuid.NewString()+"/schedule", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}
