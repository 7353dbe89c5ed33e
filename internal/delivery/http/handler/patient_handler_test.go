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
	"medical-appointment-api/pkg/response"
	"medical-appointment-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type mockPatientUsecase struct {
	patients map[uuid.UUID]*dto.PatientResponse
	err      error
}

func newMockPatientUsecase() *mockPatientUsecase {
	return &mockPatientUsecase{patients: make(map[uuid.UUID]*dto.PatientResponse)}
}

func (m *mockPatientUsecase) Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	patient := &dto.PatientResponse{
		ID:        uuid.New(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		IsActive:  true,
	}
	m.patients[patient.ID] = patient
	return patient, nil
}

func (m *mockPatientUsecase) GetAll(ctx context.Context) (*dto.PatientListResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	list := &dto.PatientListResponse{Patients: []dto.PatientResponse{}}
	for _, p := range m.patients {
		list.Patients = append(list.Patients, *p)
	}
	list.Total = len(list.Patients)
	return list, nil
}

func (m *mockPatientUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	patient, ok := m.patients[id]
	if !ok {
		return nil, usecase.ErrPatientNotFound
	}
	return patient, nil
}

func (m *mockPatientUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	patient, ok := m.patients[id]
	if !ok {
		return nil, usecase.ErrPatientNotFound
	}
	patient.FirstName = req.FirstName
	patient.LastName = req.LastName
	return patient, nil
}

func (m *mockPatientUsecase) Deactivate(ctx context.Context, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.patients[id]; !ok {
		return usecase.ErrPatientNotFound
	}
	delete(m.patients, id)
	return nil
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestPatientHandlerCreate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mock := newMockPatientUsecase()
		h := NewPatientHandler(mock, validator.NewValidator())

		body, _ := json.Marshal(dto.CreatePatientRequest{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane.doe@example.com",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/patients", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
		}
		resp := decodeResponse(t, rec)
		if !resp.Success {
			t.Error("expected success envelope")
		}
		if len(mock.patients) != 1 {
			t.Errorf("expected 1 stored patient, got %d", len(mock.patients))
		}
	})

	t.Run("MissingRequiredFields", func(t *testing.T) {
		h := NewPatientHandler(newMockPatientUsecase(), validator.NewValidator())

		req := httptest.NewRequest(http.MethodPost, "/api/patients", bytes.NewReader([]byte(`{}`)))
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
		resp := decodeResponse(t, rec)
		if resp.Success {
			t.Error("expected failure envelope")
		}
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		h := NewPatientHandler(newMockPatientUsecase(), validator.NewValidator())

		body, _ := json.Marshal(dto.CreatePatientRequest{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "not-an-email",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/patients", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("MalformedBody", func(t *testing.T) {
		h := NewPatientHandler(newMockPatientUsecase(), validator.NewValidator())

		req := httptest.NewRequest(http.MethodPost, "/api/patients", bytes.NewReader([]byte(`{bad`)))
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}

func TestPatientHandlerGetAll(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		h := NewPatientHandler(newMockPatientUsecase(), validator.NewValidator())

		req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)
		rec := httptest.NewRecorder()

		h.GetAll(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		resp := decodeResponse(t, rec)
		if resp.Message != "No patients found" {
			t.Errorf("message = %q, want %q", resp.Message, "No patients found")
		}
	})

	t.Run("WithPatients", func(t *testing.T) {
		mock := newMockPatientUsecase()
		id := uuid.New()
		mock.patients[id] = &dto.PatientResponse{ID: id, FirstName: "Jane", LastName: "Doe", IsActive: true}
		h := NewPatientHandler(mock, validator.NewValidator())

		req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)
		rec := httptest.NewRecorder()

		h.GetAll(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		resp := decodeResponse(t, rec)
		if resp.Message != "Patients retrieved successfully" {
			t.Errorf("unexpected message %q", resp.Message)
		}
	})
}

func TestPatientHandlerGetByID(t *testing.T) {
	mock := newMockPatientUsecase()
	id := uuid.New()
	mock.patients[id] = &dto.PatientResponse{ID: id, FirstName: "Jane", LastName: "Doe", IsActive: true}
	h := NewPatientHandler(mock, validator.NewValidator())

	router := mux.NewRouter()
	router.HandleFunc("/api/patients/{id}", h.GetByID).Methods(http.MethodGet)

	t.Run("Found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/patients/"+id.String(), nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/patients/"+uuid.NewString(), nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("InvalidID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/patients/not-a-uuid", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}

func TestPatientHandlerDeactivate(t *testing.T) {
	mock := newMockPatientUsecase()
	id := uuid.New()
	mock.patients[id] = &dto.PatientResponse{ID: id, FirstName: "Jane", LastName: "Doe", IsActive: true}
	h := NewPatientHandler(mock, validator.NewValidator())

	router := mux.NewRouter()
	router.HandleFunc("/api/admin/patients/{id}", h.Deactivate).Methods(http.MethodDelete)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/patients/"+id.String(), nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if len(mock.patients) != 0 {
		t.Error("patient should have been removed")
	}
}
