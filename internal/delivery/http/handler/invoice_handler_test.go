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

type mockInvoiceUsecase struct {
	invoices  map[uuid.UUID]*dto.InvoiceResponse
	createErr error
}

func newMockInvoiceUsecase() *mockInvoiceUsecase {
	return &mockInvoiceUsecase{invoices: make(map[uuid.UUID]*dto.InvoiceResponse)}
}

func (m *mockInvoiceUsecase) Create(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	invoice := &dto.InvoiceResponse{
		ID:            uuid.New(),
		InvoiceNumber: "INV-20260831-0A1B2C",
		PatientID:     req.PatientID,
		Status:        "pending",
		TotalAmount:   decimal.RequireFromString("121.00"),
	}
	m.invoices[invoice.ID] = invoice
	return invoice, nil
}

func (m *mockInvoiceUsecase) GetAll(ctx context.Context) (*dto.InvoiceListResponse, error) {
	list := &dto.InvoiceListResponse{Invoices: []dto.InvoiceResponse{}}
	for _, inv := range m.invoices {
		list.Invoices = append(list.Invoices, *inv)
	}
	list.Total = len(list.Invoices)
	return list, nil
}

func (m *mockInvoiceUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.InvoiceResponse, error) {
	invoice, ok := m.invoices[id]
	if !ok {
		return nil, usecase.ErrInvoiceNotFound
	}
	return invoice, nil
}

func (m *mockInvoiceUsecase) MarkPaid(ctx context.Context, id uuid.UUID, paymentMethod string) (*dto.InvoiceResponse, error) {
	invoice, ok := m.invoices[id]
	if !ok {
		return nil, usecase.ErrInvoiceNotFound
	}
	if invoice.Status == "paid" {
		return nil, usecase.ErrInvoiceAlreadyPaid
	}
	invoice.Status = "paid"
	invoice.PaymentMethod = paymentMethod
	return invoice, nil
}

func TestInvoiceHandlerCreate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mock := newMockInvoiceUsecase()
		h := NewInvoiceHandler(mock, validator.NewValidator())

		body, _ := json.Marshal(dto.CreateInvoiceRequest{
			PatientID: uuid.New(),
			Services:  []dto.InvoiceServiceLine{{ServiceID: uuid.New(), Quantity: 2}},
			TaxRate:   0.1,
		})
		req := httptest.NewRequest(http.MethodPost, "/api/invoices", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
	})

	t.Run("NoServices", func(t *testing.T) {
		h := NewInvoiceHandler(newMockInvoiceUsecase(), validator.NewValidator())

		body, _ := json.Marshal(dto.CreateInvoiceRequest{PatientID: uuid.New(), TaxRate: 0.1})
		req := httptest.NewRequest(http.MethodPost, "/api/invoices", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("UnknownService", func(t *testing.T) {
		mock := newMockInvoiceUsecase()
		mock.createErr = usecase.ErrServiceNotFound
		h := NewInvoiceHandler(mock, validator.NewValidator())

		body, _ := json.Marshal(dto.CreateInvoiceRequest{
			PatientID: uuid.New(),
			Services:  []dto.InvoiceServiceLine{{ServiceID: uuid.New(), Quantity: 1}},
		})
		req := httptest.NewRequest(http.MethodPost, "/api/invoices", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}

func TestInvoiceHandlerMarkPaid(t *testing.T) {
	mock := newMockInvoiceUsecase()
	id := uuid.New()
	mock.invoices[id] = &dto.InvoiceResponse{ID: id, Status: "pending"}
	h := NewInvoiceHandler(mock, validator.NewValidator())

	router := mux.NewRouter()
	router.HandleFunc("/api/admin/invoices/{id}/pay", h.MarkPaid).Methods(http.MethodPost)

	body := []byte(`{"payment_method": "card"}`)

	t.Run("Success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/invoices/"+id.String()+"/pay", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		if mock.invoices[id].Status != "paid" {
			t.Errorf("status = %q, want paid", mock.invoices[id].Status)
		}
		if mock.invoices[id].PaymentMethod != "card" {
			t.Errorf("payment method = %q, want card", mock.invoices[id].PaymentMethod)
		}
	})

	t.Run("AlreadyPaid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/invoices/"+id.String()+"/pay", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("MissingPaymentMethod", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/invoices/"+id.String()+"/pay", bytes.NewReader([]byte(`{}`)))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/invoices/"+uuid.NewString()+"/pay", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}
