package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"medical-appointment-api/internal/delivery/dto"
	"medical-appointment-api/internal/usecase"
	"medical-appointment-api/pkg/response"
	"medical-appointment-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type InvoiceHandler struct {
	invoiceUsecase usecase.InvoiceUsecase
	validator      *validator.CustomValidator
}

func NewInvoiceHandler(invoiceUsecase usecase.InvoiceUsecase, validator *validator.CustomValidator) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceUsecase: invoiceUsecase,
		validator:      validator,
	}
}

// Create handles issuing a standalone invoice
// @Summary Create an invoice
// @Tags Invoices
// @Accept json
// @Produce json
// @Param request body dto.CreateInvoiceRequest true "Create Invoice Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /invoices [post]
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	invoice, err := h.invoiceUsecase.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound),
			errors.Is(err, usecase.ErrAppointmentNotFound),
			errors.Is(err, usecase.ErrServiceNotFound),
			errors.Is(err, usecase.ErrInvalidDateFormat):
			response.DomainFailure(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to create invoice")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Invoice created successfully", invoice)
}

// GetAll handles listing all invoices
// @Summary Get all invoices
// @Tags Invoices
// @Produce json
// @Success 200 {object} response.Response
// @Router /invoices [get]
func (h *InvoiceHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.invoiceUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get invoices")
		return
	}

	message := "Invoices retrieved successfully"
	if invoices.Total == 0 {
		message = "No invoices found"
	}

	response.Success(w, http.StatusOK, message, invoices)
}

// GetByID handles getting an invoice by ID
// @Summary Get invoice by ID
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid invoice ID", nil)
		return
	}

	invoice, err := h.invoiceUsecase.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrInvoiceNotFound) {
			response.NotFound(w, "Invoice not found")
			return
		}
		response.InternalServerError(w, "Failed to get invoice")
		return
	}

	response.Success(w, http.StatusOK, "Invoice retrieved successfully", invoice)
}

// MarkPaid handles settling a pending invoice
// @Summary Mark an invoice as paid
// @Tags Invoices
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/invoices/{id}/pay [post]
func (h *InvoiceHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid invoice ID", nil)
		return
	}

	var req struct {
		PaymentMethod string `json:"payment_method" validate:"required,max=50"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	invoice, err := h.invoiceUsecase.MarkPaid(r.Context(), id, req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvoiceNotFound):
			response.NotFound(w, "Invoice not found")
		case errors.Is(err, usecase.ErrInvoiceAlreadyPaid):
			response.DomainFailure(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to mark invoice paid")
		}
		return
	}

	response.Success(w, http.StatusOK, "Invoice marked as paid", invoice)
}
