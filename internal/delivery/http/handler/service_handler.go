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

type ServiceHandler struct {
	serviceUsecase usecase.ServiceUsecase
	validator      *validator.CustomValidator
}

func NewServiceHandler(serviceUsecase usecase.ServiceUsecase, validator *validator.CustomValidator) *ServiceHandler {
	return &ServiceHandler{
		serviceUsecase: serviceUsecase,
		validator:      validator,
	}
}

// Create handles adding a catalog service
// @Summary Create a new service
// @Tags Services
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateServiceRequest true "Create Service Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/services [post]
func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	svc, err := h.serviceUsecase.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidPrice) {
			response.DomainFailure(w, err.Error())
			return
		}
		response.InternalServerError(w, "Failed to create service")
		return
	}

	response.Success(w, http.StatusCreated, "Service created successfully", svc)
}

// GetAll handles listing the active service catalog
// @Summary Get all active services
// @Tags Services
// @Produce json
// @Success 200 {object} response.Response
// @Router /services [get]
func (h *ServiceHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	services, err := h.serviceUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get services")
		return
	}

	message := "Services retrieved successfully"
	if services.Total == 0 {
		message = "No services found"
	}

	response.Success(w, http.StatusOK, message, services)
}

// GetByID handles getting a service by ID
// @Summary Get service by ID
// @Tags Services
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /services/{id} [get]
func (h *ServiceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid service ID", nil)
		return
	}

	svc, err := h.serviceUsecase.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrServiceNotFound) {
			response.NotFound(w, "Service not found")
			return
		}
		response.InternalServerError(w, "Failed to get service")
		return
	}

	response.Success(w, http.StatusOK, "Service retrieved successfully", svc)
}

// Update handles updating a catalog service
// @Summary Update a service
// @Tags Services
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Param request body dto.UpdateServiceRequest true "Update Service Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/services/{id} [put]
func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid service ID", nil)
		return
	}

	var req dto.UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	svc, err := h.serviceUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrServiceNotFound):
			response.NotFound(w, "Service not found")
		case errors.Is(err, usecase.ErrInvalidPrice):
			response.DomainFailure(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to update service")
		}
		return
	}

	response.Success(w, http.StatusOK, "Service updated successfully", svc)
}

// Deactivate handles retiring a catalog service
// @Summary Deactivate a service
// @Tags Services
// @Security BearerAuth
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/services/{id} [delete]
func (h *ServiceHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid service ID", nil)
		return
	}

	if err := h.serviceUsecase.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrServiceNotFound) {
			response.NotFound(w, "Service not found")
			return
		}
		response.InternalServerError(w, "Failed to deactivate service")
		return
	}

	response.Success(w, http.StatusOK, "Service deactivated successfully", nil)
}
