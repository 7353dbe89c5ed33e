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

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// Schedule handles booking an appointment
// @Summary Schedule an appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Param request body dto.ScheduleAppointmentRequest true "Schedule Appointment Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /appointments [post]
func (h *AppointmentHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var req dto.ScheduleAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Schedule(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound),
			errors.Is(err, usecase.ErrDoctorNotFound),
			errors.Is(err, usecase.ErrDateInPast),
			errors.Is(err, usecase.ErrInvalidDateFormat),
			errors.Is(err, usecase.ErrInvalidTimeFormat),
			errors.Is(err, usecase.ErrOutsideSchedule),
			errors.Is(err, usecase.ErrSlotUnavailable):
			response.DomainFailure(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to schedule appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment scheduled successfully", appointment)
}

// GetAll handles listing all appointments
// @Summary Get all appointments
// @Tags Appointments
// @Produce json
// @Success 200 {object} response.Response
// @Router /appointments [get]
func (h *AppointmentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	message := "Appointments retrieved successfully"
	if appointments.Total == 0 {
		message = "No appointments found"
	}

	response.Success(w, http.StatusOK, message, appointments)
}

// GetByID handles getting an appointment by ID
// @Summary Get appointment by ID
// @Tags Appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := h.appointmentUsecase.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrAppointmentNotFound) {
			response.NotFound(w, "Appointment not found")
			return
		}
		response.InternalServerError(w, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

// Cancel handles cancelling a scheduled appointment
// @Summary Cancel an appointment
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/appointments/{id}/cancel [post]
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := h.appointmentUsecase.Cancel(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAppointmentNotFound):
			response.NotFound(w, "Appointment not found")
		case errors.Is(err, usecase.ErrAppointmentNotScheduled):
			response.DomainFailure(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to cancel appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", appointment)
}

// Complete handles completing an appointment and issuing its invoice
// @Summary Complete an appointment with billing
// @Tags Appointments
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.CompleteAppointmentRequest true "Complete Appointment Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /appointments/{id}/complete [post]
func (h *AppointmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.CompleteAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.appointmentUsecase.CompleteWithBilling(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAppointmentNotFound),
			errors.Is(err, usecase.ErrAppointmentNotScheduled),
			errors.Is(err, usecase.ErrServiceNotFound):
			response.DomainFailure(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to complete appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment completed and invoice issued", result)
}
