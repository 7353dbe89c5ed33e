package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"medical-appointment-api/internal/delivery/dto"
	"medical-appointment-api/internal/usecase"
	"medical-appointment-api/pkg/response"
	"medical-appointment-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type DoctorHandler struct {
	doctorUsecase      usecase.DoctorUsecase
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewDoctorHandler(
	doctorUsecase usecase.DoctorUsecase,
	appointmentUsecase usecase.AppointmentUsecase,
	validator *validator.CustomValidator,
) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase:      doctorUsecase,
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// Create handles doctor registration
// @Summary Register a new doctor
// @Tags Doctors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateDoctorRequest true "Create Doctor Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/doctors [post]
func (h *DoctorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			response.DomainFailure(w, err.Error())
			return
		}
		response.InternalServerError(w, "Failed to create doctor")
		return
	}

	response.Success(w, http.StatusCreated, "Doctor registered successfully", doctor)
}

// GetAll handles listing active doctors
// @Summary Get all active doctors
// @Tags Doctors
// @Produce json
// @Success 200 {object} response.Response
// @Router /doctors [get]
func (h *DoctorHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	message := "Doctors retrieved successfully"
	if doctors.Total == 0 {
		message = "No doctors found"
	}

	response.Success(w, http.StatusOK, message, doctors)
}

// GetByID handles getting a doctor by ID
// @Summary Get doctor by ID
// @Tags Doctors
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id} [get]
func (h *DoctorHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	doctor, err := h.doctorUsecase.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrDoctorNotFound) {
			response.NotFound(w, "Doctor not found")
			return
		}
		response.InternalServerError(w, "Failed to get doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

// Update handles updating doctor details
// @Summary Update a doctor
// @Tags Doctors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Doctor ID"
// @Param request body dto.UpdateDoctorRequest true "Update Doctor Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/doctors/{id} [put]
func (h *DoctorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	var req dto.UpdateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			response.DomainFailure(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to update doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor updated successfully", doctor)
}

// Deactivate handles soft-deleting a doctor
// @Summary Deactivate a doctor
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/doctors/{id} [delete]
func (h *DoctorHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	if err := h.doctorUsecase.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrDoctorNotFound) {
			response.NotFound(w, "Doctor not found")
			return
		}
		response.InternalServerError(w, "Failed to deactivate doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor deactivated successfully", nil)
}

// GetSchedule handles expanding the doctor's weekly schedule over a range
// @Summary Get doctor schedule for a date range
// @Tags Doctors
// @Produce json
// @Param id path string true "Doctor ID"
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id}/schedule [get]
func (h *DoctorHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	query := r.URL.Query()
	schedule, err := h.doctorUsecase.GetSchedule(r.Context(), id, query.Get("startDate"), query.Get("endDate"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		case errors.Is(err, usecase.ErrInvalidDateFormat), errors.Is(err, usecase.ErrInvalidScheduleSpan):
			response.DomainFailure(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to get schedule")
		}
		return
	}

	message := "Schedule retrieved successfully"
	if schedule.Total == 0 {
		message = "No schedule found for this doctor"
	}

	response.Success(w, http.StatusOK, message, schedule)
}

// GetAvailableSlots handles computing bookable time slots
// @Summary Get available time slots for a doctor and date
// @Tags Doctors
// @Produce json
// @Param id path string true "Doctor ID"
// @Param appointmentDate query string true "Date (YYYY-MM-DD)"
// @Param durationMinutes query int false "Appointment duration in minutes" default(30)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /doctors/{id}/available-slots [get]
func (h *DoctorHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	query := r.URL.Query()
	date := query.Get("appointmentDate")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "appointmentDate query parameter is required", nil)
		return
	}

	duration, _ := strconv.Atoi(query.Get("durationMinutes"))

	slots, err := h.appointmentUsecase.GetAvailableTimeSlots(r.Context(), id, date, duration)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		case errors.Is(err, usecase.ErrInvalidDateFormat), errors.Is(err, usecase.ErrDateInPast):
			response.DomainFailure(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to get available slots")
		}
		return
	}

	message := "Available slots retrieved successfully"
	if slots.Total == 0 {
		message = "No available slots for this date"
	}

	response.Success(w, http.StatusOK, message, slots)
}
