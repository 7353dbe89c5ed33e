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

type DoctorScheduleHandler struct {
	scheduleUsecase usecase.DoctorScheduleUsecase
	validator       *validator.CustomValidator
}

func NewDoctorScheduleHandler(scheduleUsecase usecase.DoctorScheduleUsecase, validator *validator.CustomValidator) *DoctorScheduleHandler {
	return &DoctorScheduleHandler{
		scheduleUsecase: scheduleUsecase,
		validator:       validator,
	}
}

// Create handles adding a weekly schedule entry
// @Summary Create a schedule entry
// @Tags Schedules
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateScheduleRequest true "Create Schedule Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/schedules [post]
func (h *DoctorScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	schedule, err := h.scheduleUsecase.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		case errors.Is(err, usecase.ErrInvalidTimeRange), errors.Is(err, usecase.ErrInvalidClockFormat):
			response.DomainFailure(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to create schedule")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Schedule created successfully", schedule)
}

// GetByDoctorID handles listing a doctor's weekly template
// @Summary Get schedule entries for a doctor
// @Tags Schedules
// @Security BearerAuth
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Router /admin/doctors/{id}/schedules [get]
func (h *DoctorScheduleHandler) GetByDoctorID(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	schedules, err := h.scheduleUsecase.GetByDoctorID(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to get schedules")
		return
	}

	message := "Schedules retrieved successfully"
	if schedules.Total == 0 {
		message = "No schedules found for this doctor"
	}

	response.Success(w, http.StatusOK, message, schedules)
}

// Update handles changing a weekly schedule entry
// @Summary Update a schedule entry
// @Tags Schedules
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Schedule ID"
// @Param request body dto.UpdateScheduleRequest true "Update Schedule Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/schedules/{id} [put]
func (h *DoctorScheduleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid schedule ID", nil)
		return
	}

	var req dto.UpdateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	schedule, err := h.scheduleUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrScheduleNotFound):
			response.NotFound(w, "Schedule not found")
		case errors.Is(err, usecase.ErrInvalidTimeRange), errors.Is(err, usecase.ErrInvalidClockFormat):
			response.DomainFailure(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to update schedule")
		}
		return
	}

	response.Success(w, http.StatusOK, "Schedule updated successfully", schedule)
}

// Delete handles removing a weekly schedule entry
// @Summary Delete a schedule entry
// @Tags Schedules
// @Security BearerAuth
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/schedules/{id} [delete]
func (h *DoctorScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid schedule ID", nil)
		return
	}

	if err := h.scheduleUsecase.Delete(r.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrScheduleNotFound) {
			response.NotFound(w, "Schedule not found")
			return
		}
		response.InternalServerError(w, "Failed to delete schedule")
		return
	}

	response.Success(w, http.StatusOK, "Schedule deleted successfully", nil)
}
