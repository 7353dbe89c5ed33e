package handler

import (
	"net/http"
	"strconv"

	"medical-appointment-api/internal/usecase"
	"medical-appointment-api/pkg/response"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{auditLogUsecase: auditLogUsecase}
}

// GetAll handles listing audit log entries
// @Summary Get audit logs
// @Tags AuditLogs
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Entries per page" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} response.Response
// @Router /admin/audit-logs [get]
func (h *AuditLogHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, _ := strconv.Atoi(query.Get("limit"))
	offset, _ := strconv.Atoi(query.Get("offset"))

	logs, err := h.auditLogUsecase.GetAll(r.Context(), limit, offset)
	if err != nil {
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	message := "Audit logs retrieved successfully"
	if logs.Total == 0 {
		message = "No audit logs found"
	}

	response.Success(w, http.StatusOK, message, logs)
}
