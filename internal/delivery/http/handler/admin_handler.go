package handler

import (
	"errors"
	"net/http"
	"strconv"

	"smart-bed-allocation/internal/service"
	"smart-bed-allocation/internal/usecase"
	"smart-bed-allocation/pkg/response"
)

type AdminHandler struct {
	reconciliationUsecase usecase.ReconciliationUsecase
	auditService          service.AuditService
}

func NewAdminHandler(reconciliationUsecase usecase.ReconciliationUsecase, auditService service.AuditService) *AdminHandler {
	return &AdminHandler{
		reconciliationUsecase: reconciliationUsecase,
		auditService:          auditService,
	}
}

// ReconcileRegistry repairs inconsistent hospital records. Safe to call
// repeatedly; a clean registry results in zero repairs.
func (h *AdminHandler) ReconcileRegistry(w http.ResponseWriter, r *http.Request) {
	result, err := h.reconciliationUsecase.Reconcile(r.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrStorageUnavailable) {
			response.ServiceUnavailable(w, "Hospital registry is temporarily unavailable")
			return
		}
		response.InternalServerError(w, "Failed to reconcile registry")
		return
	}

	response.Success(w, http.StatusOK, "Registry reconciled successfully", result)
}

func (h *AdminHandler) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	logs, err := h.auditService.RecentActivity(r.Context(), limit)
	if err != nil {
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", logs)
}
