package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/schoolpay/feeledger/internal/adapter/http/dto"
	"github.com/schoolpay/feeledger/internal/usecase"
)

// ReconciliationHandler handles reconciliation HTTP requests.
type ReconciliationHandler struct {
	reconciliationUC *usecase.ReconciliationUseCase
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(reconciliationUC *usecase.ReconciliationUseCase) *ReconciliationHandler {
	return &ReconciliationHandler{reconciliationUC: reconciliationUC}
}

// ReconcileStudent recomputes a student's balance from the payment ledger.
func (h *ReconciliationHandler) ReconcileStudent(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")
	if studentID == "" {
		writeError(w, http.StatusBadRequest, "missing student ID", "")
		return
	}

	result, err := h.reconciliationUC.ReconcileStudent(r.Context(), studentID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to reconcile student", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationFromUseCase(result))
}

// CheckPairing verifies payment to journal entry pairing across the book.
func (h *ReconciliationHandler) CheckPairing(w http.ResponseWriter, r *http.Request) {
	result, err := h.reconciliationUC.CheckPairing(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check ledger pairing", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyFromUseCase(result))
}
