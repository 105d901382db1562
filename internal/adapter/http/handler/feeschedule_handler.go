package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/schoolpay/feeledger/internal/adapter/http/dto"
	"github.com/schoolpay/feeledger/internal/usecase"
)

// FeeScheduleHandler handles fee schedule HTTP requests.
type FeeScheduleHandler struct {
	feeUC *usecase.FeeScheduleUseCase
}

// NewFeeScheduleHandler creates a new FeeScheduleHandler.
func NewFeeScheduleHandler(feeUC *usecase.FeeScheduleUseCase) *FeeScheduleHandler {
	return &FeeScheduleHandler{feeUC: feeUC}
}

// Upsert creates or replaces the fee entry for a grade.
func (h *FeeScheduleHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req dto.UpsertFeeEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.feeUC.UpsertFeeEntry(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to upsert fee entry", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.FeeEntryFromDomain(entry))
}

// Get retrieves the fee entry for a grade.
func (h *FeeScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	grade := chi.URLParam(r, "grade")
	if grade == "" {
		writeError(w, http.StatusBadRequest, "missing grade", "")
		return
	}

	entry, err := h.feeUC.GetFeeEntry(r.Context(), grade)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get fee entry", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.FeeEntryFromDomain(entry))
}

// Delete removes the fee entry for a grade. Deleting an absent entry succeeds.
func (h *FeeScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	grade := chi.URLParam(r, "grade")
	if grade == "" {
		writeError(w, http.StatusBadRequest, "missing grade", "")
		return
	}

	if err := h.feeUC.DeleteFeeEntry(r.Context(), grade); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to delete fee entry", err.Error())

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List lists fee schedule entries.
func (h *FeeScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.feeUC.ListFeeEntries(r.Context(), usecase.ListFeeEntriesInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list fee entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.FeeEntriesFromDomain(entries))
}
