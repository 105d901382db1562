package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/schoolpay/feeledger/internal/adapter/http/dto"
	"github.com/schoolpay/feeledger/internal/usecase"
)

// JournalHandler handles journal HTTP requests.
type JournalHandler struct {
	journalUC *usecase.JournalUseCase
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(journalUC *usecase.JournalUseCase) *JournalHandler {
	return &JournalHandler{journalUC: journalUC}
}

// Get retrieves a journal entry by ID.
func (h *JournalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	entry, err := h.journalUC.GetEntry(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get journal entry", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.JournalEntryFromDomain(entry))
}

// List lists journal entries, optionally filtered by category.
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.journalUC.ListEntries(r.Context(), usecase.ListEntriesInput{
		Category: r.URL.Query().Get("category"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list journal entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.JournalEntriesFromDomain(entries))
}
