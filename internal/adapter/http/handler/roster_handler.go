package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/schoolpay/feeledger/internal/adapter/http/dto"
	"github.com/schoolpay/feeledger/internal/usecase"
)

// RosterHandler handles class roster HTTP requests.
type RosterHandler struct {
	rosterUC *usecase.RosterUseCase
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(rosterUC *usecase.RosterUseCase) *RosterHandler {
	return &RosterHandler{rosterUC: rosterUC}
}

// Create creates a class roster.
func (h *RosterHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRosterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	roster, err := h.rosterUC.CreateRoster(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create roster", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.RosterFromDomain(roster))
}

// Get retrieves a roster by class ID.
func (h *RosterHandler) Get(w http.ResponseWriter, r *http.Request) {
	classID := chi.URLParam(r, "classID")
	if classID == "" {
		writeError(w, http.StatusBadRequest, "missing class ID", "")
		return
	}

	roster, err := h.rosterUC.GetRoster(r.Context(), classID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get roster", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.RosterFromDomain(roster))
}

// List lists class rosters.
func (h *RosterHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	rosters, err := h.rosterUC.ListRosters(r.Context(), usecase.ListRostersInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list rosters", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RostersFromDomain(rosters))
}
