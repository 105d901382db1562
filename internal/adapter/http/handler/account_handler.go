package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/schoolpay/feeledger/internal/adapter/http/dto"
	"github.com/schoolpay/feeledger/internal/usecase"
)

// AccountHandler handles student account HTTP requests.
type AccountHandler struct {
	accountUC *usecase.AccountUseCase
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC *usecase.AccountUseCase) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Get retrieves a student account by student ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")
	if studentID == "" {
		writeError(w, http.StatusBadRequest, "missing student ID", "")
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), studentID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get account", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// ListByClass lists the student accounts in a class.
func (h *AccountHandler) ListByClass(w http.ResponseWriter, r *http.Request) {
	classID := chi.URLParam(r, "classID")
	if classID == "" {
		writeError(w, http.StatusBadRequest, "missing class ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	accounts, err := h.accountUC.ListAccountsByClass(r.Context(), usecase.ListAccountsByClassInput{
		ClassID: classID,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(accounts))
}
