package handler

import (
	"encoding/json"
	"net/http"

	"github.com/schoolpay/feeledger/internal/adapter/http/dto"
	"github.com/schoolpay/feeledger/internal/usecase"
)

// EnrollmentHandler handles enrollment HTTP requests.
type EnrollmentHandler struct {
	enrollmentUC *usecase.EnrollmentUseCase
}

// NewEnrollmentHandler creates a new EnrollmentHandler.
func NewEnrollmentHandler(enrollmentUC *usecase.EnrollmentUseCase) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentUC: enrollmentUC}
}

// Enroll enrolls a student into a class.
func (h *EnrollmentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	var req dto.EnrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.StudentID == "" || req.StudentName == "" || req.ClassID == "" {
		writeError(w, http.StatusBadRequest, "student_id, student_name and class_id are required", "")
		return
	}

	account, err := h.enrollmentUC.Enroll(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to enroll student", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}
