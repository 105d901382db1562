package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/schoolpay/feeledger/internal/adapter/http/dto"
	"github.com/schoolpay/feeledger/internal/domain"
	"github.com/schoolpay/feeledger/internal/usecase"
)

// PaymentHandler handles payment-related HTTP requests.
type PaymentHandler struct {
	paymentUC *usecase.PaymentUseCase
	retrier   usecase.Retrier
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentUC *usecase.PaymentUseCase, retrier usecase.Retrier) *PaymentHandler {
	return &PaymentHandler{paymentUC: paymentUC, retrier: retrier}
}

// Record records a tuition payment. Losing a concurrent update re-runs the
// whole operation from scratch, so the retried attempt sees the winner's
// committed balance.
func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input := req.ToUseCaseInput()

	var result *usecase.PaymentResult
	err := h.retrier.Retry(r.Context(), func() error {
		var opErr error
		result, opErr = h.paymentUC.RecordPayment(r.Context(), input)
		return opErr
	})
	if err != nil {
		status := mapDomainError(err)
		if errors.Is(err, domain.ErrWriteConflict) {
			// Retries exhausted; the client may safely resubmit.
			writeError(w, status, "payment could not be recorded due to concurrent updates", err.Error())
			return
		}
		writeError(w, status, "failed to record payment", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.PaymentResultFromUseCase(result))
}

// Get retrieves a payment by ID.
func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing payment ID", "")
		return
	}

	payment, err := h.paymentUC.GetPayment(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get payment", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentFromDomain(payment))
}

// GetReceipt retrieves the receipt payload for a payment.
func (h *PaymentHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing payment ID", "")
		return
	}

	receipt, err := h.paymentUC.GetReceipt(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get receipt", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ReceiptFromUseCase(receipt))
}

// ListByStudent lists payments for a student, newest first.
func (h *PaymentHandler) ListByStudent(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")
	if studentID == "" {
		writeError(w, http.StatusBadRequest, "missing student ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	payments, err := h.paymentUC.ListPaymentsByStudent(r.Context(), usecase.ListPaymentsByStudentInput{
		StudentID: studentID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list payments", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentsFromDomain(payments))
}
