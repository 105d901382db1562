package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/schoolpay/feeledger/internal/adapter/http/dto"
	"github.com/schoolpay/feeledger/internal/domain"
	"github.com/schoolpay/feeledger/internal/usecase"
	"github.com/schoolpay/feeledger/internal/usecase/mocks"
)

// passthroughRetrier runs the operation once and counts attempts.
type passthroughRetrier struct {
	attempts int
}

func (r *passthroughRetrier) Retry(ctx context.Context, operation func() error) error {
	r.attempts++
	return operation()
}

func newPaymentHandlerFixture() (*PaymentHandler, *mocks.MockStudentAccountRepository, *passthroughRetrier) {
	accountRepo := mocks.NewMockStudentAccountRepository()
	paymentRepo := mocks.NewMockPaymentRepository()
	journalRepo := mocks.NewMockJournalRepository()

	uc := usecase.NewPaymentUseCase(
		mocks.NewMockTransactionManager(),
		accountRepo,
		paymentRepo,
		journalRepo,
		mocks.NewMockIDGenerator(),
		mocks.NewMockNotifier(),
		nil,
	)

	retrier := &passthroughRetrier{}

	return NewPaymentHandler(uc, retrier), accountRepo, retrier
}

func seedHandlerAccount(repo *mocks.MockStudentAccountRepository) {
	repo.Put(&domain.StudentAccount{
		ID:            "acc-1",
		StudentID:     "student-1",
		StudentName:   "Amina Yusuf",
		ClassID:       "class-1",
		TuitionFee:    decimal.NewFromInt(100000),
		AmountDue:     decimal.NewFromInt(100000),
		TuitionStatus: domain.TuitionStatusPartial,
	})
}

func TestPaymentHandler_Record_Success(t *testing.T) {
	h, accountRepo, retrier := newPaymentHandlerFixture()
	seedHandlerAccount(accountRepo)

	body, _ := json.Marshal(dto.RecordPaymentRequest{
		StudentID: "student-1",
		Amount:    decimal.NewFromInt(40000),
		PayerName: "Mr Yusuf",
		Method:    "cash",
	})

	req := httptest.NewRequest(http.MethodPost, "/payments", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Record(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if retrier.attempts != 1 {
		t.Fatalf("expected operation to run through the retrier once, got %d", retrier.attempts)
	}

	var resp dto.PaymentResultResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.NewBalance.Equal(decimal.NewFromInt(60000)) {
		t.Fatalf("expected new balance 60000, got %s", resp.NewBalance)
	}
	if resp.NewStatus != string(domain.TuitionStatusPartial) {
		t.Fatalf("expected partial status, got %s", resp.NewStatus)
	}
	if resp.ReceiptNo == "" || resp.PaymentID == "" || resp.JournalEntryID == "" {
		t.Fatalf("expected receipt, payment and journal IDs to be set: %+v", resp)
	}
}

func TestPaymentHandler_Record_InvalidBody(t *testing.T) {
	h, _, retrier := newPaymentHandlerFixture()

	req := httptest.NewRequest(http.MethodPost, "/payments", bytes.NewBufferString("{bad json"))
	rec := httptest.NewRecorder()

	h.Record(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if retrier.attempts != 0 {
		t.Fatalf("expected no retrier invocation for invalid body")
	}
}

func TestPaymentHandler_Record_UnknownStudent(t *testing.T) {
	h, _, _ := newPaymentHandlerFixture()

	body, _ := json.Marshal(dto.RecordPaymentRequest{
		StudentID: "ghost",
		Amount:    decimal.NewFromInt(1000),
		PayerName: "Someone",
		Method:    "cash",
	})

	req := httptest.NewRequest(http.MethodPost, "/payments", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Record(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestPaymentHandler_Record_WriteConflictMapsToConflict(t *testing.T) {
	h, accountRepo, _ := newPaymentHandlerFixture()
	seedHandlerAccount(accountRepo)

	// A stale snapshot on every read makes the version check fail each attempt.
	accountRepo.GetByStudentIDForUpdateFunc = func(ctx context.Context, tx usecase.Transaction, studentID string) (*domain.StudentAccount, error) {
		return &domain.StudentAccount{
			ID:            "acc-1",
			StudentID:     "student-1",
			StudentName:   "Amina Yusuf",
			AmountDue:     decimal.NewFromInt(100000),
			TuitionStatus: domain.TuitionStatusPartial,
			Version:       7,
		}, nil
	}

	body, _ := json.Marshal(dto.RecordPaymentRequest{
		StudentID: "student-1",
		Amount:    decimal.NewFromInt(1000),
		PayerName: "Mr Yusuf",
		Method:    "bank_transfer",
	})

	req := httptest.NewRequest(http.MethodPost, "/payments", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Record(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 after retries exhausted, got %d", rec.Code)
	}
}

func TestPaymentHandler_Get_NotFound(t *testing.T) {
	h, _, _ := newPaymentHandlerFixture()

	req := newChiRequest(http.MethodGet, "/payments/missing", "id", "missing")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
