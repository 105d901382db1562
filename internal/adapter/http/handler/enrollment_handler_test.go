package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/schoolpay/feeledger/internal/adapter/http/dto"
	"github.com/schoolpay/feeledger/internal/domain"
	"github.com/schoolpay/feeledger/internal/usecase"
	"github.com/schoolpay/feeledger/internal/usecase/mocks"
)

func newEnrollmentHandlerFixture() (*EnrollmentHandler, *mocks.MockRosterRepository, *mocks.MockFeeScheduleRepository) {
	rosterRepo := mocks.NewMockRosterRepository()
	feeRepo := mocks.NewMockFeeScheduleRepository()

	uc := usecase.NewEnrollmentUseCase(
		mocks.NewMockTransactionManager(),
		mocks.NewMockStudentAccountRepository(),
		rosterRepo,
		feeRepo,
		mocks.NewMockIDGenerator(),
		nil,
	)

	return NewEnrollmentHandler(uc), rosterRepo, feeRepo
}

func TestEnrollmentHandler_Enroll_Success(t *testing.T) {
	h, rosterRepo, feeRepo := newEnrollmentHandlerFixture()

	rosterRepo.Put(&domain.ClassRoster{ClassID: "class-1", Name: "JSS1 Gold", Grade: "jss1"})
	feeRepo.Put(&domain.FeeScheduleEntry{
		Grade:        "jss1",
		AnnualAmount: decimal.NewFromInt(85000),
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	})

	body, _ := json.Marshal(dto.EnrollRequest{
		StudentID:   "student-1",
		StudentName: "Amina Yusuf",
		ClassID:     "class-1",
	})

	req := httptest.NewRequest(http.MethodPost, "/enrollments", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Enroll(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.TuitionFee.Equal(decimal.NewFromInt(85000)) || !resp.AmountDue.Equal(decimal.NewFromInt(85000)) {
		t.Fatalf("expected fee snapshot 85000, got %+v", resp)
	}
	if resp.TuitionStatus != string(domain.TuitionStatusPartial) {
		t.Fatalf("expected partial status for unpaid fee, got %s", resp.TuitionStatus)
	}
}

func TestEnrollmentHandler_Enroll_MissingFields(t *testing.T) {
	h, _, _ := newEnrollmentHandlerFixture()

	body, _ := json.Marshal(dto.EnrollRequest{StudentID: "student-1"})

	req := httptest.NewRequest(http.MethodPost, "/enrollments", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Enroll(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestEnrollmentHandler_Enroll_UnknownClass(t *testing.T) {
	h, _, _ := newEnrollmentHandlerFixture()

	body, _ := json.Marshal(dto.EnrollRequest{
		StudentID:   "student-1",
		StudentName: "Amina Yusuf",
		ClassID:     "no-such-class",
	})

	req := httptest.NewRequest(http.MethodPost, "/enrollments", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Enroll(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestEnrollmentHandler_Enroll_DuplicateConflict(t *testing.T) {
	h, rosterRepo, _ := newEnrollmentHandlerFixture()

	rosterRepo.Put(&domain.ClassRoster{ClassID: "class-1", Name: "JSS1 Gold", Grade: "jss1"})

	body, _ := json.Marshal(dto.EnrollRequest{
		StudentID:   "student-1",
		StudentName: "Amina Yusuf",
		ClassID:     "class-1",
	})

	req := httptest.NewRequest(http.MethodPost, "/enrollments", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Enroll(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected first enrollment to succeed, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/enrollments", bytes.NewReader(body))
	rec = httptest.NewRecorder()
	h.Enroll(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate enrollment, got %d", rec.Code)
	}
}
