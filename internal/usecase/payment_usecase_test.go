package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	"github.com/schoolpay/feeledger/internal/domain"
	"github.com/schoolpay/feeledger/internal/infrastructure/metrics"
	"github.com/schoolpay/feeledger/internal/usecase"
	"github.com/schoolpay/feeledger/internal/usecase/mocks"
)

func newPaymentFixture() (*usecase.PaymentUseCase, *mocks.MockStudentAccountRepository, *mocks.MockPaymentRepository, *mocks.MockJournalRepository, *mocks.MockTransactionManager, *mocks.MockNotifier) {
	accountRepo := mocks.NewMockStudentAccountRepository()
	paymentRepo := mocks.NewMockPaymentRepository()
	journalRepo := mocks.NewMockJournalRepository()
	txMgr := mocks.NewMockTransactionManager()
	notifier := mocks.NewMockNotifier()
	idGen := mocks.NewMockIDGenerator()

	uc := usecase.NewPaymentUseCase(txMgr, accountRepo, paymentRepo, journalRepo, idGen, notifier, nil)

	return uc, accountRepo, paymentRepo, journalRepo, txMgr, notifier
}

func seedAccount(repo *mocks.MockStudentAccountRepository, studentID string, fee, due int64) *domain.StudentAccount {
	account := &domain.StudentAccount{
		ID:            "acc-" + studentID,
		StudentID:     studentID,
		StudentName:   "Amina Yusuf",
		ClassID:       "class-1",
		TuitionFee:    decimal.NewFromInt(fee),
		AmountDue:     decimal.NewFromInt(due),
		TuitionStatus: domain.DeriveTuitionStatus(decimal.NewFromInt(due)),
	}
	repo.Put(account)

	return account
}

func TestPaymentUseCase_RecordPayment(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.RecordPaymentInput
		seed        func(*mocks.MockStudentAccountRepository)
		expectError error
		wantBalance int64
		wantStatus  domain.TuitionStatus
	}{
		{
			name: "partial payment",
			input: usecase.RecordPaymentInput{
				StudentID: "stu-1",
				Amount:    decimal.NewFromInt(30000),
				PayerName: "Jane Doe",
				Method:    domain.PaymentMethodCash,
			},
			seed: func(repo *mocks.MockStudentAccountRepository) {
				seedAccount(repo, "stu-1", 100000, 100000)
			},
			wantBalance: 70000,
			wantStatus:  domain.TuitionStatusPartial,
		},
		{
			name: "exact payoff",
			input: usecase.RecordPaymentInput{
				StudentID: "stu-1",
				Amount:    decimal.NewFromInt(30000),
				PayerName: "Jane Doe",
				Method:    domain.PaymentMethodBank,
			},
			seed: func(repo *mocks.MockStudentAccountRepository) {
				seedAccount(repo, "stu-1", 100000, 30000)
			},
			wantBalance: 0,
			wantStatus:  domain.TuitionStatusPaid,
		},
		{
			name: "overpayment allowed",
			input: usecase.RecordPaymentInput{
				StudentID: "stu-1",
				Amount:    decimal.NewFromInt(70000),
				PayerName: "Jane Doe",
				Method:    domain.PaymentMethodMobile,
			},
			seed: func(repo *mocks.MockStudentAccountRepository) {
				seedAccount(repo, "stu-1", 50000, 50000)
			},
			wantBalance: -20000,
			wantStatus:  domain.TuitionStatusPaid,
		},
		{
			name: "zero amount rejected",
			input: usecase.RecordPaymentInput{
				StudentID: "stu-1",
				Amount:    decimal.Zero,
				PayerName: "Jane Doe",
			},
			seed:        func(repo *mocks.MockStudentAccountRepository) { seedAccount(repo, "stu-1", 100000, 100000) },
			expectError: domain.ErrInvalidAmount,
		},
		{
			name: "missing payer rejected",
			input: usecase.RecordPaymentInput{
				StudentID: "stu-1",
				Amount:    decimal.NewFromInt(100),
			},
			seed:        func(repo *mocks.MockStudentAccountRepository) { seedAccount(repo, "stu-1", 100000, 100000) },
			expectError: domain.ErrInvalidPayer,
		},
		{
			name: "unknown student",
			input: usecase.RecordPaymentInput{
				StudentID: "nobody",
				Amount:    decimal.NewFromInt(100),
				PayerName: "Jane Doe",
			},
			seed:        func(repo *mocks.MockStudentAccountRepository) {},
			expectError: domain.ErrStudentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, accountRepo, paymentRepo, journalRepo, _, _ := newPaymentFixture()
			tt.seed(accountRepo)

			result, err := uc.RecordPayment(context.Background(), tt.input)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected error %v, got %v", tt.expectError, err)
				}

				if len(paymentRepo.All()) != 0 || len(journalRepo.All()) != 0 {
					t.Error("failed payment must not append ledger or journal entries")
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !result.NewBalance.Equal(decimal.NewFromInt(tt.wantBalance)) {
				t.Errorf("expected balance %d, got %s", tt.wantBalance, result.NewBalance)
			}

			if result.NewStatus != tt.wantStatus {
				t.Errorf("expected status %s, got %s", tt.wantStatus, result.NewStatus)
			}

			// The committed account must mirror the returned result exactly.
			stored, _ := accountRepo.GetByStudentID(context.Background(), tt.input.StudentID)
			if !stored.AmountDue.Equal(result.NewBalance) || stored.TuitionStatus != result.NewStatus {
				t.Errorf("stored account %s/%s does not match result %s/%s",
					stored.AmountDue, stored.TuitionStatus, result.NewBalance, result.NewStatus)
			}
		})
	}
}

func TestPaymentUseCase_JournalPairing(t *testing.T) {
	uc, accountRepo, paymentRepo, journalRepo, _, _ := newPaymentFixture()
	seedAccount(accountRepo, "stu-1", 100000, 100000)

	for _, amount := range []int64{30000, 40000, 30000} {
		_, err := uc.RecordPayment(context.Background(), usecase.RecordPaymentInput{
			StudentID: "stu-1",
			Amount:    decimal.NewFromInt(amount),
			PayerName: "Jane Doe",
			Method:    domain.PaymentMethodCash,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	payments := paymentRepo.All()
	entries := journalRepo.All()

	if len(payments) != 3 || len(entries) != 3 {
		t.Fatalf("expected 3 payments and 3 journal entries, got %d/%d", len(payments), len(entries))
	}

	seen := make(map[string]bool)
	for _, e := range entries {
		seen[e.ID] = true

		if e.Direction != domain.DirectionRevenue || e.Category != domain.CategoryTuition {
			t.Errorf("journal entry %s: expected revenue/Tuition, got %s/%s", e.ID, e.Direction, e.Category)
		}
	}

	for _, p := range payments {
		if !seen[p.JournalEntryID] {
			t.Errorf("payment %s references missing journal entry %s", p.ID, p.JournalEntryID)
		}

		delete(seen, p.JournalEntryID)
	}

	if len(seen) != 0 {
		t.Errorf("%d journal entries have no paired payment", len(seen))
	}
}

func TestPaymentUseCase_DefaultDescription(t *testing.T) {
	uc, accountRepo, paymentRepo, _, _, _ := newPaymentFixture()
	seedAccount(accountRepo, "stu-1", 100000, 100000)

	_, err := uc.RecordPayment(context.Background(), usecase.RecordPaymentInput{
		StudentID: "stu-1",
		Amount:    decimal.NewFromInt(500),
		PayerName: "Jane Doe",
		Method:    domain.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payments := paymentRepo.All()
	if len(payments) != 1 {
		t.Fatalf("expected 1 payment, got %d", len(payments))
	}

	if !strings.Contains(payments[0].Description, "Amina Yusuf") {
		t.Errorf("expected default description to carry student name, got %q", payments[0].Description)
	}
}

func TestPaymentUseCase_AtomicityOnJournalFailure(t *testing.T) {
	uc, accountRepo, paymentRepo, journalRepo, txMgr, notifier := newPaymentFixture()
	seedAccount(accountRepo, "stu-1", 100000, 100000)

	boom := errors.New("journal write failed")
	journalRepo.CreateFunc = func(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
		return boom
	}

	_, err := uc.RecordPayment(context.Background(), usecase.RecordPaymentInput{
		StudentID: "stu-1",
		Amount:    decimal.NewFromInt(500),
		PayerName: "Jane Doe",
		Method:    domain.PaymentMethodCash,
	})

	if !errors.Is(err, boom) {
		t.Fatalf("expected journal failure to surface, got %v", err)
	}

	if txMgr.LastTx == nil || txMgr.LastTx.Committed {
		t.Error("transaction must not be committed after a failed write")
	}

	if !txMgr.LastTx.RolledBack {
		t.Error("transaction must be rolled back after a failed write")
	}

	if len(paymentRepo.All()) != 0 {
		t.Error("no payment entry may be observable after a failed commit")
	}

	if len(notifier.Calls()) != 0 {
		t.Error("notifier must not fire for a failed payment")
	}
}

func TestPaymentUseCase_WriteConflictSurfaces(t *testing.T) {
	uc, accountRepo, _, _, _, _ := newPaymentFixture()

	// Both calls observe the same stale snapshot, as two racing requests
	// would before the row lock serializes them.
	stale := seedAccount(accountRepo, "stu-1", 15000, 15000)
	snapshot := *stale
	accountRepo.GetByStudentIDForUpdateFunc = func(ctx context.Context, tx usecase.Transaction, studentID string) (*domain.StudentAccount, error) {
		s := snapshot
		return &s, nil
	}

	input := usecase.RecordPaymentInput{
		StudentID: "stu-1",
		Amount:    decimal.NewFromInt(10000),
		PayerName: "Jane Doe",
		Method:    domain.PaymentMethodCash,
	}

	if _, err := uc.RecordPayment(context.Background(), input); err != nil {
		t.Fatalf("first payment failed: %v", err)
	}

	_, err := uc.RecordPayment(context.Background(), input)
	if !errors.Is(err, domain.ErrWriteConflict) {
		t.Fatalf("expected ErrWriteConflict for stale version, got %v", err)
	}

	// A retry re-reads the committed state and lands the second payment.
	accountRepo.GetByStudentIDForUpdateFunc = nil

	result, err := uc.RecordPayment(context.Background(), input)
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}

	if !result.NewBalance.Equal(decimal.NewFromInt(-5000)) {
		t.Errorf("expected both payments reflected (-5000), got %s", result.NewBalance)
	}
}

func TestPaymentUseCase_NotifierFires(t *testing.T) {
	uc, accountRepo, _, _, _, notifier := newPaymentFixture()
	seedAccount(accountRepo, "stu-1", 100000, 100000)

	result, err := uc.RecordPayment(context.Background(), usecase.RecordPaymentInput{
		StudentID: "stu-1",
		Amount:    decimal.NewFromInt(30000),
		PayerName: "Jane Doe",
		Method:    domain.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	calls := notifier.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(calls))
	}

	if calls[0].StudentID != "stu-1" || !calls[0].NewBalance.Equal(result.NewBalance) || calls[0].NewStatus != result.NewStatus {
		t.Errorf("notification does not match committed state: %+v", calls[0])
	}
}

func TestPaymentUseCase_RecordsMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
	m := metrics.New()

	accountRepo := mocks.NewMockStudentAccountRepository()
	uc := usecase.NewPaymentUseCase(
		mocks.NewMockTransactionManager(),
		accountRepo,
		mocks.NewMockPaymentRepository(),
		mocks.NewMockJournalRepository(),
		mocks.NewMockIDGenerator(),
		mocks.NewMockNotifier(),
		m,
	)

	seedAccount(accountRepo, "stu-1", 30000, 30000)

	input := usecase.RecordPaymentInput{
		StudentID: "stu-1",
		Amount:    decimal.NewFromInt(30000),
		PayerName: "Jane Doe",
		Method:    domain.PaymentMethodCash,
	}

	if _, err := uc.RecordPayment(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := testutil.ToFloat64(m.PaymentsRecorded); got != 1 {
		t.Errorf("expected 1 recorded payment, got %f", got)
	}

	// The account crossed from partial to paid on this payment.
	if got := testutil.ToFloat64(m.AccountsFullyPaid); got != 1 {
		t.Errorf("expected 1 fully paid account, got %f", got)
	}

	// Replay against a stale snapshot so the version check fails.
	stale, _ := accountRepo.GetByStudentID(context.Background(), "stu-1")
	snapshot := *stale
	snapshot.Version = 0
	accountRepo.GetByStudentIDForUpdateFunc = func(ctx context.Context, tx usecase.Transaction, studentID string) (*domain.StudentAccount, error) {
		s := snapshot
		return &s, nil
	}

	if _, err := uc.RecordPayment(context.Background(), input); !errors.Is(err, domain.ErrWriteConflict) {
		t.Fatalf("expected ErrWriteConflict, got %v", err)
	}

	if got := testutil.ToFloat64(m.WriteConflicts); got != 1 {
		t.Errorf("expected 1 write conflict counted, got %f", got)
	}

	if got := testutil.ToFloat64(m.PaymentErrors.WithLabelValues("write_conflict")); got != 1 {
		t.Errorf("expected 1 payment error counted, got %f", got)
	}
}

func TestPaymentUseCase_GetReceipt(t *testing.T) {
	uc, accountRepo, _, _, _, _ := newPaymentFixture()
	seedAccount(accountRepo, "stu-1", 100000, 100000)

	result, err := uc.RecordPayment(context.Background(), usecase.RecordPaymentInput{
		StudentID:   "stu-1",
		Amount:      decimal.NewFromInt(30000),
		Description: "Term 1 installment",
		PayerName:   "Jane Doe",
		Method:      domain.PaymentMethodCheque,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ReceiptNo == "" {
		t.Error("expected a receipt number on the payment result")
	}

	receipt, err := uc.GetReceipt(context.Background(), result.PaymentID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if receipt.Payment.ID != result.PaymentID {
		t.Errorf("receipt payment mismatch: %s != %s", receipt.Payment.ID, result.PaymentID)
	}

	if receipt.JournalEntry.ID != result.JournalEntryID {
		t.Errorf("receipt journal mismatch: %s != %s", receipt.JournalEntry.ID, result.JournalEntryID)
	}

	if !receipt.JournalEntry.Amount.Equal(receipt.Payment.Amount) {
		t.Error("paired journal entry must carry the payment amount")
	}
}
