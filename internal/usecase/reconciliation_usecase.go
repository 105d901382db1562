package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/schoolpay/feeledger/internal/infrastructure/metrics"
)

// ReconciliationUseCase verifies the bookkeeping invariants: for every
// student, tuitionFee - sum(payments) must equal the stored balance, and
// every payment must reference exactly one journal entry.
type ReconciliationUseCase struct {
	accountRepo StudentAccountRepository
	paymentRepo PaymentRepository
	metrics     *metrics.Metrics
}

// NewReconciliationUseCase creates a new ReconciliationUseCase.
func NewReconciliationUseCase(
	accountRepo StudentAccountRepository,
	paymentRepo PaymentRepository,
	metrics *metrics.Metrics,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		accountRepo: accountRepo,
		paymentRepo: paymentRepo,
		metrics:     metrics,
	}
}

// StudentReconciliation is the result of checking a single student account.
type StudentReconciliation struct {
	StudentID         string
	TuitionFee        decimal.Decimal
	RecordedBalance   decimal.Decimal
	CalculatedBalance decimal.Decimal
	Difference        decimal.Decimal
	IsReconciled      bool
	CheckedAt         time.Time
}

// ReconcileStudent recomputes a student's balance from the payment ledger and
// compares it against the stored account state.
func (uc *ReconciliationUseCase) ReconcileStudent(ctx context.Context, studentID string) (*StudentReconciliation, error) {
	account, err := uc.accountRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	totalPaid, err := uc.accountRepo.SumPayments(ctx, studentID)
	if err != nil {
		return nil, err
	}

	calculated := account.TuitionFee.Sub(totalPaid)
	difference := account.AmountDue.Sub(calculated)

	if uc.metrics != nil {
		uc.metrics.ReconciliationRuns.Inc()
		if !difference.IsZero() {
			uc.metrics.ReconciliationMismatches.Inc()
		}
	}

	return &StudentReconciliation{
		StudentID:         studentID,
		TuitionFee:        account.TuitionFee,
		RecordedBalance:   account.AmountDue,
		CalculatedBalance: calculated,
		Difference:        difference,
		IsReconciled:      difference.IsZero(),
		CheckedAt:         time.Now().UTC(),
	}, nil
}

// LedgerConsistency is the result of the pairing check across the whole book.
type LedgerConsistency struct {
	UnpairedPayments int64
	IsConsistent     bool
	CheckedAt        time.Time
}

// CheckPairing verifies every payment ledger entry references a journal entry
// that actually exists. Payments and journal entries are created in one
// transaction, so any unpaired row means corruption.
func (uc *ReconciliationUseCase) CheckPairing(ctx context.Context) (*LedgerConsistency, error) {
	unpaired, err := uc.paymentRepo.CountUnpairedJournalRefs(ctx)
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ReconciliationRuns.Inc()
		if unpaired > 0 {
			uc.metrics.ReconciliationMismatches.Inc()
		}
	}

	return &LedgerConsistency{
		UnpairedPayments: unpaired,
		IsConsistent:     unpaired == 0,
		CheckedAt:        time.Now().UTC(),
	}, nil
}
