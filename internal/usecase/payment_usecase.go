package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/schoolpay/feeledger/internal/domain"
	"github.com/schoolpay/feeledger/internal/infrastructure/metrics"
)

// PaymentUseCase is the reconciliation engine. It applies a payment to a
// student account and appends the matching ledger and journal records, all
// inside one transaction.
type PaymentUseCase struct {
	txManager   TransactionManager
	accountRepo StudentAccountRepository
	paymentRepo PaymentRepository
	journalRepo JournalRepository
	idGen       IDGenerator
	notifier    Notifier
	metrics     *metrics.Metrics
}

// NewPaymentUseCase creates a new PaymentUseCase.
func NewPaymentUseCase(
	txManager TransactionManager,
	accountRepo StudentAccountRepository,
	paymentRepo PaymentRepository,
	journalRepo JournalRepository,
	idGen IDGenerator,
	notifier Notifier,
	metrics *metrics.Metrics,
) *PaymentUseCase {
	return &PaymentUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		paymentRepo: paymentRepo,
		journalRepo: journalRepo,
		idGen:       idGen,
		notifier:    notifier,
		metrics:     metrics,
	}
}

// RecordPaymentInput represents input for recording a payment.
type RecordPaymentInput struct {
	StudentID    string
	Amount       decimal.Decimal
	PaidAt       *time.Time
	Description  string
	PayerName    string
	PayerContact string
	Method       domain.PaymentMethod
}

// PaymentResult mirrors the committed state exactly. Callers render receipts
// from it and must not recompute balance or status on their own.
type PaymentResult struct {
	PaymentID      string
	JournalEntryID string
	ReceiptNo      string
	StudentID      string
	StudentName    string
	Amount         decimal.Decimal
	NewBalance     decimal.Decimal
	NewStatus      domain.TuitionStatus
	PaidAt         time.Time
	PayerName      string
	Method         domain.PaymentMethod
}

// RecordPayment applies one payment to a student account.
//
// The account row is locked for the duration of the transaction and its
// version is checked on write, so two racing payments serialize: the second
// observes the first's balance or fails with domain.ErrWriteConflict. The
// service never retries internally; the caller re-runs the whole operation.
//
// Overpayment is allowed. The balance goes negative and the status resolves
// to paid.
func (uc *PaymentUseCase) RecordPayment(ctx context.Context, input RecordPaymentInput) (*PaymentResult, error) {
	start := time.Now()

	result, err := uc.recordPayment(ctx, input)
	if uc.metrics == nil {
		return result, err
	}

	if err != nil {
		uc.metrics.PaymentErrors.WithLabelValues(errorLabel(err)).Inc()
		if errors.Is(err, domain.ErrWriteConflict) {
			uc.metrics.WriteConflicts.Inc()
		}
		return result, err
	}

	uc.metrics.PaymentsRecorded.Inc()
	uc.metrics.PaymentDuration.Observe(time.Since(start).Seconds())
	uc.metrics.PaymentAmount.Observe(result.Amount.InexactFloat64())

	// The balance before this payment was NewBalance + Amount, so the account
	// crossed into fully paid exactly when that prior balance was positive.
	if result.NewStatus == domain.TuitionStatusPaid && result.NewBalance.Add(result.Amount).IsPositive() {
		uc.metrics.AccountsFullyPaid.Inc()
	}

	return result, nil
}

func (uc *PaymentUseCase) recordPayment(ctx context.Context, input RecordPaymentInput) (*PaymentResult, error) {
	if err := domain.ValidatePaymentAmount(input.Amount); err != nil {
		return nil, err
	}

	if err := domain.ValidatePayerName(input.PayerName); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	now := time.Now().UTC()

	paidAt := now
	if input.PaidAt != nil {
		paidAt = input.PaidAt.UTC()
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByStudentIDForUpdate(ctx, tx, input.StudentID)
	if err != nil {
		return nil, err
	}

	newBalance := account.ApplyPayment(input.Amount)
	newStatus := domain.DeriveTuitionStatus(newBalance)

	description := input.Description
	if description == "" {
		description = fmt.Sprintf("Tuition payment for %s", account.StudentName)
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, account, newBalance, newStatus, now); err != nil {
		return nil, err
	}

	journalEntry := &domain.JournalEntry{
		ID:          uc.idGen.Generate(),
		EntryDate:   paidAt,
		Description: description,
		Category:    domain.CategoryTuition,
		Direction:   domain.DirectionRevenue,
		Amount:      input.Amount,
		CreatedAt:   now,
	}

	if err := journalEntry.Validate(); err != nil {
		return nil, err
	}

	if err := uc.journalRepo.Create(ctx, tx, journalEntry); err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		ID:             uc.idGen.Generate(),
		StudentID:      account.StudentID,
		PaidAt:         paidAt,
		Amount:         input.Amount,
		Description:    description,
		PayerName:      input.PayerName,
		PayerContact:   input.PayerContact,
		Method:         input.Method,
		JournalEntryID: journalEntry.ID,
		CreatedAt:      now,
	}

	if err := payment.Validate(); err != nil {
		return nil, err
	}

	if err := uc.paymentRepo.Create(ctx, tx, payment); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		uc.notifier.NotifyBalanceChanged(ctx, account.StudentID, newBalance, newStatus)
	}

	return &PaymentResult{
		PaymentID:      payment.ID,
		JournalEntryID: journalEntry.ID,
		ReceiptNo:      uuid.NewString(),
		StudentID:      account.StudentID,
		StudentName:    account.StudentName,
		Amount:         input.Amount,
		NewBalance:     newBalance,
		NewStatus:      newStatus,
		PaidAt:         paidAt,
		PayerName:      payment.PayerName,
		Method:         payment.Method,
	}, nil
}

// GetPayment retrieves a single ledger entry by ID.
func (uc *PaymentUseCase) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	return uc.paymentRepo.GetByID(ctx, id)
}

// ListPaymentsByStudentInput represents input for listing a student's payments.
type ListPaymentsByStudentInput struct {
	StudentID string
	Limit     int
	Offset    int
}

// ListPaymentsByStudent lists a student's payment history, newest first.
func (uc *PaymentUseCase) ListPaymentsByStudent(ctx context.Context, input ListPaymentsByStudentInput) ([]*domain.Payment, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.paymentRepo.ListByStudent(ctx, input.StudentID, limit, offset)
}

// Receipt joins a payment with its journal entry for rendering.
type Receipt struct {
	Payment      *domain.Payment
	JournalEntry *domain.JournalEntry
}

// GetReceipt returns the receipt payload for a recorded payment.
func (uc *PaymentUseCase) GetReceipt(ctx context.Context, paymentID string) (*Receipt, error) {
	payment, err := uc.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	journalEntry, err := uc.journalRepo.GetByID(ctx, payment.JournalEntryID)
	if err != nil {
		return nil, err
	}

	return &Receipt{Payment: payment, JournalEntry: journalEntry}, nil
}
