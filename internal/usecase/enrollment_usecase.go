package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/schoolpay/feeledger/internal/domain"
	"github.com/schoolpay/feeledger/internal/infrastructure/metrics"
)

// EnrollmentUseCase registers students into classes, billing them from the
// fee schedule in force at that moment.
type EnrollmentUseCase struct {
	txManager   TransactionManager
	accountRepo StudentAccountRepository
	rosterRepo  RosterRepository
	feeRepo     FeeScheduleRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewEnrollmentUseCase creates a new EnrollmentUseCase.
func NewEnrollmentUseCase(
	txManager TransactionManager,
	accountRepo StudentAccountRepository,
	rosterRepo RosterRepository,
	feeRepo FeeScheduleRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *EnrollmentUseCase {
	return &EnrollmentUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		rosterRepo:  rosterRepo,
		feeRepo:     feeRepo,
		idGen:       idGen,
		metrics:     metrics,
	}
}

// EnrollInput represents input for enrolling a student.
type EnrollInput struct {
	StudentID   string
	StudentName string
	ClassID     string
}

// Enroll creates a student account billed from the fee schedule and bumps the
// class roster counter. Account creation and the roster increment commit as
// one unit: neither is ever observable without the other.
//
// A missing fee schedule entry for the class's grade is not an error; the
// student is billed zero and starts out paid.
func (uc *EnrollmentUseCase) Enroll(ctx context.Context, input EnrollInput) (*domain.StudentAccount, error) {
	account, err := uc.enroll(ctx, input)
	if uc.metrics != nil {
		if err != nil {
			uc.metrics.EnrollmentErrors.WithLabelValues(errorLabel(err)).Inc()
		} else {
			uc.metrics.EnrollmentsCreated.Inc()
		}
	}
	return account, err
}

func (uc *EnrollmentUseCase) enroll(ctx context.Context, input EnrollInput) (*domain.StudentAccount, error) {
	roster, err := uc.rosterRepo.GetByClassID(ctx, input.ClassID)
	if err != nil {
		return nil, err
	}

	annualAmount := decimal.Zero

	feeEntry, err := uc.feeRepo.GetByGrade(ctx, roster.Grade)
	switch {
	case err == nil:
		annualAmount = feeEntry.AnnualAmount
	case errors.Is(err, domain.ErrFeeEntryNotFound):
		// no schedule for this grade: fee stays zero
	default:
		return nil, err
	}

	now := time.Now().UTC()

	account := &domain.StudentAccount{
		ID:                uc.idGen.Generate(),
		StudentID:         input.StudentID,
		StudentName:       input.StudentName,
		ClassID:           input.ClassID,
		GradeAtEnrollment: roster.Grade,
		TuitionFee:        annualAmount,
		AmountDue:         annualAmount,
		TuitionStatus:     domain.DeriveTuitionStatus(annualAmount),
		Version:           0,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.accountRepo.CreateTx(ctx, tx, account); err != nil {
		return nil, err
	}

	if err := uc.rosterRepo.IncrementCount(ctx, tx, input.ClassID, 1); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return account, nil
}
