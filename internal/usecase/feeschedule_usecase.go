package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/schoolpay/feeledger/internal/domain"
	"github.com/schoolpay/feeledger/internal/infrastructure/metrics"
)

const feeCacheKeyPrefix = "fee:grade:"

// FeeScheduleUseCase manages the grade-to-tuition fee schedule. Edits never
// cascade into accounts already billed; the snapshot taken at enrollment is
// final.
type FeeScheduleUseCase struct {
	feeRepo FeeScheduleRepository
	cache   Cache
	metrics *metrics.Metrics
}

// NewFeeScheduleUseCase creates a new FeeScheduleUseCase.
func NewFeeScheduleUseCase(feeRepo FeeScheduleRepository, cache Cache, metrics *metrics.Metrics) *FeeScheduleUseCase {
	return &FeeScheduleUseCase{
		feeRepo: feeRepo,
		cache:   cache,
		metrics: metrics,
	}
}

// UpsertFeeEntryInput represents input for creating or replacing a fee entry.
type UpsertFeeEntryInput struct {
	Grade           string
	AnnualAmount    decimal.Decimal
	InstallmentPlan string
}

// UpsertFeeEntry creates or replaces the fee entry for a grade.
func (uc *FeeScheduleUseCase) UpsertFeeEntry(ctx context.Context, input UpsertFeeEntryInput) (*domain.FeeScheduleEntry, error) {
	now := time.Now().UTC()

	entry := &domain.FeeScheduleEntry{
		Grade:           input.Grade,
		AnnualAmount:    input.AnnualAmount,
		InstallmentPlan: input.InstallmentPlan,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := uc.feeRepo.Upsert(ctx, entry); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.FeeScheduleUpserts.Inc()
	}

	uc.invalidate(ctx, input.Grade)

	return entry, nil
}

// GetFeeEntry retrieves the fee entry for a grade, consulting the cache first.
func (uc *FeeScheduleUseCase) GetFeeEntry(ctx context.Context, grade string) (*domain.FeeScheduleEntry, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, feeCacheKeyPrefix+grade); err == nil {
			if amount, err := decimal.NewFromString(cached); err == nil {
				uc.countCacheLookup("hit")
				return &domain.FeeScheduleEntry{Grade: grade, AnnualAmount: amount}, nil
			}
		}
		uc.countCacheLookup("miss")
	}

	entry, err := uc.feeRepo.GetByGrade(ctx, grade)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		_ = uc.cache.Set(ctx, feeCacheKeyPrefix+grade, entry.AnnualAmount.String(), FeeScheduleCacheTTL)
	}

	return entry, nil
}

// DeleteFeeEntry removes the fee entry for a grade. Deleting an absent entry
// is not an error: already-billed accounts keep their snapshot either way.
func (uc *FeeScheduleUseCase) DeleteFeeEntry(ctx context.Context, grade string) error {
	err := uc.feeRepo.Delete(ctx, grade)
	if err != nil && !errors.Is(err, domain.ErrFeeEntryNotFound) {
		return err
	}

	uc.invalidate(ctx, grade)

	return nil
}

// ListFeeEntriesInput represents input for listing fee entries.
type ListFeeEntriesInput struct {
	Limit  int
	Offset int
}

// ListFeeEntries lists fee schedule entries.
func (uc *FeeScheduleUseCase) ListFeeEntries(ctx context.Context, input ListFeeEntriesInput) ([]*domain.FeeScheduleEntry, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.feeRepo.List(ctx, limit, offset)
}

func (uc *FeeScheduleUseCase) invalidate(ctx context.Context, grade string) {
	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, feeCacheKeyPrefix+grade)
	}
}

func (uc *FeeScheduleUseCase) countCacheLookup(outcome string) {
	if uc.metrics != nil {
		uc.metrics.FeeScheduleCacheHits.WithLabelValues(outcome).Inc()
	}
}
