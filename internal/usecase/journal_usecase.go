package usecase

import (
	"context"

	"github.com/schoolpay/feeledger/internal/domain"
)

// JournalUseCase serves read-only accounting journal queries. Entries are
// appended exclusively by the payment engine; nothing here mutates.
type JournalUseCase struct {
	journalRepo JournalRepository
}

// NewJournalUseCase creates a new JournalUseCase.
func NewJournalUseCase(journalRepo JournalRepository) *JournalUseCase {
	return &JournalUseCase{journalRepo: journalRepo}
}

// GetEntry retrieves a journal entry by ID.
func (uc *JournalUseCase) GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error) {
	return uc.journalRepo.GetByID(ctx, id)
}

// ListEntriesInput represents input for listing journal entries.
type ListEntriesInput struct {
	Category string
	Limit    int
	Offset   int
}

// ListEntries lists journal entries, optionally filtered by category.
func (uc *JournalUseCase) ListEntries(ctx context.Context, input ListEntriesInput) ([]*domain.JournalEntry, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.journalRepo.List(ctx, input.Category, limit, offset)
}
