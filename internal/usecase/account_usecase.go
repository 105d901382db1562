package usecase

import (
	"context"

	"github.com/schoolpay/feeledger/internal/domain"
)

// AccountUseCase serves read-only student account queries for the UI.
type AccountUseCase struct {
	accountRepo StudentAccountRepository
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo StudentAccountRepository) *AccountUseCase {
	return &AccountUseCase{accountRepo: accountRepo}
}

// GetAccount retrieves a student account by student ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, studentID string) (*domain.StudentAccount, error) {
	return uc.accountRepo.GetByStudentID(ctx, studentID)
}

// ListAccountsByClassInput represents input for listing accounts in a class.
type ListAccountsByClassInput struct {
	ClassID string
	Limit   int
	Offset  int
}

// ListAccountsByClass lists the student accounts enrolled in a class.
func (uc *AccountUseCase) ListAccountsByClass(ctx context.Context, input ListAccountsByClassInput) ([]*domain.StudentAccount, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.accountRepo.ListByClass(ctx, input.ClassID, limit, offset)
}
