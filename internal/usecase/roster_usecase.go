package usecase

import (
	"context"
	"time"

	"github.com/schoolpay/feeledger/internal/domain"
)

// RosterUseCase manages class rosters. Creation and listing are staff setup
// operations; the enrolled counter itself is owned by the enrollment engine.
type RosterUseCase struct {
	rosterRepo RosterRepository
	idGen      IDGenerator
}

// NewRosterUseCase creates a new RosterUseCase.
func NewRosterUseCase(rosterRepo RosterRepository, idGen IDGenerator) *RosterUseCase {
	return &RosterUseCase{
		rosterRepo: rosterRepo,
		idGen:      idGen,
	}
}

// CreateRosterInput represents input for creating a class roster.
type CreateRosterInput struct {
	ClassID string
	Name    string
	Grade   string
}

// CreateRoster creates a class roster with a zero enrolled count.
func (uc *RosterUseCase) CreateRoster(ctx context.Context, input CreateRosterInput) (*domain.ClassRoster, error) {
	now := time.Now().UTC()

	classID := input.ClassID
	if classID == "" {
		classID = uc.idGen.Generate()
	}

	roster := &domain.ClassRoster{
		ClassID:       classID,
		Name:          input.Name,
		Grade:         input.Grade,
		EnrolledCount: 0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.rosterRepo.Create(ctx, roster); err != nil {
		return nil, err
	}

	return roster, nil
}

// GetRoster retrieves a roster by class ID.
func (uc *RosterUseCase) GetRoster(ctx context.Context, classID string) (*domain.ClassRoster, error) {
	return uc.rosterRepo.GetByClassID(ctx, classID)
}

// ListRostersInput represents input for listing rosters.
type ListRostersInput struct {
	Limit  int
	Offset int
}

// ListRosters lists class rosters.
func (uc *RosterUseCase) ListRosters(ctx context.Context, input ListRostersInput) ([]*domain.ClassRoster, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.rosterRepo.List(ctx, limit, offset)
}
