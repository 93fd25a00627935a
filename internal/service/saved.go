package service

import (
	"context"
	"errors"
	"time"

	"github.com/lumina-search/lumina/internal/domain"
)

// SavedResultRepositoryInterface defines the repository interface for saved-result persistence
type SavedResultRepositoryInterface interface {
	Create(ctx context.Context, saved *domain.SavedResult) error
	GetByID(ctx context.Context, userID, id string) (*domain.SavedResult, error)
	GetByLink(ctx context.Context, userID, link string) (*domain.SavedResult, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.SavedResult, error)
	Delete(ctx context.Context, userID, id string) error
}

// SavedResultService promotes results out of history records into the
// durable saved set, deduplicated by link per user.
type SavedResultService struct {
	savedRepo   SavedResultRepositoryInterface
	historyRepo HistoryRepositoryInterface
	uuidGen     UUIDGenerator
}

// NewSavedResultService creates a new SavedResultService instance
func NewSavedResultService(savedRepo SavedResultRepositoryInterface, historyRepo HistoryRepositoryInterface) *SavedResultService {
	return &SavedResultService{
		savedRepo:   savedRepo,
		historyRepo: historyRepo,
		uuidGen:     &DefaultUUIDGenerator{},
	}
}

// NewSavedResultServiceWithUUIDGen creates a SavedResultService with a custom UUID generator (for testing)
func NewSavedResultServiceWithUUIDGen(
	savedRepo SavedResultRepositoryInterface,
	historyRepo HistoryRepositoryInterface,
	uuidGen UUIDGenerator,
) *SavedResultService {
	svc := NewSavedResultService(savedRepo, historyRepo)
	svc.uuidGen = uuidGen
	return svc
}

// Save promotes one result of an owned history record. A second promotion
// of the same link for the same user is rejected, never overwritten.
func (s *SavedResultService) Save(ctx context.Context, userID, searchID string, resultIndex int) (*domain.SavedResult, error) {
	record, err := s.historyRepo.GetByID(ctx, userID, searchID)
	if err != nil {
		return nil, err
	}

	if resultIndex < 0 || resultIndex >= len(record.Results) {
		return nil, domain.ErrInvalidResultIndex
	}
	result := record.Results[resultIndex]

	existing, err := s.savedRepo.GetByLink(ctx, userID, result.Link)
	if err != nil && !errors.Is(err, domain.ErrSavedResultNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrResultAlreadySaved
	}

	saved := domain.NewSavedResult(s.uuidGen.NewString(), userID, result, time.Now().UTC())
	if err := domain.ValidateSavedResult(saved); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid saved result", err)
	}

	if err := s.savedRepo.Create(ctx, saved); err != nil {
		return nil, err
	}

	return saved, nil
}

// List returns the user's saved results, newest first.
func (s *SavedResultService) List(ctx context.Context, userID string) ([]*domain.SavedResult, error) {
	return s.savedRepo.ListByUser(ctx, userID)
}

// Delete removes one saved result owned by the user.
func (s *SavedResultService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.savedRepo.GetByID(ctx, userID, id); err != nil {
		return err
	}
	return s.savedRepo.Delete(ctx, userID, id)
}
