package service

import (
	"context"

	"github.com/lumina-search/lumina/internal/domain"
)

// UserRepositoryInterface defines the repository interface for user persistence
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	FindConflicting(ctx context.Context, username, email, excludeID string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// ProfileUpdate carries the mutable profile fields; nil fields are left
// unchanged.
type ProfileUpdate struct {
	Username *string
	Email    *string
	Gender   *domain.Gender
}

// PreferencesUpdate is a merge patch over the user's preferences.
type PreferencesUpdate struct {
	DefaultEngine  *string
	ResultsPerPage *int
	SafeSearch     *bool
	Language       *string
	Region         *string
	Summarization  *bool
	Categorization *bool
}

// UserService manages user profiles and preferences.
type UserService struct {
	userRepo UserRepositoryInterface
}

// NewUserService creates a new UserService instance
func NewUserService(userRepo UserRepositoryInterface) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetProfile returns the user's profile.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile applies a partial profile update. Changing the username or
// gender re-derives the avatar URL.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Username != nil {
		user.Username = *update.Username
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Gender != nil {
		user.Gender = *update.Gender
	}

	if err := domain.ValidateUser(user); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, err.Error(), err)
	}

	conflict, err := s.userRepo.FindConflicting(ctx, user.Username, user.Email, user.ID)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, domain.ErrUserAlreadyExists
	}

	user.AvatarURL = domain.AvatarURL(user.Username, user.Gender)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetPreferences returns the user's preferences.
func (s *UserService) GetPreferences(ctx context.Context, userID string) (*domain.Preferences, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &user.Preferences, nil
}

// UpdatePreferences applies a merge patch to the user's preferences.
// Unset fields keep their stored values.
func (s *UserService) UpdatePreferences(ctx context.Context, userID string, update PreferencesUpdate) (*domain.Preferences, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	prefs := &user.Preferences
	if update.DefaultEngine != nil {
		prefs.Search.DefaultEngine = *update.DefaultEngine
	}
	if update.ResultsPerPage != nil {
		if *update.ResultsPerPage < 1 || *update.ResultsPerPage > 50 {
			return nil, domain.NewDomainError(domain.ErrCodeValidation, "resultsPerPage must be between 1 and 50")
		}
		prefs.Search.ResultsPerPage = *update.ResultsPerPage
	}
	if update.SafeSearch != nil {
		prefs.Search.SafeSearch = *update.SafeSearch
	}
	if update.Language != nil {
		prefs.Search.Language = *update.Language
	}
	if update.Region != nil {
		prefs.Search.Region = *update.Region
	}
	if update.Summarization != nil {
		prefs.AI.Summarization = *update.Summarization
	}
	if update.Categorization != nil {
		prefs.AI.Categorization = *update.Categorization
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return prefs, nil
}
