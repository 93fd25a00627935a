package service

import (
	"context"
	"testing"
	"time"

	"github.com/lumina-search/lumina/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindConflicting(ctx context.Context, username, email, excludeID string) (*domain.User, error) {
	args := m.Called(ctx, username, email, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func userFixture() *domain.User {
	return domain.NewUser("user-1", "alice", "alice@example.com", domain.GenderFemale, time.Now().UTC())
}

func TestUserService_UpdateProfile_RederivesAvatar(t *testing.T) {
	ctx := context.Background()
	user := userFixture()

	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", ctx, "user-1").Return(user, nil)
	userRepo.On("FindConflicting", ctx, "bob", "alice@example.com", "user-1").Return(nil, nil)
	userRepo.On("Update", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	newName := "bob"
	newGender := domain.GenderMale
	svc := NewUserService(userRepo)
	updated, err := svc.UpdateProfile(ctx, "user-1", ProfileUpdate{Username: &newName, Gender: &newGender})

	require.NoError(t, err)
	assert.Equal(t, "bob", updated.Username)
	assert.Equal(t, "https://avatar.iran.liara.run/public/boy?username=bob", updated.AvatarURL)
	userRepo.AssertExpectations(t)
}

func TestUserService_UpdateProfile_Conflict(t *testing.T) {
	ctx := context.Background()
	user := userFixture()

	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", ctx, "user-1").Return(user, nil)
	userRepo.On("FindConflicting", ctx, "taken", "alice@example.com", "user-1").
		Return(userFixture(), nil)

	taken := "taken"
	svc := NewUserService(userRepo)
	_, err := svc.UpdateProfile(ctx, "user-1", ProfileUpdate{Username: &taken})

	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserService_UpdateProfile_ShortUsername(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", ctx, "user-1").Return(userFixture(), nil)

	short := "ab"
	svc := NewUserService(userRepo)
	_, err := svc.UpdateProfile(ctx, "user-1", ProfileUpdate{Username: &short})

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrCodeValidation, domainErr.Code)
}

func TestUserService_UpdatePreferences_MergePatch(t *testing.T) {
	ctx := context.Background()
	user := userFixture()

	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", ctx, "user-1").Return(user, nil)
	userRepo.On("Update", ctx, user).Return(nil)

	lang := "de"
	summarization := false
	svc := NewUserService(userRepo)
	prefs, err := svc.UpdatePreferences(ctx, "user-1", PreferencesUpdate{
		Language:      &lang,
		Summarization: &summarization,
	})

	require.NoError(t, err)
	assert.Equal(t, "de", prefs.Search.Language)
	assert.False(t, prefs.AI.Summarization)
	// Untouched fields keep their defaults.
	assert.Equal(t, "google", prefs.Search.DefaultEngine)
	assert.Equal(t, 10, prefs.Search.ResultsPerPage)
	assert.True(t, prefs.Search.SafeSearch)
	assert.True(t, prefs.AI.Categorization)
}

func TestUserService_UpdatePreferences_InvalidResultsPerPage(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", ctx, "user-1").Return(userFixture(), nil)

	svc := NewUserService(userRepo)
	for _, n := range []int{0, -5, 51} {
		count := n
		_, err := svc.UpdatePreferences(ctx, "user-1", PreferencesUpdate{ResultsPerPage: &count})

		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr, "resultsPerPage %d", n)
		assert.Equal(t, domain.ErrCodeValidation, domainErr.Code)
	}
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
