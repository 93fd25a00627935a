package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lumina-search/lumina/internal/domain"
)

const apiTokenPrefix = "lmn_"

// APIKeyRepositoryInterface defines the repository interface for API key persistence
type APIKeyRepositoryInterface interface {
	Create(ctx context.Context, key *domain.APIKey) error
	GetByHash(ctx context.Context, keyHash string) (*domain.APIKey, error)
	GetByUserID(ctx context.Context, userID string) ([]*domain.APIKey, error)
	Revoke(ctx context.Context, id string, revokedAt time.Time) error
}

// AuthService creates users, issues API keys, and resolves bearer tokens
// to user identities. Tokens are stored only as SHA-256 hashes.
type AuthService struct {
	userRepo   UserRepositoryInterface
	apiKeyRepo APIKeyRepositoryInterface
	uuidGen    UUIDGenerator
}

// NewAuthService creates a new AuthService instance
func NewAuthService(userRepo UserRepositoryInterface, apiKeyRepo APIKeyRepositoryInterface) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		apiKeyRepo: apiKeyRepo,
		uuidGen:    &DefaultUUIDGenerator{},
	}
}

// NewAuthServiceWithUUIDGen creates an AuthService with a custom UUID generator (for testing)
func NewAuthServiceWithUUIDGen(
	userRepo UserRepositoryInterface,
	apiKeyRepo APIKeyRepositoryInterface,
	uuidGen UUIDGenerator,
) *AuthService {
	svc := NewAuthService(userRepo, apiKeyRepo)
	svc.uuidGen = uuidGen
	return svc
}

func generateAPIToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return apiTokenPrefix + hex.EncodeToString(buf), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// IsValidAPIToken reports whether a token has the expected shape.
func IsValidAPIToken(token string) bool {
	if !strings.HasPrefix(token, apiTokenPrefix) {
		return false
	}
	body := strings.TrimPrefix(token, apiTokenPrefix)
	if len(body) != 64 {
		return false
	}
	_, err := hex.DecodeString(body)
	return err == nil
}

// CreateUser registers a new account with default preferences.
func (s *AuthService) CreateUser(ctx context.Context, username, email string, gender domain.Gender) (*domain.User, error) {
	user := domain.NewUser(s.uuidGen.NewString(), username, email, gender, time.Now().UTC())
	if err := domain.ValidateUser(user); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, err.Error(), err)
	}

	conflict, err := s.userRepo.FindConflicting(ctx, username, email, "")
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, domain.ErrUserAlreadyExists
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateAPIKey issues a new API key for a user. The plaintext token is
// returned exactly once and never persisted.
func (s *AuthService) CreateAPIKey(ctx context.Context, userID, name string) (*domain.APIKey, string, error) {
	token, err := generateAPIToken()
	if err != nil {
		return nil, "", err
	}
	key, err := s.CreateAPIKeyWithToken(ctx, userID, name, token)
	if err != nil {
		return nil, "", err
	}
	return key, token, nil
}

// CreateAPIKeyWithToken stores a key for a caller-supplied token. Used
// for bootstrap provisioning where the token comes from the environment.
func (s *AuthService) CreateAPIKeyWithToken(ctx context.Context, userID, name, token string) (*domain.APIKey, error) {
	if !IsValidAPIToken(token) {
		return nil, domain.ErrInvalidAPIKey
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	key := &domain.APIKey{
		ID:        s.uuidGen.NewString(),
		UserID:    userID,
		Name:      name,
		KeyHash:   hashToken(token),
		CreatedAt: time.Now().UTC(),
	}
	if err := domain.ValidateAPIKey(key); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, err.Error(), err)
	}

	if err := s.apiKeyRepo.Create(ctx, key); err != nil {
		return nil, err
	}
	return key, nil
}

// GetAPIKeyByHash looks up a key record by token hash.
func (s *AuthService) GetAPIKeyByHash(ctx context.Context, keyHash string) (*domain.APIKey, error) {
	return s.apiKeyRepo.GetByHash(ctx, keyHash)
}

// ValidateAPIKey resolves a bearer token to the owning user ID.
// Implements the middleware.AuthValidator interface.
func (s *AuthService) ValidateAPIKey(ctx context.Context, token string) (string, error) {
	if !IsValidAPIToken(token) {
		return "", domain.ErrInvalidAPIKey
	}

	key, err := s.apiKeyRepo.GetByHash(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, domain.ErrAPIKeyNotFound) {
			return "", domain.ErrInvalidAPIKey
		}
		return "", err
	}
	if key.Revoked() {
		return "", domain.ErrAPIKeyRevoked
	}
	return key.UserID, nil
}

// RevokeAPIKey marks a key revoked without deleting its audit trail.
func (s *AuthService) RevokeAPIKey(ctx context.Context, id string) error {
	return s.apiKeyRepo.Revoke(ctx, id, time.Now().UTC())
}
