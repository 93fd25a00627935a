package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lumina-search/lumina/internal/domain"
)

type UserRepository struct {
	db dbtx
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: pool}
}

func NewUserRepositoryWithTx(tx pgx.Tx) *UserRepository {
	return &UserRepository{db: tx}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	prefs, err := json.Marshal(user.Preferences)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO users (id, username, email, gender, avatar_url, preferences, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Username, user.Email, string(user.Gender), user.AvatarURL, prefs, user.CreatedAt,
	)
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, username, email, gender, avatar_url, preferences, created_at
		 FROM users WHERE id = $1`,
		id,
	)
	return scanUser(row)
}

// FindConflicting returns a user holding the given username or email,
// excluding excludeID. Returns (nil, nil) when neither is taken.
func (r *UserRepository) FindConflicting(ctx context.Context, username, email, excludeID string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, username, email, gender, avatar_url, preferences, created_at
		 FROM users
		 WHERE (username = $1 OR email = $2) AND ($3 = '' OR id <> $3)
		 LIMIT 1`,
		username, email, excludeID,
	)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	prefs, err := json.Marshal(user.Preferences)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE users SET username = $1, email = $2, gender = $3, avatar_url = $4, preferences = $5
		 WHERE id = $6`,
		user.Username, user.Email, string(user.Gender), user.AvatarURL, prefs, user.ID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var gender string
	var prefs []byte
	err := row.Scan(&user.ID, &user.Username, &user.Email, &gender, &user.AvatarURL, &prefs, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	user.Gender = domain.Gender(gender)
	if err := json.Unmarshal(prefs, &user.Preferences); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preferences: %w", err)
	}
	return &user, nil
}
