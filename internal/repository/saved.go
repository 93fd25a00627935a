package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lumina-search/lumina/internal/domain"
)

const uniqueViolationCode = "23505"

type SavedResultRepository struct {
	db dbtx
}

func NewSavedResultRepository(pool *pgxpool.Pool) *SavedResultRepository {
	return &SavedResultRepository{db: pool}
}

func NewSavedResultRepositoryWithTx(tx pgx.Tx) *SavedResultRepository {
	return &SavedResultRepository{db: tx}
}

func (r *SavedResultRepository) Create(ctx context.Context, saved *domain.SavedResult) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO saved_results (id, user_id, title, link, snippet, summary, category, saved_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		saved.ID, saved.UserID, saved.Title, saved.Link, nullableString(saved.Snippet),
		nullableString(saved.Summary), string(saved.Category), saved.SavedAt,
	)
	// Concurrent promotions of the same link can slip past the service-level
	// lookup; the (user_id, link) constraint is the authority.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return domain.ErrResultAlreadySaved
	}
	return err
}

func (r *SavedResultRepository) GetByID(ctx context.Context, userID, id string) (*domain.SavedResult, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, title, link, snippet, summary, category, saved_at
		 FROM saved_results WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	return scanSavedResult(row)
}

func (r *SavedResultRepository) GetByLink(ctx context.Context, userID, link string) (*domain.SavedResult, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, title, link, snippet, summary, category, saved_at
		 FROM saved_results WHERE user_id = $1 AND link = $2`,
		userID, link,
	)
	return scanSavedResult(row)
}

func (r *SavedResultRepository) ListByUser(ctx context.Context, userID string) ([]*domain.SavedResult, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, title, link, snippet, summary, category, saved_at
		 FROM saved_results WHERE user_id = $1 ORDER BY saved_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*domain.SavedResult
	for rows.Next() {
		saved, err := scanSavedResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, saved)
	}
	return results, rows.Err()
}

func (r *SavedResultRepository) Delete(ctx context.Context, userID, id string) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM saved_results WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrSavedResultNotFound
	}
	return nil
}

func scanSavedResult(row pgx.Row) (*domain.SavedResult, error) {
	var saved domain.SavedResult
	var snippet, summary *string
	var category string
	err := row.Scan(&saved.ID, &saved.UserID, &saved.Title, &saved.Link, &snippet, &summary, &category, &saved.SavedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSavedResultNotFound
		}
		return nil, err
	}
	if snippet != nil {
		saved.Snippet = *snippet
	}
	if summary != nil {
		saved.Summary = *summary
	}
	saved.Category = domain.Category(category)
	return &saved, nil
}
