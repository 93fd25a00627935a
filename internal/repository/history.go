package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lumina-search/lumina/internal/domain"
)

type HistoryRepository struct {
	db dbtx
}

func NewHistoryRepository(pool *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{db: pool}
}

func NewHistoryRepositoryWithTx(tx pgx.Tx) *HistoryRepository {
	return &HistoryRepository{db: tx}
}

func (r *HistoryRepository) Create(ctx context.Context, record *domain.HistoryRecord) error {
	results, err := json.Marshal(record.Results)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	filters, err := json.Marshal(record.Filters)
	if err != nil {
		return fmt.Errorf("failed to marshal filters: %w", err)
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO search_history (id, user_id, query, results, filters, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		record.ID, record.UserID, record.Query, results, filters, record.Timestamp,
	)
	return err
}

// GetByID is owner-scoped: a record belonging to another user scans as
// missing.
func (r *HistoryRepository) GetByID(ctx context.Context, userID, id string) (*domain.HistoryRecord, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, query, results, filters, created_at
		 FROM search_history WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	record, err := scanHistoryRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHistoryNotFound
		}
		return nil, err
	}
	return record, nil
}

func (r *HistoryRepository) ListByUser(ctx context.Context, userID string) ([]*domain.HistoryRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, query, results, filters, created_at
		 FROM search_history WHERE user_id = $1 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHistoryRows(rows)
}

func (r *HistoryRepository) ListRecent(ctx context.Context, userID string, limit int) ([]*domain.HistoryRecord, error) {
	if limit <= 0 {
		limit = domain.RecentSearchesLimit
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, query, results, filters, created_at
		 FROM search_history WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHistoryRows(rows)
}

func (r *HistoryRepository) Delete(ctx context.Context, userID, id string) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM search_history WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrHistoryNotFound
	}
	return nil
}

// DeleteOlderThan removes all history records created before cutoff,
// across all users. Used by the retention job.
func (r *HistoryRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM search_history WHERE created_at < $1`,
		cutoff,
	)
	if err != nil {
		return 0, err
	}
	return cmdTag.RowsAffected(), nil
}

func scanHistoryRow(row pgx.Row) (*domain.HistoryRecord, error) {
	var record domain.HistoryRecord
	var results, filters []byte
	if err := row.Scan(&record.ID, &record.UserID, &record.Query, &results, &filters, &record.Timestamp); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(results, &record.Results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal results: %w", err)
	}
	if err := json.Unmarshal(filters, &record.Filters); err != nil {
		return nil, fmt.Errorf("failed to unmarshal filters: %w", err)
	}
	return &record, nil
}

func scanHistoryRows(rows pgx.Rows) ([]*domain.HistoryRecord, error) {
	var records []*domain.HistoryRecord
	for rows.Next() {
		record, err := scanHistoryRow(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
