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

type StatisticsRepository struct {
	db dbtx
}

func NewStatisticsRepository(pool *pgxpool.Pool) *StatisticsRepository {
	return &StatisticsRepository{db: pool}
}

func NewStatisticsRepositoryWithTx(tx pgx.Tx) *StatisticsRepository {
	return &StatisticsRepository{db: tx}
}

func (r *StatisticsRepository) GetByUserID(ctx context.Context, userID string) (*domain.Statistics, error) {
	var stats domain.Statistics
	var mostSearched, categories []byte
	err := r.db.QueryRow(ctx,
		`SELECT user_id, total_searches, most_searched, search_categories,
		        total_search_time_ms, search_time_samples, last_updated
		 FROM search_statistics WHERE user_id = $1`,
		userID,
	).Scan(&stats.UserID, &stats.TotalSearches, &mostSearched, &categories,
		&stats.TotalSearchTimeMs, &stats.SearchTimeSamples, &stats.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStatisticsNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(mostSearched, &stats.MostSearched); err != nil {
		return nil, fmt.Errorf("failed to unmarshal most searched: %w", err)
	}
	if err := json.Unmarshal(categories, &stats.SearchCategories); err != nil {
		return nil, fmt.Errorf("failed to unmarshal search categories: %w", err)
	}
	return &stats, nil
}

func (r *StatisticsRepository) Upsert(ctx context.Context, stats *domain.Statistics) error {
	mostSearched, err := json.Marshal(stats.MostSearched)
	if err != nil {
		return fmt.Errorf("failed to marshal most searched: %w", err)
	}
	categories, err := json.Marshal(stats.SearchCategories)
	if err != nil {
		return fmt.Errorf("failed to marshal search categories: %w", err)
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO search_statistics
		     (user_id, total_searches, most_searched, search_categories,
		      total_search_time_ms, search_time_samples, last_updated)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id) DO UPDATE SET
		     total_searches = EXCLUDED.total_searches,
		     most_searched = EXCLUDED.most_searched,
		     search_categories = EXCLUDED.search_categories,
		     total_search_time_ms = EXCLUDED.total_search_time_ms,
		     search_time_samples = EXCLUDED.search_time_samples,
		     last_updated = EXCLUDED.last_updated`,
		stats.UserID, stats.TotalSearches, mostSearched, categories,
		stats.TotalSearchTimeMs, stats.SearchTimeSamples, stats.LastUpdated,
	)
	return err
}
