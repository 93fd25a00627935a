package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/lumina-search/lumina/internal/domain"
)

// StatisticsRepositoryInterface defines the repository interface for the
// per-user statistics row.
type StatisticsRepositoryInterface interface {
	GetByUserID(ctx context.Context, userID string) (*domain.Statistics, error)
	Upsert(ctx context.Context, stats *domain.Statistics) error
}

// RecentHistoryLister lists the newest history records for a user.
type RecentHistoryLister interface {
	ListRecent(ctx context.Context, userID string, limit int) ([]*domain.HistoryRecord, error)
}

// StatisticsView is the read-side shape of a user's statistics. The average
// is derived from the stored (sum, samples) pair and RecentSearches is
// recomputed from history on every read.
type StatisticsView struct {
	TotalSearches     int64                 `json:"totalSearches"`
	MostSearched      []domain.QueryCount   `json:"mostSearched"`
	RecentSearches    []domain.RecentSearch `json:"recentSearches"`
	SearchCategories  map[string]int64      `json:"searchCategories"`
	AverageSearchTime float64               `json:"averageSearchTime"`
	LastUpdated       time.Time             `json:"lastUpdated"`
}

// StatisticsService owns the per-user statistics row. All mutation goes
// through RecordSearch; statistics are a best-effort side channel and a
// failed update must never fail the search that triggered it.
type StatisticsService struct {
	statsRepo   StatisticsRepositoryInterface
	historyRepo RecentHistoryLister
}

// NewStatisticsService creates a new StatisticsService instance
func NewStatisticsService(statsRepo StatisticsRepositoryInterface, historyRepo RecentHistoryLister) *StatisticsService {
	return &StatisticsService{
		statsRepo:   statsRepo,
		historyRepo: historyRepo,
	}
}

// RecordSearch applies one completed search to the user's aggregate row.
// Errors are logged and swallowed.
func (s *StatisticsService) RecordSearch(ctx context.Context, userID string, sample domain.SearchSample) {
	stats, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		log.Printf("statistics: failed to load row for user %s: %v", userID, err)
		return
	}

	stats.RecordSample(sample, time.Now().UTC())

	if err := s.statsRepo.Upsert(ctx, stats); err != nil {
		log.Printf("statistics: failed to persist row for user %s: %v", userID, err)
	}
}

// GetStatistics returns the user's statistics with the derived recent
// searches view. The row is lazily created on first read.
func (s *StatisticsService) GetStatistics(ctx context.Context, userID string) (*StatisticsView, error) {
	stats, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	records, err := s.historyRepo.ListRecent(ctx, userID, domain.RecentSearchesLimit)
	if err != nil {
		return nil, err
	}

	recent := make([]domain.RecentSearch, 0, len(records))
	for _, record := range records {
		recent = append(recent, domain.RecentSearch{
			Query:     record.Query,
			Timestamp: record.Timestamp,
		})
	}

	return &StatisticsView{
		TotalSearches:     stats.TotalSearches,
		MostSearched:      stats.MostSearched,
		RecentSearches:    recent,
		SearchCategories:  stats.SearchCategories,
		AverageSearchTime: stats.AverageSearchTime(),
		LastUpdated:       stats.LastUpdated,
	}, nil
}

func (s *StatisticsService) loadOrCreate(ctx context.Context, userID string) (*domain.Statistics, error) {
	stats, err := s.statsRepo.GetByUserID(ctx, userID)
	if err == nil {
		return stats, nil
	}
	if !errors.Is(err, domain.ErrStatisticsNotFound) {
		return nil, err
	}

	stats = domain.NewStatistics(userID)
	if err := s.statsRepo.Upsert(ctx, stats); err != nil {
		return nil, err
	}
	return stats, nil
}
