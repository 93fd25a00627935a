package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lumina-search/lumina/internal/domain"
	"github.com/lumina-search/lumina/internal/telemetry"
	"github.com/lumina-search/lumina/internal/websearch"
)

// WebSearcher fetches raw results from the search collaborator.
type WebSearcher interface {
	Search(ctx context.Context, query string, opts websearch.Options) ([]websearch.Result, error)
}

// Enricher runs the AI enrichment pass over raw results.
type Enricher interface {
	EnrichResults(ctx context.Context, results []domain.SearchResult) []domain.SearchResult
}

// StatisticsRecorder applies a completed search to the user's aggregates.
// Implementations must never propagate failures.
type StatisticsRecorder interface {
	RecordSearch(ctx context.Context, userID string, sample domain.SearchSample)
}

// HistoryRepositoryInterface defines the repository interface for history persistence
type HistoryRepositoryInterface interface {
	Create(ctx context.Context, record *domain.HistoryRecord) error
	GetByID(ctx context.Context, userID, id string) (*domain.HistoryRecord, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.HistoryRecord, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]*domain.HistoryRecord, error)
	Delete(ctx context.Context, userID, id string) error
}

// UUIDGenerator defines interface for UUID generation (for testing)
type UUIDGenerator interface {
	NewString() string
}

// DefaultUUIDGenerator is the default UUID generator using google/uuid
type DefaultUUIDGenerator struct{}

// NewString generates a new UUID string
func (g *DefaultUUIDGenerator) NewString() string {
	return uuid.NewString()
}

// FilterOverrides are per-request overrides of the user's search
// preferences; nil fields fall back to the stored preference.
type FilterOverrides struct {
	SafeSearch *bool
	Language   *string
	Region     *string
}

// SearchInput represents one search request.
type SearchInput struct {
	Query   string
	Filters *FilterOverrides
}

// SearchOutput is the orchestration result returned to the HTTP layer.
type SearchOutput struct {
	Results      []domain.SearchResult
	TotalResults int
	SearchTimeMs int64
	SearchID     string
}

// HistoryItem is the list projection of a history record.
type HistoryItem struct {
	ID           string    `json:"id"`
	Query        string    `json:"query"`
	Timestamp    time.Time `json:"timestamp"`
	ResultsCount int       `json:"resultsCount"`
}

// SearchService composes the search flow: fetch raw results, enrich,
// persist history, record statistics, respond.
type SearchService struct {
	searcher    WebSearcher
	enricher    Enricher
	historyRepo HistoryRepositoryInterface
	stats       StatisticsRecorder
	userRepo    UserRepositoryInterface
	uuidGen     UUIDGenerator
}

// NewSearchService creates a new SearchService instance
func NewSearchService(
	searcher WebSearcher,
	enricher Enricher,
	historyRepo HistoryRepositoryInterface,
	stats StatisticsRecorder,
	userRepo UserRepositoryInterface,
) *SearchService {
	return &SearchService{
		searcher:    searcher,
		enricher:    enricher,
		historyRepo: historyRepo,
		stats:       stats,
		userRepo:    userRepo,
		uuidGen:     &DefaultUUIDGenerator{},
	}
}

// NewSearchServiceWithUUIDGen creates a SearchService with a custom UUID generator (for testing)
func NewSearchServiceWithUUIDGen(
	searcher WebSearcher,
	enricher Enricher,
	historyRepo HistoryRepositoryInterface,
	stats StatisticsRecorder,
	userRepo UserRepositoryInterface,
	uuidGen UUIDGenerator,
) *SearchService {
	svc := NewSearchService(searcher, enricher, historyRepo, stats, userRepo)
	svc.uuidGen = uuidGen
	return svc
}

// Search runs one search end to end. Enrichment failures degrade to
// defaults inside the enricher; statistics failures are swallowed by the
// recorder; a search-collaborator failure aborts the request.
func (s *SearchService) Search(ctx context.Context, userID string, input SearchInput) (*SearchOutput, error) {
	ctx, span := telemetry.StartSpan(ctx, "SearchService.Search", telemetry.SpanAttributes{
		UserID:    userID,
		Operation: "search",
	})
	defer span.End()

	if input.Query == "" {
		return nil, domain.ErrMissingQuery
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	prefs := user.Preferences.Search
	filters := resolveFilters(prefs, input.Filters)

	start := time.Now()

	raw, err := s.searcher.Search(ctx, input.Query, websearch.Options{
		ResultCount: prefs.ResultsPerPage,
		SafeSearch:  filters.SafeSearch,
		Language:    filters.Language,
		Region:      filters.Region,
	})
	if err != nil {
		span.SetError(err)
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeCollaborator, "failed to perform search", err)
	}

	results := make([]domain.SearchResult, len(raw))
	for i, item := range raw {
		results[i] = domain.SearchResult{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		}
	}

	enriched := s.enricher.EnrichResults(ctx, results)
	searchTime := time.Since(start).Milliseconds()

	record := domain.NewHistoryRecord(
		s.uuidGen.NewString(),
		userID,
		input.Query,
		enriched,
		filters,
		time.Now().UTC(),
	)
	if err := s.historyRepo.Create(ctx, record); err != nil {
		span.SetError(err)
		return nil, err
	}

	sample := domain.SearchSample{
		Query:        input.Query,
		SearchTimeMs: searchTime,
		HasTime:      true,
	}
	if len(enriched) > 0 {
		sample.Category = enriched[0].Category
	}
	s.stats.RecordSearch(ctx, userID, sample)

	return &SearchOutput{
		Results:      enriched,
		TotalResults: len(enriched),
		SearchTimeMs: searchTime,
		SearchID:     record.ID,
	}, nil
}

func resolveFilters(prefs domain.SearchPreferences, overrides *FilterOverrides) domain.SearchFilters {
	filters := domain.SearchFilters{
		SafeSearch: prefs.SafeSearch,
		Language:   prefs.Language,
		Region:     prefs.Region,
	}
	if overrides == nil {
		return filters
	}
	if overrides.SafeSearch != nil {
		filters.SafeSearch = *overrides.SafeSearch
	}
	if overrides.Language != nil {
		filters.Language = *overrides.Language
	}
	if overrides.Region != nil {
		filters.Region = *overrides.Region
	}
	return filters
}

// GetHistory lists the user's search history, newest first.
func (s *SearchService) GetHistory(ctx context.Context, userID string) ([]HistoryItem, error) {
	records, err := s.historyRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]HistoryItem, len(records))
	for i, record := range records {
		items[i] = HistoryItem{
			ID:           record.ID,
			Query:        record.Query,
			Timestamp:    record.Timestamp,
			ResultsCount: len(record.Results),
		}
	}
	return items, nil
}

// DeleteHistory removes one history record. A record owned by a different
// user is indistinguishable from a missing one.
func (s *SearchService) DeleteHistory(ctx context.Context, userID, id string) error {
	if _, err := s.historyRepo.GetByID(ctx, userID, id); err != nil {
		return err
	}
	return s.historyRepo.Delete(ctx, userID, id)
}
