package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatistics_RecordSample_FirstSearch(t *testing.T) {
	now := time.Now().UTC()
	stats := NewStatistics("user-1")

	stats.RecordSample(SearchSample{Query: "cats", SearchTimeMs: 100, HasTime: true}, now)

	assert.Equal(t, int64(1), stats.TotalSearches)
	require.Len(t, stats.MostSearched, 1)
	assert.Equal(t, QueryCount{Query: "cats", Count: 1}, stats.MostSearched[0])
	assert.Equal(t, float64(100), stats.AverageSearchTime())
	assert.Equal(t, now, stats.LastUpdated)
}

func TestStatistics_RecordSample_IncrementsExistingQuery(t *testing.T) {
	now := time.Now().UTC()
	stats := NewStatistics("user-1")

	stats.RecordSample(SearchSample{Query: "cats"}, now)
	stats.RecordSample(SearchSample{Query: "dogs"}, now)
	stats.RecordSample(SearchSample{Query: "cats"}, now)

	assert.Equal(t, int64(3), stats.TotalSearches)
	require.Len(t, stats.MostSearched, 2)
	assert.Equal(t, QueryCount{Query: "cats", Count: 2}, stats.MostSearched[0])
	assert.Equal(t, QueryCount{Query: "dogs", Count: 1}, stats.MostSearched[1])
}

func TestStatistics_RecordSample_TruncatesToLimit(t *testing.T) {
	now := time.Now().UTC()
	stats := NewStatistics("user-1")

	queries := []string{"one", "two", "three", "four", "five", "six"}
	for _, q := range queries {
		stats.RecordSample(SearchSample{Query: q}, now)
	}

	assert.Equal(t, int64(6), stats.TotalSearches)
	require.Len(t, stats.MostSearched, MostSearchedLimit)

	// All counts tie at 1, so the stable sort preserves insertion order and
	// truncation drops the most-recently-inserted entry.
	for i := 0; i < MostSearchedLimit; i++ {
		assert.Equal(t, QueryCount{Query: queries[i], Count: 1}, stats.MostSearched[i])
	}
}

func TestStatistics_RecordSample_StableTiebreak(t *testing.T) {
	now := time.Now().UTC()
	stats := NewStatistics("user-1")

	stats.RecordSample(SearchSample{Query: "alpha"}, now)
	stats.RecordSample(SearchSample{Query: "beta"}, now)
	stats.RecordSample(SearchSample{Query: "beta"}, now)
	stats.RecordSample(SearchSample{Query: "gamma"}, now)

	require.Len(t, stats.MostSearched, 3)
	assert.Equal(t, "beta", stats.MostSearched[0].Query)
	// alpha and gamma tie at 1; alpha was inserted first.
	assert.Equal(t, "alpha", stats.MostSearched[1].Query)
	assert.Equal(t, "gamma", stats.MostSearched[2].Query)
}

func TestStatistics_RecordSample_Categories(t *testing.T) {
	now := time.Now().UTC()
	stats := NewStatistics("user-1")

	stats.RecordSample(SearchSample{Query: "go", Category: CategoryTechnology}, now)
	stats.RecordSample(SearchSample{Query: "rust", Category: CategoryTechnology}, now)
	stats.RecordSample(SearchSample{Query: "mars", Category: CategoryScience}, now)
	stats.RecordSample(SearchSample{Query: "noise", Category: CategoryUncategorized}, now)
	stats.RecordSample(SearchSample{Query: "blank"}, now)

	assert.Equal(t, int64(2), stats.SearchCategories[string(CategoryTechnology)])
	assert.Equal(t, int64(1), stats.SearchCategories[string(CategoryScience)])
	// Degraded and absent categories are not counted.
	assert.Len(t, stats.SearchCategories, 2)
}

func TestStatistics_AverageSearchTime_IgnoresSearchesWithoutSamples(t *testing.T) {
	now := time.Now().UTC()
	stats := NewStatistics("user-1")

	stats.RecordSample(SearchSample{Query: "a", SearchTimeMs: 100, HasTime: true}, now)
	stats.RecordSample(SearchSample{Query: "b"}, now)
	stats.RecordSample(SearchSample{Query: "c", SearchTimeMs: 300, HasTime: true}, now)

	// TotalSearches counts every search, but the mean only divides by the
	// number of latency samples.
	assert.Equal(t, int64(3), stats.TotalSearches)
	assert.Equal(t, float64(200), stats.AverageSearchTime())
}

func TestStatistics_AverageSearchTime_Empty(t *testing.T) {
	stats := NewStatistics("user-1")
	assert.Equal(t, float64(0), stats.AverageSearchTime())
}
