package domain

import (
	"sort"
	"time"
)

const (
	// MostSearchedLimit bounds the per-user top-queries table.
	MostSearchedLimit = 5
	// RecentSearchesLimit bounds the derived recent-searches view.
	RecentSearchesLimit = 10
)

// QueryCount is one entry of the bounded most-searched table.
type QueryCount struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

// RecentSearch is a read-side projection of a history record. It is derived
// from search history on every statistics read and never stored.
type RecentSearch struct {
	Query     string    `json:"query"`
	Timestamp time.Time `json:"timestamp"`
}

// SearchSample is the per-search observation fed into the aggregator.
// SearchTimeMs and Category are optional; a sample without a latency value
// still counts towards TotalSearches but not towards the average.
type SearchSample struct {
	Query        string
	SearchTimeMs int64
	HasTime      bool
	Category     Category
}

// Statistics is the per-user aggregate row. The search-time average is kept
// as an explicit (sum, sample count) pair so that searches recorded without
// a latency value cannot skew the derived mean.
type Statistics struct {
	UserID            string
	TotalSearches     int64
	MostSearched      []QueryCount
	SearchCategories  map[string]int64
	TotalSearchTimeMs int64
	SearchTimeSamples int64
	LastUpdated       time.Time
}

// NewStatistics creates an empty Statistics row for a user.
func NewStatistics(userID string) *Statistics {
	return &Statistics{
		UserID:           userID,
		MostSearched:     []QueryCount{},
		SearchCategories: map[string]int64{},
	}
}

// RecordSample applies one completed search to the aggregate state:
// increments the total, maintains the bounded most-searched table (count
// descending, insertion order preserved among ties, truncated to
// MostSearchedLimit), bumps the category counter and the latency sum.
func (s *Statistics) RecordSample(sample SearchSample, now time.Time) {
	s.TotalSearches++

	found := false
	for i := range s.MostSearched {
		if s.MostSearched[i].Query == sample.Query {
			s.MostSearched[i].Count++
			found = true
			break
		}
	}
	if !found {
		s.MostSearched = append(s.MostSearched, QueryCount{Query: sample.Query, Count: 1})
	}
	sort.SliceStable(s.MostSearched, func(i, j int) bool {
		return s.MostSearched[i].Count > s.MostSearched[j].Count
	})
	if len(s.MostSearched) > MostSearchedLimit {
		s.MostSearched = s.MostSearched[:MostSearchedLimit]
	}

	if sample.Category != "" && sample.Category != CategoryUncategorized {
		if s.SearchCategories == nil {
			s.SearchCategories = map[string]int64{}
		}
		s.SearchCategories[string(sample.Category)]++
	}

	if sample.HasTime {
		s.TotalSearchTimeMs += sample.SearchTimeMs
		s.SearchTimeSamples++
	}

	s.LastUpdated = now
}

// AverageSearchTime derives the arithmetic mean of all recorded latency
// samples in milliseconds, or 0 when no sample has been recorded.
func (s *Statistics) AverageSearchTime() float64 {
	if s.SearchTimeSamples == 0 {
		return 0
	}
	return float64(s.TotalSearchTimeMs) / float64(s.SearchTimeSamples)
}
