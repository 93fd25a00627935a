package domain

import (
	"fmt"
	"time"
)

// HistoryRecord is the persisted log of one search. It is written exactly
// once and never mutated afterwards; the only lifecycle transition is
// deletion by its owner.
type HistoryRecord struct {
	ID        string
	UserID    string
	Query     string
	Results   []SearchResult
	Filters   SearchFilters
	Timestamp time.Time
}

// NewHistoryRecord creates a new HistoryRecord instance
func NewHistoryRecord(id, userID, query string, results []SearchResult, filters SearchFilters, timestamp time.Time) *HistoryRecord {
	return &HistoryRecord{
		ID:        id,
		UserID:    userID,
		Query:     query,
		Results:   results,
		Filters:   filters,
		Timestamp: timestamp,
	}
}

// ValidateHistoryRecord validates a HistoryRecord instance
func ValidateHistoryRecord(h *HistoryRecord) error {
	if h == nil {
		return fmt.Errorf("history record cannot be nil")
	}
	if h.ID == "" {
		return fmt.Errorf("history record ID is required")
	}
	if h.UserID == "" {
		return fmt.Errorf("history record UserID is required")
	}
	if h.Query == "" {
		return fmt.Errorf("history record Query is required")
	}
	return nil
}
