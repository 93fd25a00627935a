package domain

import (
	"fmt"
	"time"
)

// SavedResult is a search result a user promoted out of a history record.
// At most one saved result may exist per (UserID, Link) pair.
type SavedResult struct {
	ID       string
	UserID   string
	Title    string
	Link     string
	Snippet  string
	Summary  string
	Category Category
	SavedAt  time.Time
}

// NewSavedResult promotes a SearchResult into a SavedResult owned by userID.
func NewSavedResult(id, userID string, result SearchResult, savedAt time.Time) *SavedResult {
	return &SavedResult{
		ID:       id,
		UserID:   userID,
		Title:    result.Title,
		Link:     result.Link,
		Snippet:  result.Snippet,
		Summary:  result.Summary,
		Category: result.Category,
		SavedAt:  savedAt,
	}
}

// ValidateSavedResult validates a SavedResult instance
func ValidateSavedResult(s *SavedResult) error {
	if s == nil {
		return fmt.Errorf("saved result cannot be nil")
	}
	if s.ID == "" {
		return fmt.Errorf("saved result ID is required")
	}
	if s.UserID == "" {
		return fmt.Errorf("saved result UserID is required")
	}
	if s.Title == "" {
		return fmt.Errorf("saved result Title is required")
	}
	if s.Link == "" {
		return fmt.Errorf("saved result Link is required")
	}
	return nil
}
