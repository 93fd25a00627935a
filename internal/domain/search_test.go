package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidCategory(t *testing.T) {
	valid := []Category{
		CategoryTechnology, CategoryScience, CategoryBusiness, CategoryHealth,
		CategoryEducation, CategoryEntertainment, CategorySports, CategoryPolitics,
		CategoryOther,
	}
	for _, c := range valid {
		assert.True(t, IsValidCategory(c), "expected %s to be valid", c)
	}

	assert.False(t, IsValidCategory(CategoryUncategorized))
	assert.False(t, IsValidCategory(Category("Gardening")))
	assert.False(t, IsValidCategory(Category("")))
}

func TestValidateHistoryRecord(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		h := &HistoryRecord{ID: "h-1", UserID: "u-1", Query: "cats"}
		assert.NoError(t, ValidateHistoryRecord(h))
	})

	t.Run("missing fields", func(t *testing.T) {
		assert.Error(t, ValidateHistoryRecord(nil))
		assert.Error(t, ValidateHistoryRecord(&HistoryRecord{UserID: "u", Query: "q"}))
		assert.Error(t, ValidateHistoryRecord(&HistoryRecord{ID: "h", Query: "q"}))
		assert.Error(t, ValidateHistoryRecord(&HistoryRecord{ID: "h", UserID: "u"}))
	})
}

func TestValidateSavedResult(t *testing.T) {
	t.Run("valid saved result", func(t *testing.T) {
		s := &SavedResult{ID: "s-1", UserID: "u-1", Title: "Go", Link: "https://go.dev"}
		assert.NoError(t, ValidateSavedResult(s))
	})

	t.Run("missing link", func(t *testing.T) {
		s := &SavedResult{ID: "s-1", UserID: "u-1", Title: "Go"}
		assert.Error(t, ValidateSavedResult(s))
	})
}
