package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lumina-search/lumina/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSavedResultService struct {
	mock.Mock
}

func (m *MockSavedResultService) Save(ctx context.Context, userID, searchID string, resultIndex int) (*domain.SavedResult, error) {
	args := m.Called(ctx, userID, searchID, resultIndex)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavedResult), args.Error(1)
}

func (m *MockSavedResultService) List(ctx context.Context, userID string) ([]*domain.SavedResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SavedResult), args.Error(1)
}

func (m *MockSavedResultService) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func newTestSavedResult() *domain.SavedResult {
	return &domain.SavedResult{
		ID:       "saved-1",
		UserID:   "user-1",
		Title:    "Go Blog",
		Link:     "https://go.dev/blog",
		Snippet:  "The Go blog",
		Summary:  "Official Go articles.",
		Category: domain.CategoryTechnology,
		SavedAt:  time.Now().UTC(),
	}
}

func TestSavedResultHandler_Save_Created(t *testing.T) {
	mockSvc := new(MockSavedResultService)
	handler := NewSavedResultHandler(mockSvc)

	mockSvc.On("Save", mock.Anything, "user-1", "search-1", 0).
		Return(newTestSavedResult(), nil)

	req := requestWithUserID(http.MethodPost, "/api/search/save",
		[]byte(`{"searchId":"search-1","resultIndex":0}`))
	w := httptest.NewRecorder()

	handler.Save(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp SaveResultResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "saved-1", resp.SavedResult.ID)
	assert.Equal(t, "Technology", resp.SavedResult.Category)
}

func TestSavedResultHandler_Save_MissingFields(t *testing.T) {
	handler := NewSavedResultHandler(new(MockSavedResultService))

	tests := []struct {
		name string
		body string
	}{
		{"missing searchId", `{"resultIndex":0}`},
		{"missing resultIndex", `{"searchId":"search-1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := requestWithUserID(http.MethodPost, "/api/search/save", []byte(tt.body))
			w := httptest.NewRecorder()

			handler.Save(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestSavedResultHandler_Save_Duplicate(t *testing.T) {
	mockSvc := new(MockSavedResultService)
	handler := NewSavedResultHandler(mockSvc)

	mockSvc.On("Save", mock.Anything, "user-1", "search-1", 0).
		Return(nil, domain.ErrResultAlreadySaved)

	req := requestWithUserID(http.MethodPost, "/api/search/save",
		[]byte(`{"searchId":"search-1","resultIndex":0}`))
	w := httptest.NewRecorder()

	handler.Save(w, req)

	// Duplicate promotions are a client error, not a conflict.
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already saved")
}

func TestSavedResultHandler_Save_BadIndex(t *testing.T) {
	mockSvc := new(MockSavedResultService)
	handler := NewSavedResultHandler(mockSvc)

	mockSvc.On("Save", mock.Anything, "user-1", "search-1", 99).
		Return(nil, domain.ErrInvalidResultIndex)

	req := requestWithUserID(http.MethodPost, "/api/search/save",
		[]byte(`{"searchId":"search-1","resultIndex":99}`))
	w := httptest.NewRecorder()

	handler.Save(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSavedResultHandler_List(t *testing.T) {
	mockSvc := new(MockSavedResultService)
	handler := NewSavedResultHandler(mockSvc)

	mockSvc.On("List", mock.Anything, "user-1").
		Return([]*domain.SavedResult{newTestSavedResult()}, nil)

	req := requestWithUserID(http.MethodGet, "/api/search/saved", nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp SavedResultListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.SavedResults, 1)
	assert.Equal(t, "https://go.dev/blog", resp.SavedResults[0].Link)
}

func TestSavedResultHandler_Delete(t *testing.T) {
	mockSvc := new(MockSavedResultService)
	handler := NewSavedResultHandler(mockSvc)

	mockSvc.On("Delete", mock.Anything, "user-1", "saved-1").Return(nil)

	router := chi.NewRouter()
	router.Delete("/api/search/saved/{id}", handler.Delete)

	req := requestWithUserID(http.MethodDelete, "/api/search/saved/saved-1", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "saved result deleted")
}
