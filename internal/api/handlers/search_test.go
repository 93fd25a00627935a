package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lumina-search/lumina/internal/api/middleware"
	"github.com/lumina-search/lumina/internal/domain"
	"github.com/lumina-search/lumina/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Search(ctx context.Context, userID string, input service.SearchInput) (*service.SearchOutput, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SearchOutput), args.Error(1)
}

func (m *MockSearchService) GetHistory(ctx context.Context, userID string) ([]service.HistoryItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.HistoryItem), args.Error(1)
}

func (m *MockSearchService) DeleteHistory(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func requestWithUserID(method, url string, body []byte) *http.Request {
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, "user-1")
	return req.WithContext(ctx)
}

func TestSearchHandler_Search_Success(t *testing.T) {
	mockSvc := new(MockSearchService)
	handler := NewSearchHandler(mockSvc)

	mockSvc.On("Search", mock.Anything, "user-1", mock.MatchedBy(func(input service.SearchInput) bool {
		return input.Query == "golang"
	})).Return(&service.SearchOutput{
		Results: []domain.SearchResult{
			{Title: "Go", Link: "https://go.dev", Snippet: "Go", Summary: "The Go site.", Category: domain.CategoryTechnology, Relevance: 9},
		},
		TotalResults: 1,
		SearchTimeMs: 321,
		SearchID:     "search-1",
	}, nil)

	req := requestWithUserID(http.MethodPost, "/api/search", []byte(`{"query":"golang"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.Search(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "search-1", resp.SearchID)
	assert.Equal(t, 1, resp.Metadata.TotalResults)
	assert.Equal(t, int64(321), resp.Metadata.SearchTime)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "The Go site.", resp.Results[0].Summary)
}

func TestSearchHandler_Search_EmptyQuery(t *testing.T) {
	handler := NewSearchHandler(new(MockSearchService))

	req := requestWithUserID(http.MethodPost, "/api/search", []byte(`{"query":""}`))
	w := httptest.NewRecorder()

	handler.Search(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestSearchHandler_Search_Unauthorized(t *testing.T) {
	handler := NewSearchHandler(new(MockSearchService))

	req := httptest.NewRequest(http.MethodPost, "/api/search", bytes.NewReader([]byte(`{"query":"golang"}`)))
	w := httptest.NewRecorder()

	handler.Search(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSearchHandler_Search_CollaboratorFailure(t *testing.T) {
	mockSvc := new(MockSearchService)
	handler := NewSearchHandler(mockSvc)

	mockSvc.On("Search", mock.Anything, "user-1", mock.Anything).
		Return(nil, domain.ErrSearchFailed)

	req := requestWithUserID(http.MethodPost, "/api/search", []byte(`{"query":"golang"}`))
	w := httptest.NewRecorder()

	handler.Search(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "failed to perform search")
}

func TestSearchHandler_GetHistory(t *testing.T) {
	mockSvc := new(MockSearchService)
	handler := NewSearchHandler(mockSvc)

	mockSvc.On("GetHistory", mock.Anything, "user-1").Return([]service.HistoryItem{
		{ID: "h-1", Query: "golang", Timestamp: time.Now().UTC(), ResultsCount: 3},
	}, nil)

	req := requestWithUserID(http.MethodGet, "/api/search/history", nil)
	w := httptest.NewRecorder()

	handler.GetHistory(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp HistoryListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.History, 1)
	assert.Equal(t, 3, resp.History[0].ResultsCount)
}

func TestSearchHandler_DeleteHistory_NotFound(t *testing.T) {
	mockSvc := new(MockSearchService)
	handler := NewSearchHandler(mockSvc)

	mockSvc.On("DeleteHistory", mock.Anything, "user-1", "missing").
		Return(domain.ErrHistoryNotFound)

	router := chi.NewRouter()
	router.Delete("/api/search/history/{id}", handler.DeleteHistory)

	req := requestWithUserID(http.MethodDelete, "/api/search/history/missing", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "search history not found")
}
