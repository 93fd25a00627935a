package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lumina-search/lumina/internal/api"
	"github.com/lumina-search/lumina/internal/api/middleware"
	"github.com/lumina-search/lumina/internal/domain"
	"github.com/lumina-search/lumina/internal/service"
)

type SearchService interface {
	Search(ctx context.Context, userID string, input service.SearchInput) (*service.SearchOutput, error)
	GetHistory(ctx context.Context, userID string) ([]service.HistoryItem, error)
	DeleteHistory(ctx context.Context, userID, id string) error
}

type SearchHandler struct {
	svc SearchService
}

func NewSearchHandler(svc SearchService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

type SearchFiltersRequest struct {
	SafeSearch *bool   `json:"safeSearch"`
	Language   *string `json:"language"`
	Region     *string `json:"region"`
}

type SearchRequest struct {
	Query   string                `json:"query"`
	Filters *SearchFiltersRequest `json:"filters"`
}

type SearchMetadata struct {
	TotalResults int   `json:"totalResults"`
	SearchTime   int64 `json:"searchTime"`
}

type SearchResponse struct {
	Success  bool                  `json:"success"`
	Results  []domain.SearchResult `json:"results"`
	Metadata SearchMetadata        `json:"metadata"`
	SearchID string                `json:"searchId"`
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		api.Error(w, http.StatusBadRequest, "search query is required")
		return
	}

	input := service.SearchInput{Query: req.Query}
	if req.Filters != nil {
		input.Filters = &service.FilterOverrides{
			SafeSearch: req.Filters.SafeSearch,
			Language:   req.Filters.Language,
			Region:     req.Filters.Region,
		}
	}

	output, err := h.svc.Search(r.Context(), userID, input)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, SearchResponse{
		Success: true,
		Results: output.Results,
		Metadata: SearchMetadata{
			TotalResults: output.TotalResults,
			SearchTime:   output.SearchTimeMs,
		},
		SearchID: output.SearchID,
	})
}

type HistoryListResponse struct {
	Success bool                  `json:"success"`
	History []service.HistoryItem `json:"history"`
}

func (h *SearchHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	items, err := h.svc.GetHistory(r.Context(), userID)
	if err != nil {
		api.HandleError(w, err)
		return
	}
	if items == nil {
		items = []service.HistoryItem{}
	}

	api.Success(w, http.StatusOK, HistoryListResponse{Success: true, History: items})
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *SearchHandler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		api.Error(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.svc.DeleteHistory(r.Context(), userID, id); err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, MessageResponse{Success: true, Message: "search history deleted"})
}
