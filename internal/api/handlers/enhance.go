package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/lumina-search/lumina/internal/api"
	"github.com/lumina-search/lumina/internal/domain"
	"github.com/lumina-search/lumina/internal/service"
)

type EnrichmentService interface {
	EnrichResults(ctx context.Context, results []domain.SearchResult) []domain.SearchResult
	SuggestQueries(ctx context.Context, query string) []string
	GenerateFAQs(ctx context.Context, query string) []service.FAQ
}

// EnhanceHandler exposes the enrichment pipeline directly, without going
// through a full search.
type EnhanceHandler struct {
	svc EnrichmentService
}

func NewEnhanceHandler(svc EnrichmentService) *EnhanceHandler {
	return &EnhanceHandler{svc: svc}
}

type EnhanceRequest struct {
	Results []domain.SearchResult `json:"results"`
}

type EnhanceResponse struct {
	Success bool                  `json:"success"`
	Results []domain.SearchResult `json:"results"`
}

func (h *EnhanceHandler) Enhance(w http.ResponseWriter, r *http.Request) {
	var req EnhanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Results) == 0 {
		api.Error(w, http.StatusBadRequest, "invalid search results provided")
		return
	}

	enriched := h.svc.EnrichResults(r.Context(), req.Results)
	api.Success(w, http.StatusOK, EnhanceResponse{Success: true, Results: enriched})
}

type SuggestionsResponse struct {
	Success     bool     `json:"success"`
	Suggestions []string `json:"suggestions"`
}

func (h *EnhanceHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		api.Error(w, http.StatusBadRequest, "search query is required")
		return
	}

	suggestions := h.svc.SuggestQueries(r.Context(), query)
	if suggestions == nil {
		suggestions = []string{}
	}

	api.Success(w, http.StatusOK, SuggestionsResponse{Success: true, Suggestions: suggestions})
}

type FAQsResponse struct {
	Success bool          `json:"success"`
	FAQs    []service.FAQ `json:"faqs"`
}

func (h *EnhanceHandler) FAQs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		api.Error(w, http.StatusBadRequest, "search query is required")
		return
	}

	faqs := h.svc.GenerateFAQs(r.Context(), query)
	if faqs == nil {
		faqs = []service.FAQ{}
	}

	api.Success(w, http.StatusOK, FAQsResponse{Success: true, FAQs: faqs})
}
