package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lumina-search/lumina/internal/api"
	"github.com/lumina-search/lumina/internal/api/middleware"
	"github.com/lumina-search/lumina/internal/domain"
)

type SavedResultService interface {
	Save(ctx context.Context, userID, searchID string, resultIndex int) (*domain.SavedResult, error)
	List(ctx context.Context, userID string) ([]*domain.SavedResult, error)
	Delete(ctx context.Context, userID, id string) error
}

type SavedResultHandler struct {
	svc SavedResultService
}

func NewSavedResultHandler(svc SavedResultService) *SavedResultHandler {
	return &SavedResultHandler{svc: svc}
}

type SaveResultRequest struct {
	SearchID    string `json:"searchId"`
	ResultIndex *int   `json:"resultIndex"`
}

type SavedResultResponse struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Link     string    `json:"link"`
	Snippet  string    `json:"snippet,omitempty"`
	Summary  string    `json:"summary,omitempty"`
	Category string    `json:"category"`
	SavedAt  time.Time `json:"savedAt"`
}

func savedToResponse(s *domain.SavedResult) *SavedResultResponse {
	return &SavedResultResponse{
		ID:       s.ID,
		Title:    s.Title,
		Link:     s.Link,
		Snippet:  s.Snippet,
		Summary:  s.Summary,
		Category: string(s.Category),
		SavedAt:  s.SavedAt,
	}
}

type SaveResultResponse struct {
	Success     bool                 `json:"success"`
	SavedResult *SavedResultResponse `json:"savedResult"`
}

func (h *SavedResultHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req SaveResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SearchID == "" {
		api.Error(w, http.StatusBadRequest, "searchId is required")
		return
	}
	if req.ResultIndex == nil {
		api.Error(w, http.StatusBadRequest, "resultIndex is required")
		return
	}

	saved, err := h.svc.Save(r.Context(), userID, req.SearchID, *req.ResultIndex)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusCreated, SaveResultResponse{
		Success:     true,
		SavedResult: savedToResponse(saved),
	})
}

type SavedResultListResponse struct {
	Success      bool                   `json:"success"`
	SavedResults []*SavedResultResponse `json:"savedResults"`
}

func (h *SavedResultHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	results, err := h.svc.List(r.Context(), userID)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	responses := make([]*SavedResultResponse, len(results))
	for i, s := range results {
		responses[i] = savedToResponse(s)
	}

	api.Success(w, http.StatusOK, SavedResultListResponse{
		Success:      true,
		SavedResults: responses,
	})
}

func (h *SavedResultHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, MessageResponse{Success: true, Message: "saved result deleted"})
}
