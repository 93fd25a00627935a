package handlers

import (
	"context"
	"net/http"

	"github.com/lumina-search/lumina/internal/api"
	"github.com/lumina-search/lumina/internal/api/middleware"
	"github.com/lumina-search/lumina/internal/service"
)

type StatisticsService interface {
	GetStatistics(ctx context.Context, userID string) (*service.StatisticsView, error)
}

type StatisticsHandler struct {
	svc StatisticsService
}

func NewStatisticsHandler(svc StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{svc: svc}
}

type StatisticsResponse struct {
	Success bool                    `json:"success"`
	Stats   *service.StatisticsView `json:"stats"`
}

func (h *StatisticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	view, err := h.svc.GetStatistics(r.Context(), userID)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, StatisticsResponse{Success: true, Stats: view})
}
