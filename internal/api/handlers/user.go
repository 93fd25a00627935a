package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/lumina-search/lumina/internal/api"
	"github.com/lumina-search/lumina/internal/api/middleware"
	"github.com/lumina-search/lumina/internal/domain"
	"github.com/lumina-search/lumina/internal/service"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update service.ProfileUpdate) (*domain.User, error)
	GetPreferences(ctx context.Context, userID string) (*domain.Preferences, error)
	UpdatePreferences(ctx context.Context, userID string, update service.PreferencesUpdate) (*domain.Preferences, error)
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Gender    string    `json:"gender"`
	AvatarURL string    `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

func userToResponse(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Gender:    string(u.Gender),
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}

type ProfileResponse struct {
	Success bool          `json:"success"`
	User    *UserResponse `json:"user"`
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.svc.GetProfile(r.Context(), userID)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, ProfileResponse{Success: true, User: userToResponse(user)})
}

type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Gender   *string `json:"gender"`
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update := service.ProfileUpdate{
		Username: req.Username,
		Email:    req.Email,
	}
	if req.Gender != nil {
		gender := domain.Gender(*req.Gender)
		update.Gender = &gender
	}

	user, err := h.svc.UpdateProfile(r.Context(), userID, update)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, ProfileResponse{Success: true, User: userToResponse(user)})
}

type PreferencesResponse struct {
	Success     bool                `json:"success"`
	Preferences *domain.Preferences `json:"preferences"`
}

func (h *UserHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	prefs, err := h.svc.GetPreferences(r.Context(), userID)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, PreferencesResponse{Success: true, Preferences: prefs})
}

type UpdatePreferencesRequest struct {
	DefaultEngine  *string `json:"defaultEngine"`
	ResultsPerPage *int    `json:"resultsPerPage"`
	SafeSearch     *bool   `json:"safeSearch"`
	Language       *string `json:"language"`
	Region         *string `json:"region"`
	Summarization  *bool   `json:"summarization"`
	Categorization *bool   `json:"categorization"`
}

func (h *UserHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req UpdatePreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	prefs, err := h.svc.UpdatePreferences(r.Context(), userID, service.PreferencesUpdate{
		DefaultEngine:  req.DefaultEngine,
		ResultsPerPage: req.ResultsPerPage,
		SafeSearch:     req.SafeSearch,
		Language:       req.Language,
		Region:         req.Region,
		Summarization:  req.Summarization,
		Categorization: req.Categorization,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, PreferencesResponse{Success: true, Preferences: prefs})
}
