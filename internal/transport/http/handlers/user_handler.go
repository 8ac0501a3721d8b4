package handlers

import (
	"net/http"
	"strings"

	"github.com/strideclub/stride/internal/repository"
	"github.com/strideclub/stride/internal/transport/http/middleware"
	"go.uber.org/zap"
)

type UserHandler struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

func NewUserHandler(userRepo repository.UserRepository, logger *zap.Logger) *UserHandler {
	return &UserHandler{userRepo: userRepo, logger: logger}
}

type publicUser struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	DisplayName string  `json:"display_name"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

// Search finds users by username prefix, for addressing friend requests.
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	if len(q) < 2 {
		writeError(w, http.StatusBadRequest, "QUERY_TOO_SHORT", "Search query must be at least 2 characters")
		return
	}

	users, err := h.userRepo.SearchByUsername(r.Context(), q, 20)
	if err != nil {
		h.logger.Error("user search failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	results := make([]publicUser, 0, len(users))
	for _, u := range users {
		results = append(results, publicUser{
			ID:          u.ID.String(),
			Username:    u.Username,
			DisplayName: u.DisplayName,
			AvatarURL:   u.AvatarURL,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"users": results})
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.userRepo.GetByID(r.Context(), userID)
	if err != nil {
		h.logger.Error("load profile failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		return
	}

	writeJSON(w, http.StatusOK, user)
}
