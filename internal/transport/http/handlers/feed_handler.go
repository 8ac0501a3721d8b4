package handlers

import (
	"net/http"

	"github.com/strideclub/stride/internal/service"
	"github.com/strideclub/stride/internal/transport/http/middleware"
	"go.uber.org/zap"
)

type FeedHandler struct {
	feedService *service.FeedService
	logger      *zap.Logger
}

func NewFeedHandler(feedService *service.FeedService, logger *zap.Logger) *FeedHandler {
	return &FeedHandler{feedService: feedService, logger: logger}
}

// GetFeed rebuilds and returns the caller's feed. ?cached=1 serves the last
// snapshot when one exists, skipping the fan-out.
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if r.URL.Query().Get("cached") == "1" {
		if feed := h.feedService.CachedFeed(userID); feed != nil {
			writeJSON(w, http.StatusOK, feed)
			return
		}
	}

	feed, err := h.feedService.BuildFeed(r.Context(), userID)
	if err != nil {
		h.logger.Error("build feed failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, feed)
}
