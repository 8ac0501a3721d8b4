package handlers

import (
	"net/http"

	"github.com/strideclub/stride/internal/domain"
	"github.com/strideclub/stride/internal/service"
	"github.com/strideclub/stride/internal/transport/http/middleware"
	"go.uber.org/zap"
)

type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
	logger             *zap.Logger
}

func NewLeaderboardHandler(leaderboardService *service.LeaderboardService, logger *zap.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService, logger: logger}
}

type rankedRow struct {
	domain.LeaderboardRow
	Value int              `json:"value"`
	Trend domain.TrendInfo `json:"trend"`
}

// GetLeaderboard composes and ranks the caller's board for the selected
// ?category= and ?range= (defaults: master/week).
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	category := parseCategory(r.URL.Query().Get("category"))
	timeRange := parseTimeRange(r.URL.Query().Get("range"))

	rows, err := h.leaderboardService.ComposeRows(r.Context(), userID)
	if err != nil {
		h.logger.Error("compose leaderboard failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	ranking := h.leaderboardService.Rank(rows, category, timeRange)

	ranked := make([]rankedRow, len(ranking.Rows))
	for i, row := range ranking.Rows {
		ranked[i] = rankedRow{
			LeaderboardRow: row,
			Value:          h.leaderboardService.Value(row, category, timeRange),
			Trend:          h.leaderboardService.Trend(row, category, timeRange),
		}
	}

	podium := min(3, len(ranked))
	writeJSON(w, http.StatusOK, map[string]any{
		"category":   ranking.Category,
		"time_range": ranking.TimeRange,
		"max_value":  ranking.MaxValue,
		"podium":     ranked[:podium],
		"rest":       ranked[podium:],
	})
}

func parseCategory(s string) domain.Category {
	switch domain.Category(s) {
	case domain.CategoryStrength, domain.CategoryCardio, domain.CategoryRecovery,
		domain.CategoryCalories, domain.CategorySteps:
		return domain.Category(s)
	default:
		return domain.CategoryMaster
	}
}

func parseTimeRange(s string) domain.TimeRange {
	switch domain.TimeRange(s) {
	case domain.RangeMonth, domain.RangeYear, domain.RangeAll:
		return domain.TimeRange(s)
	default:
		return domain.RangeWeek
	}
}
