package handlers

import (
	"net/http"
	"strconv"

	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/internal/services"
	"github.com/Dias221467/health-o-mania/pkg/apperr"
)

type ScoreboardHandler struct {
	Service *services.ScoreboardService
}

func NewScoreboardHandler(service *services.ScoreboardService) *ScoreboardHandler {
	return &ScoreboardHandler{Service: service}
}

type scoreboardResponse struct {
	Leaderboard []models.LeaderboardEntry `json:"leaderboard"`
	Daily       []models.DailyXP          `json:"daily"`
}

// GetScoreboardHandler returns the friends leaderboard and the caller's
// daily XP for the last ?days= days.
func (h *ScoreboardHandler) GetScoreboardHandler(w http.ResponseWriter, r *http.Request) {
	userID := callerID(w, r)
	if userID == "" {
		return
	}

	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, r, apperr.New(apperr.InvalidArgument, "days must be a positive number."))
			return
		}
		days = n
	}

	board, err := h.Service.Leaderboard(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	daily, err := h.Service.DailyXP(r.Context(), userID, days)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scoreboardResponse{Leaderboard: board, Daily: daily})
}
