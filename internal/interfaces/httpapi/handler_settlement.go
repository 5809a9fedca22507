package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) GetMatchSettlement(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchSettlement")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	result, err := h.settlementService.SettleMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "settle match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settlementToDTO(result))
}

func (h *Handler) PublishManOfTheMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PublishManOfTheMatch")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req publishManOfTheMatchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.settlementService.PublishManOfTheMatch(ctx, matchID, req.Player)
	if err != nil {
		h.logger.WarnContext(ctx, "publish man of the match failed", "match_id", matchID, "player", req.Player, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "man of the match published",
		"match_id", matchID,
		"player", result.ManOfTheMatch,
		"winners", len(result.Winners),
		"share", result.Share,
		"session_id", adminSessionID(ctx),
	)
	writeSuccess(ctx, w, http.StatusOK, settlementToDTO(result))
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	entries, err := h.settlementService.Leaderboard(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderboardEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, leaderboardEntryToDTO(entry))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetUserStanding(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetUserStanding")
	defer span.End()

	userName := r.PathValue("userName")
	entry, err := h.settlementService.UserStanding(ctx, userName)
	if err != nil {
		h.logger.WarnContext(ctx, "get user standing failed", "user_name", userName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardEntryToDTO(entry))
}

func (h *Handler) RefreshLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshLeaderboard")
	defer span.End()

	entries, err := h.settlementService.RefreshLeaderboard(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "refresh leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"entries": len(entries)})
}
