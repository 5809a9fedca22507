package httpapi

import "net/http"

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	rows, err := h.statsService.Standings(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(rows, h.teamNames(ctx)))
}

func (h *Handler) GetScorerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScorerStats")
	defer span.End()

	stats, err := h.statsService.ScorerStats(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get scorer stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scorerStatsToDTO(stats))
}

func (h *Handler) GetTournamentSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTournamentSummary")
	defer span.End()

	summary, err := h.statsService.Summary(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get tournament summary failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summaryToDTO(summary))
}

func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOverview")
	defer span.End()

	overview, err := h.statsService.Overview(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get overview failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, overviewDTO{
		Standings: standingsToDTO(overview.Standings, h.teamNames(ctx)),
		Stats:     scorerStatsToDTO(overview.Stats),
		Summary:   summaryToDTO(overview.Summary),
	})
}

func (h *Handler) ListFanFavourites(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFanFavourites")
	defer span.End()

	votes, err := h.statsService.FanFavourites(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list fan favourites failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fanVotesToDTO(votes))
}
