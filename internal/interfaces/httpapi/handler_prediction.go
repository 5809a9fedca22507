package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/republic-cup/internal/usecase"
)

func (h *Handler) ListPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPredictions")
	defer span.End()

	items, err := h.predictionService.List(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list predictions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]predictionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, predictionToDTO(item, false))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListMatchPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchPredictions")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	result, err := h.predictionService.ListByMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list match predictions failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchPredictionsToDTO(result))
}

func (h *Handler) SubmitPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPrediction")
	defer span.End()

	var req submitPredictionRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.predictionService.Submit(ctx, usecase.SubmitPredictionInput{
		UserName:        req.UserName,
		MatchID:         req.MatchID,
		PredictedPlayer: req.PredictedPlayer,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit prediction failed", "match_id", req.MatchID, "user_name", req.UserName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, predictionToDTO(item, false))
}

func (h *Handler) DeletePrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePrediction")
	defer span.End()

	predictionID := strings.TrimSpace(r.PathValue("predictionID"))
	if err := h.predictionService.Delete(ctx, predictionID); err != nil {
		h.logger.WarnContext(ctx, "delete prediction failed", "prediction_id", predictionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "prediction deleted", "prediction_id", predictionID, "session_id", adminSessionID(ctx))
	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": predictionID})
}

func (h *Handler) DeleteAllPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteAllPredictions")
	defer span.End()

	removed, err := h.predictionService.DeleteAll(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "delete all predictions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "predictions cleared", "removed", removed, "session_id", adminSessionID(ctx))
	writeSuccess(ctx, w, http.StatusOK, map[string]int{"removed": removed})
}
