package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/republic-cup/internal/usecase"
)

func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminLogin")
	defer span.End()

	var req adminLoginRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	session, err := h.adminAuthService.Login(ctx, req.PIN)
	if err != nil {
		h.logger.WarnContext(ctx, "admin login failed", "remote_addr", r.RemoteAddr, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, adminSessionDTO{
		Token:     session.Token,
		ExpiresAt: formatTime(session.ExpiresAt),
	})
}

func (h *Handler) CreateBackup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateBackup")
	defer span.End()

	upload := false
	if raw := strings.TrimSpace(r.URL.Query().Get("upload")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid upload flag %q", usecase.ErrInvalidInput, raw))
			return
		}
		upload = parsed
	}

	file, err := h.backupService.Backup(ctx, upload)
	if err != nil {
		h.logger.WarnContext(ctx, "create backup failed", "upload", upload, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "backup created", "name", file.Name, "upload", upload, "session_id", adminSessionID(ctx))
	writeSuccess(ctx, w, http.StatusCreated, backupDTO{
		Name:        file.Name,
		Matches:     file.Matches,
		Predictions: file.Predictions,
		Uploaded:    upload,
	})
}
