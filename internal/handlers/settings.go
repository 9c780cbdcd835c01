package handlers

import (
	"io"
	"net/http"

	"yukti-ai/internal/contextutil"
	"yukti-ai/internal/conversation"
	"yukti-ai/internal/service"
)

const maxSettingsBody = 4 << 10

// SettingsHandler reads and updates the sampling settings.
type SettingsHandler struct {
	settingsService service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// ServeHTTP handles GET (current settings) and PUT (partial update).
// PUT accepts numbers or numeric strings for both fields.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	switch r.Method {
	case http.MethodGet:
		writeJSON(ctx, w, http.StatusOK, h.settingsService.Current())

	case http.MethodPut:
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSettingsBody))
		if err != nil {
			logger.WarnContext(ctx, "failed to read settings body", "error", err)
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		patch, err := conversation.ParsePatch(body)
		if err != nil {
			logger.WarnContext(ctx, "invalid settings body", "error", err)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if patch.IsEmpty() {
			writeError(w, http.StatusBadRequest, "No settings provided")
			return
		}

		settings, err := h.settingsService.Save(ctx, patch)
		if err != nil {
			handleServiceError(w, ctx, err, "Failed to save settings")
			return
		}
		writeJSON(ctx, w, http.StatusOK, settings)

	default:
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
