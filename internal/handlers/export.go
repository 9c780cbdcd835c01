package handlers

import (
	"fmt"
	"net/http"
	"time"

	"yukti-ai/internal/contextutil"
	"yukti-ai/internal/export"
	"yukti-ai/internal/service"
)

// ExportHandler serves the conversation as a JSON download.
type ExportHandler struct {
	chatService service.ChatService
	now         func() time.Time
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(chatService service.ChatService) *ExportHandler {
	return &ExportHandler{
		chatService: chatService,
		now:         time.Now,
	}
}

// ServeHTTP handles GET requests.
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	history := h.chatService.History()
	data, err := export.JSON(history)
	if err != nil {
		logger.ErrorContext(ctx, "failed to export conversation", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to export conversation")
		return
	}

	filename := export.Filename(h.now())
	w.Header().Set("Content-Type", export.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logger.ErrorContext(ctx, "failed to write export", "error", err)
		return
	}
	logger.InfoContext(ctx, "conversation exported", "messages", len(history), "filename", filename)
}
