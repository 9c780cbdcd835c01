package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"yukti-ai/internal/contextutil"
	"yukti-ai/internal/service"
)

// maxChatBody bounds the request body of a chat message.
const maxChatBody = 64 << 10

// MarkdownRenderer renders assistant text to HTML.
type MarkdownRenderer interface {
	Markdown(text string) (string, error)
}

// ChatHandler handles HTTP requests for chat.
type ChatHandler struct {
	chatService service.ChatService
	renderer    MarkdownRenderer
	timeout     time.Duration
}

// NewChatHandler creates a new ChatHandler. A non-positive timeout disables the deadline.
func NewChatHandler(chatService service.ChatService, renderer MarkdownRenderer, timeout time.Duration) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		renderer:    renderer,
		timeout:     timeout,
	}
}

// ChatRequest represents the HTTP request payload for chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse represents the HTTP response payload for chat.
type ChatResponse struct {
	Reply     string    `json:"reply"`
	HTML      string    `json:"html"`
	Timestamp time.Time `json:"timestamp"`
	Builtin   bool      `json:"builtin"`
	Cleared   bool      `json:"cleared"`
	Failed    bool      `json:"failed"`
}

// ServeHTTP handles HTTP requests for chat.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBody)).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	svcResp, err := h.chatService.ProcessChat(ctx, service.ChatRequest{
		Message: req.Message,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to process chat request")
		return
	}

	resp := ChatResponse{
		Reply:     svcResp.Reply,
		HTML:      renderHTML(ctx, h.renderer, svcResp.Reply),
		Timestamp: svcResp.Timestamp,
		Builtin:   svcResp.Command != "",
		Cleared:   svcResp.Cleared,
		Failed:    svcResp.Failed,
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// renderHTML renders text, returning "" when rendering fails so the page falls back
// to plain text.
func renderHTML(ctx context.Context, renderer MarkdownRenderer, text string) string {
	if renderer == nil {
		return ""
	}
	html, err := renderer.Markdown(text)
	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to render markdown", "error", err)
		return ""
	}
	return html
}
