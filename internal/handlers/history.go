package handlers

import (
	"net/http"
	"time"

	"yukti-ai/internal/contextutil"
	"yukti-ai/internal/conversation"
	"yukti-ai/internal/service"
)

// HistoryHandler serves and clears the conversation.
type HistoryHandler struct {
	chatService service.ChatService
	renderer    MarkdownRenderer
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(chatService service.ChatService, renderer MarkdownRenderer) *HistoryHandler {
	return &HistoryHandler{
		chatService: chatService,
		renderer:    renderer,
	}
}

// MessageResponse is one message of the conversation. HTML is only set for
// assistant messages; user text is shown as typed.
type MessageResponse struct {
	Role      conversation.Role `json:"role"`
	Content   string            `json:"content"`
	HTML      string            `json:"html,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// HistoryResponse is the conversation so far, oldest first.
type HistoryResponse struct {
	Messages []MessageResponse `json:"messages"`
}

// ServeHTTP handles GET (list) and DELETE (clear).
func (h *HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	switch r.Method {
	case http.MethodGet:
		history := h.chatService.History()
		resp := HistoryResponse{Messages: make([]MessageResponse, 0, len(history))}
		for _, msg := range history {
			item := MessageResponse{
				Role:      msg.Role,
				Content:   msg.Content,
				Timestamp: msg.Timestamp,
			}
			if msg.Role == conversation.RoleAssistant {
				item.HTML = renderHTML(ctx, h.renderer, msg.Content)
			}
			resp.Messages = append(resp.Messages, item)
		}
		writeJSON(ctx, w, http.StatusOK, resp)

	case http.MethodDelete:
		h.chatService.Clear()
		logger.InfoContext(ctx, "conversation cleared")
		w.WriteHeader(http.StatusNoContent)

	default:
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
