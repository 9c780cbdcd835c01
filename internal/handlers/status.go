package handlers

import (
	"context"
	"net/http"
	"time"

	"yukti-ai/internal/connectivity"
	"yukti-ai/internal/contextutil"
)

// StatusReporter exposes the last connectivity probe.
type StatusReporter interface {
	Status() connectivity.Status
}

// ModelChecker reports whether the configured model is available on the server.
type ModelChecker interface {
	HasModel(ctx context.Context) (bool, error)
}

// BusyReporter reports whether a completion is in flight.
type BusyReporter interface {
	Busy() bool
}

// MessageCounter reports how many messages the conversation holds.
type MessageCounter interface {
	Len() int
}

// StatusHandler reports inference server connectivity for the page's status dot.
type StatusHandler struct {
	monitor StatusReporter
	models  ModelChecker
	model     string
	responder BusyReporter
	messages  MessageCounter
	timeout   time.Duration
}

// NewStatusHandler creates a new StatusHandler. models, responder and messages may be nil.
func NewStatusHandler(monitor StatusReporter, models ModelChecker, model string, responder BusyReporter, messages MessageCounter) *StatusHandler {
	return &StatusHandler{
		monitor:   monitor,
		models:    models,
		model:     model,
		responder: responder,
		messages:  messages,
		timeout:   5 * time.Second,
	}
}

// StatusResponse is the connectivity snapshot plus model availability and
// conversation state. ModelAvailable is nil when it could not be determined.
type StatusResponse struct {
	Connected      bool       `json:"connected"`
	CheckedAt      *time.Time `json:"checked_at,omitempty"`
	LastError      string     `json:"last_error,omitempty"`
	Model          string     `json:"model"`
	ModelAvailable *bool      `json:"model_available,omitempty"`
	Busy           bool       `json:"busy"`
	MessageCount   int        `json:"message_count"`
}

// ServeHTTP handles GET requests.
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	status := h.monitor.Status()
	resp := StatusResponse{
		Connected: status.Connected,
		LastError: status.LastError,
		Model:     h.model,
	}
	if h.responder != nil {
		resp.Busy = h.responder.Busy()
	}
	if h.messages != nil {
		resp.MessageCount = h.messages.Len()
	}
	if !status.CheckedAt.IsZero() {
		checkedAt := status.CheckedAt
		resp.CheckedAt = &checkedAt
	}

	// Only ask for the model list when the server is known to answer.
	if status.Connected && h.models != nil {
		checkCtx, cancel := context.WithTimeout(ctx, h.timeout)
		defer cancel()

		available, err := h.models.HasModel(checkCtx)
		if err != nil {
			logger.WarnContext(ctx, "model availability check failed", "model", h.model, "error", err)
		} else {
			resp.ModelAvailable = &available
		}
	}

	writeJSON(ctx, w, http.StatusOK, resp)
}
