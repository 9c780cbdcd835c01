package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"yukti-ai/internal/handlers"
	"yukti-ai/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	ChatService     service.ChatService
	SettingsService service.SettingsService
	Renderer        handlers.MarkdownRenderer
	Monitor         handlers.StatusReporter
	Models          handlers.ModelChecker
	Model           string
	Responder       handlers.BusyReporter
	Messages        handlers.MessageCounter
	DB              handlers.DBPinger
	Server          handlers.ServerPinger
	// CompletionTimeout bounds a single chat request. Zero disables it.
	CompletionTimeout time.Duration
	IndexHTML         string // Embedded HTML content
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)

	// Add CORS middleware
	r.Use(CORS)

	chatHandler := handlers.NewChatHandler(deps.ChatService, deps.Renderer, deps.CompletionTimeout)
	historyHandler := handlers.NewHistoryHandler(deps.ChatService, deps.Renderer)
	exportHandler := handlers.NewExportHandler(deps.ChatService)
	settingsHandler := handlers.NewSettingsHandler(deps.SettingsService)
	statusHandler := handlers.NewStatusHandler(deps.Monitor, deps.Models, deps.Model, deps.Responder, deps.Messages)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Server)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/chat", chatHandler)
		r.Method(http.MethodGet, "/messages", historyHandler)
		r.Method(http.MethodDelete, "/messages", historyHandler)
		r.Method(http.MethodGet, "/settings", settingsHandler)
		r.Method(http.MethodPut, "/settings", settingsHandler)
		r.Method(http.MethodGet, "/export", exportHandler)
		r.Method(http.MethodGet, "/status", statusHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	// Serve HTML page at root
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(deps.IndexHTML))
	})

	return r
}
