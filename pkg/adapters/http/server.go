package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/virtualide"
	"github.com/aretw0/virtualide/internal/logging"
	"github.com/aretw0/virtualide/pkg/adapters/memory"
	"github.com/aretw0/virtualide/pkg/ports"
	"github.com/aretw0/virtualide/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server serves the IDE over REST and Server-Sent Events.
type Server struct {
	Sessions   *session.Manager
	Recordings ports.RecordingStore
	Streams    *StreamManager

	newIDE   func() *virtualide.IDE
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithSessions sets the session manager. The default keeps sessions in memory.
func WithSessions(m *session.Manager) Option {
	return func(s *Server) {
		s.Sessions = m
	}
}

// WithRecordingStore sets where recordings are kept. The default is in memory.
func WithRecordingStore(store ports.RecordingStore) Option {
	return func(s *Server) {
		s.Recordings = store
	}
}

// WithIDEFactory sets how stateless replays and recordings create their IDE.
func WithIDEFactory(fn func() *virtualide.IDE) Option {
	return func(s *Server) {
		s.newIDE = fn
	}
}

// WithMetrics exposes the gatherer on GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger configures a logger for the Server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a Server with in-memory defaults.
func NewServer(opts ...Option) *Server {
	s := &Server{
		newIDE: func() *virtualide.IDE { return virtualide.NewDefault() },
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Sessions == nil {
		s.Sessions = session.NewManager(memory.NewStore(), session.WithIDEFactory(s.newIDE), session.WithLogger(s.logger))
	}
	if s.Recordings == nil {
		s.Recordings = memory.NewStore()
	}
	if s.Streams == nil {
		s.Streams = NewStreamManager(s.logger)
	}
	return s
}

// NewHandler creates a new HTTP handler for the IDE.
func NewHandler(opts ...Option) http.Handler {
	return NewServer(opts...).Routes()
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Post("/snapshot", s.Snapshot)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Post("/", s.StartSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Delete("/", s.DeleteSession)
			r.Post("/actions", s.ApplySessionActions)
			r.Get("/actions", s.GetSessionActions)
			r.Get("/snapshot", s.GetSessionSnapshot)
			r.Get("/events", s.SubscribeEvents)
		})
	})

	r.Route("/recordings", func(r chi.Router) {
		r.Get("/", s.ListRecordings)
		r.Post("/", s.CreateRecording)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetRecording)
			r.Delete("/", s.DeleteRecording)
			r.Get("/diffs", s.GetRecordingDiffs)
			r.Get("/frames/{step}", s.GetRecordingFrame)
		})
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "virtualide-http",
		"version": strings.TrimSpace(virtualide.Version),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
