package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/virtualide"
	"github.com/aretw0/virtualide/internal/logging"
	"github.com/aretw0/virtualide/pkg/adapters/script"
	"github.com/aretw0/virtualide/pkg/domain"
	"github.com/aretw0/virtualide/pkg/ports"
	"github.com/aretw0/virtualide/pkg/recorder"
	"github.com/aretw0/virtualide/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ApplyResponse is the structured result of apply_actions.
type ApplyResponse struct {
	SessionID string                `json:"session_id,omitempty" jsonschema_description:"Session the actions were applied to, empty for a one-off replay"`
	Applied   int                   `json:"applied" jsonschema_description:"Number of actions applied"`
	Snapshot  domain.CourseSnapshot `json:"snapshot" jsonschema_description:"IDE state after the applied actions"`
	Error     string                `json:"error,omitempty" jsonschema_description:"Why the next action was rejected"`
	Code      string                `json:"code,omitempty" jsonschema_description:"Machine-readable error code"`
}

// RecordingSummary describes a stored recording without its frames.
type RecordingSummary struct {
	ID       string               `json:"id"`
	Actions  int                  `json:"actions"`
	Frames   int                  `json:"frames"`
	Failures []domain.StepFailure `json:"failures,omitempty"`
}

// Server exposes the IDE as an MCP server.
type Server struct {
	sessions   *session.Manager
	recordings ports.RecordingStore
	newIDE     func() *virtualide.IDE
	logger     *slog.Logger
	mcpServer  *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures a logger for the Server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithIDEFactory sets how one-off replays and recordings create their IDE.
func WithIDEFactory(fn func() *virtualide.IDE) Option {
	return func(s *Server) {
		s.newIDE = fn
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(sessions *session.Manager, recordings ports.RecordingStore, opts ...Option) *Server {
	s := &Server{
		sessions:   sessions,
		recordings: recordings,
		newIDE:     func() *virtualide.IDE { return virtualide.NewDefault() },
		logger:     logging.NewNop(),
		mcpServer:  server.NewMCPServer("virtualide-mcp", strings.TrimSpace(virtualide.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: apply_actions
	applyTool := mcp.NewTool("apply_actions",
		mcp.WithDescription("Apply IDE actions and return the resulting snapshot. With a session_id the actions extend that session (created on first use); without one they run on a fresh IDE."),
		mcp.WithString("actions", mcp.Required(), mcp.Description(`Script as JSON or YAML: a list of actions such as [{"name":"file-explorer-create-file","value":"src/a.js"}] or shorthand [{"editor-type":"x"}]`)),
		mcp.WithString("session_id", mcp.Description("Session to apply the actions to (optional)")),
		mcp.WithOutputSchema[ApplyResponse](),
	)
	s.mcpServer.AddTool(applyTool, mcp.NewStructuredToolHandler(s.handleApplyActions))

	// TOOL: record
	recordTool := mcp.NewTool("record",
		mcp.WithDescription("Replay a script on a fresh IDE and store one snapshot per action."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Recording ID")),
		mcp.WithString("actions", mcp.Required(), mcp.Description("Script as JSON or YAML")),
		mcp.WithOutputSchema[RecordingSummary](),
	)
	s.mcpServer.AddTool(recordTool, mcp.NewStructuredToolHandler(s.handleRecord))

	// TOOL: get_recording
	s.mcpServer.AddTool(mcp.NewTool("get_recording",
		mcp.WithDescription("Fetch a stored recording, or a single frame of it when step is given."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Recording ID")),
		mcp.WithNumber("step", mcp.Description("Frame step (optional)")),
	), s.handleGetRecording)

	// TOOL: list_actions
	s.mcpServer.AddTool(mcp.NewTool("list_actions",
		mcp.WithDescription("List every recognized action name."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(strings.Join(domain.Vocabulary(), "\n")), nil
	})
}

// Handler methods for structured tools

func (s *Server) handleApplyActions(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ApplyResponse, error) {
	actions, err := parseActions(args)
	if err != nil {
		return ApplyResponse{}, err
	}
	sessionID, _ := args["session_id"].(string)

	var (
		resp     ApplyResponse
		applyErr error
	)
	if sessionID == "" {
		ide := s.newIDE()
		applyErr = ide.ApplyActions(ctx, actions)
		resp.Applied = len(actions)
		resp.Snapshot = ide.Snapshot()
	} else {
		if _, err := s.sessions.Start(ctx, sessionID); err != nil {
			return ApplyResponse{}, err
		}
		var res session.Result
		res, applyErr = s.sessions.Apply(ctx, sessionID, actions)
		resp.SessionID = sessionID
		resp.Applied = res.Applied
		resp.Snapshot = res.After
	}

	var actionErr *domain.ActionError
	if errors.As(applyErr, &actionErr) {
		resp.Applied = actionErr.Index
		resp.Error = applyErr.Error()
		resp.Code = domain.ErrorCode(applyErr)
		s.logger.Debug("MCP apply_actions: action rejected", "session_id", sessionID, "index", actionErr.Index, "err", applyErr)
		return resp, nil
	}
	if applyErr != nil {
		return ApplyResponse{}, fmt.Errorf("apply failed: %w", applyErr)
	}
	return resp, nil
}

func (s *Server) handleRecord(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RecordingSummary, error) {
	id, _ := args["id"].(string)
	if id == "" {
		return RecordingSummary{}, fmt.Errorf("id is required")
	}
	actions, err := parseActions(args)
	if err != nil {
		return RecordingSummary{}, err
	}

	rec, err := recorder.New(
		recorder.WithStore(s.recordings),
		recorder.WithIDEFactory(s.newIDE),
		recorder.WithLogger(s.logger),
		recorder.ContinueOnError(),
	).Record(ctx, id, actions)
	if err != nil {
		return RecordingSummary{}, fmt.Errorf("record failed: %w", err)
	}
	return summarize(rec), nil
}

func (s *Server) handleGetRecording(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rec, err := s.recordings.Load(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}

	var payload any = rec
	if step := request.GetInt("step", -1); step >= 0 {
		frame, found := rec.Frame(step)
		if !found {
			return mcp.NewToolResultError(fmt.Sprintf("recording %s has no frame %d", id, step)), nil
		}
		payload = frame
	}

	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: virtualide://recordings
	s.mcpServer.AddResource(mcp.NewResource("virtualide://recordings", "Stored Recordings",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.recordings.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list recordings: %w", err)
		}
		if ids == nil {
			ids = []string{}
		}
		jsonBytes, _ := json.Marshal(ids)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "virtualide://recordings",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

// parseActions decodes the "actions" argument. YAML is a superset of JSON,
// so both forms go through the YAML decoder.
func parseActions(args map[string]interface{}) ([]domain.Action, error) {
	raw, _ := args["actions"].(string)
	sc, err := script.Parse([]byte(raw), script.FormatYAML)
	if err != nil {
		return nil, fmt.Errorf("invalid actions: %w", err)
	}
	return sc.Actions, nil
}

func summarize(rec *domain.Recording) RecordingSummary {
	return RecordingSummary{
		ID:       rec.ID,
		Actions:  len(rec.Actions),
		Frames:   len(rec.Frames),
		Failures: rec.Failures,
	}
}
