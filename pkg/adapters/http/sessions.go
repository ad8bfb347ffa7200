package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aretw0/virtualide/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// SessionResponse describes a session and its current state.
type SessionResponse struct {
	ID       string                `json:"id"`
	Snapshot domain.CourseSnapshot `json:"snapshot"`
}

// ApplyResponse is returned by POST /sessions/{id}/actions. When an action is
// rejected the status is 422 and Error says which one; Applied counts the
// actions before it, which stay applied.
type ApplyResponse struct {
	Applied  int                   `json:"applied"`
	Snapshot domain.CourseSnapshot `json:"snapshot"`
	Error    *ErrorBody            `json:"error,omitempty"`
}

// StartSession handles POST /sessions. The body may name the session;
// otherwise a random id is assigned.
func (s *Server) StartSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	if body.ID == "" {
		body.ID = uuid.NewString()
	}

	snap, err := s.Sessions.Start(r.Context(), body.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("session started", "session_id", body.ID)
	s.writeJSON(w, http.StatusCreated, SessionResponse{ID: body.ID, Snapshot: snap})
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// GetSessionSnapshot handles GET /sessions/{id}/snapshot.
func (s *Server) GetSessionSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := s.Sessions.Snapshot(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, SessionResponse{ID: id, Snapshot: snap})
}

// GetSessionActions handles GET /sessions/{id}/actions.
func (s *Server) GetSessionActions(w http.ResponseWriter, r *http.Request) {
	actions, err := s.Sessions.Actions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if actions == nil {
		actions = []domain.Action{}
	}
	s.writeJSON(w, http.StatusOK, actions)
}

// ApplySessionActions handles POST /sessions/{id}/actions and broadcasts the
// resulting diff to the session's event streams.
func (s *Server) ApplySessionActions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sc, err := decodeScript(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.Sessions.Apply(r.Context(), id, sc.Actions)
	var actionErr *domain.ActionError
	if err != nil && !errors.As(err, &actionErr) {
		s.writeError(w, r, err)
		return
	}

	if diff := domain.Diff(&res.Before, &res.After); diff != nil {
		s.Streams.Broadcast(id, diff)
	}

	resp := ApplyResponse{Applied: res.Applied, Snapshot: res.After}
	status := http.StatusOK
	if actionErr != nil {
		body := errorBody(err)
		resp.Error = &body
		status = http.StatusUnprocessableEntity
	}
	s.writeJSON(w, status, resp)
}

// DeleteSession handles DELETE /sessions/{id}. Open event streams are closed.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.Streams.Close(id)
	w.WriteHeader(http.StatusNoContent)
}
