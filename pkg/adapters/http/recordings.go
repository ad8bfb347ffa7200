package http

import (
	"net/http"
	"strconv"

	"github.com/aretw0/virtualide/pkg/domain"
	"github.com/aretw0/virtualide/pkg/recorder"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Snapshot handles POST /snapshot: the script in the body is applied to a
// fresh IDE and the final snapshot is returned. Nothing is stored.
func (s *Server) Snapshot(w http.ResponseWriter, r *http.Request) {
	sc, err := decodeScript(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ide := s.newIDE()
	if err := ide.ApplyActions(r.Context(), sc.Actions); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ide.Snapshot())
}

// CreateRecording handles POST /recordings. The id comes from the "id" query
// parameter, then the script name, then a random uuid. With continue=true
// rejected actions are listed as failures instead of failing the request.
func (s *Server) CreateRecording(w http.ResponseWriter, r *http.Request) {
	sc, err := decodeScript(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		id = sc.Name
	}
	if id == "" {
		id = uuid.NewString()
	}

	opts := []recorder.Option{
		recorder.WithStore(s.Recordings),
		recorder.WithIDEFactory(s.newIDE),
		recorder.WithLogger(s.logger),
	}
	if continueOnError, _ := strconv.ParseBool(r.URL.Query().Get("continue")); continueOnError {
		opts = append(opts, recorder.ContinueOnError())
	}

	rec, err := recorder.New(opts...).Record(r.Context(), id, sc.Actions)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, rec)
}

// ListRecordings handles GET /recordings.
func (s *Server) ListRecordings(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Recordings.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// GetRecording handles GET /recordings/{id}.
func (s *Server) GetRecording(w http.ResponseWriter, r *http.Request) {
	rec, err := s.Recordings.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

// GetRecordingFrame handles GET /recordings/{id}/frames/{step}.
func (s *Server) GetRecordingFrame(w http.ResponseWriter, r *http.Request) {
	step, err := strconv.Atoi(chi.URLParam(r, "step"))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, ErrorBody{Error: "step must be an integer", Code: "bad_request"})
		return
	}
	rec, err := s.Recordings.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	frame, ok := rec.Frame(step)
	if !ok {
		s.writeJSON(w, http.StatusNotFound, ErrorBody{Error: "no frame for step " + strconv.Itoa(step), Code: "frame_not_found"})
		return
	}
	s.writeJSON(w, http.StatusOK, frame)
}

// GetRecordingDiffs handles GET /recordings/{id}/diffs. Entry i is the change
// into frame i+1, null when nothing visible changed.
func (s *Server) GetRecordingDiffs(w http.ResponseWriter, r *http.Request) {
	rec, err := s.Recordings.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	diffs := recorder.Diffs(rec)
	if diffs == nil {
		diffs = []*domain.SnapshotDiff{}
	}
	s.writeJSON(w, http.StatusOK, diffs)
}

// DeleteRecording handles DELETE /recordings/{id}.
func (s *Server) DeleteRecording(w http.ResponseWriter, r *http.Request) {
	if err := s.Recordings.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
