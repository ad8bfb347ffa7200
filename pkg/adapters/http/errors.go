package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aretw0/virtualide/pkg/adapters/script"
	"github.com/aretw0/virtualide/pkg/domain"
)

// maxBodySize bounds request bodies.
const maxBodySize = 4 << 20

var errBadRequest = errors.New("bad request")

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	// Index is the position of the rejected action, when there is one.
	Index  *int   `json:"index,omitempty"`
	Action string `json:"action,omitempty"`
}

func errorBody(err error) ErrorBody {
	body := ErrorBody{Error: err.Error(), Code: domain.ErrorCode(err)}
	if errors.Is(err, errBadRequest) {
		body.Code = "bad_request"
	}
	var actionErr *domain.ActionError
	if errors.As(err, &actionErr) {
		idx := actionErr.Index
		body.Index = &idx
		body.Action = actionErr.Action.Name
	}
	return body
}

// statusFor maps errors to HTTP status codes. Rejected actions are 422
// whatever their cause; lookups of unknown sessions and recordings are 404.
func statusFor(err error) int {
	var actionErr *domain.ActionError
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.As(err, &actionErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrRecordingNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidPath):
		return http.StatusBadRequest
	case domain.ErrorCode(err) == "canceled":
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "err", err)
	}
	s.writeJSON(w, status, errorBody(err))
}

// decodeScript reads a script from the request body. Both the bare action
// list and the document form are accepted, shorthand included.
func decodeScript(r *http.Request) (*script.Script, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if len(data) == 0 {
		return &script.Script{Actions: []domain.Action{}}, nil
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %v", errBadRequest, err)
	}
	sc, err := script.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return sc, nil
}
