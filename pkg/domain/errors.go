package domain

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnrecognizedAction is returned when an action name is outside the vocabulary.
var ErrUnrecognizedAction = errors.New("unrecognized action")

// ErrFileNotFound is returned when a path does not resolve to a node of the expected type.
var ErrFileNotFound = errors.New("file not found")

// ErrNoActiveFile is returned by editor operations when no file is current.
var ErrNoActiveFile = errors.New("no active file")

// ErrDuplicateRegistration is returned when a second terminal or author is added without replacing.
var ErrDuplicateRegistration = errors.New("duplicate registration")

// ErrInvalidPayload is returned when an action value cannot be decoded.
var ErrInvalidPayload = errors.New("invalid action payload")

// ErrInvalidPath is returned for empty paths or paths with "." or ".." segments.
var ErrInvalidPath = errors.New("invalid path")

// ErrPathConflict is returned when a node of a different type already occupies a path.
var ErrPathConflict = errors.New("path conflict")

// ErrFileNotOpen is returned when switching to a file that is not open.
// It wraps ErrFileNotFound so callers matching the broader class still see it.
var ErrFileNotOpen = fmt.Errorf("file not open: %w", ErrFileNotFound)

// ErrNoCollaborator is returned when a terminal or author action arrives
// before the matching collaborator was registered.
var ErrNoCollaborator = errors.New("no collaborator registered")

// ErrRecordingNotFound is returned when a recording ID cannot be found in the store.
var ErrRecordingNotFound = errors.New("recording not found")

// ErrSessionNotFound is returned when a live session ID is unknown.
var ErrSessionNotFound = errors.New("session not found")

// ActionError reports the position of the failing action within a batch.
type ActionError struct {
	Index  int
	Action Action
	Err    error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action %d (%s): %v", e.Index, e.Action.Name, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// ErrorCode maps an error to a stable, machine-readable code.
// Unknown errors map to "internal".
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnrecognizedAction):
		return "unrecognized_action"
	case errors.Is(err, ErrFileNotOpen):
		return "file_not_open"
	case errors.Is(err, ErrFileNotFound):
		return "file_not_found"
	case errors.Is(err, ErrNoActiveFile):
		return "no_active_file"
	case errors.Is(err, ErrDuplicateRegistration):
		return "duplicate_registration"
	case errors.Is(err, ErrInvalidPayload):
		return "invalid_payload"
	case errors.Is(err, ErrInvalidPath):
		return "invalid_path"
	case errors.Is(err, ErrPathConflict):
		return "path_conflict"
	case errors.Is(err, ErrNoCollaborator):
		return "no_collaborator"
	case errors.Is(err, ErrRecordingNotFound):
		return "recording_not_found"
	case errors.Is(err, ErrSessionNotFound):
		return "session_not_found"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "internal"
	}
}
