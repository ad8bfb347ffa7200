// Package recorder replays scripts into recordings: one snapshot per step.
package recorder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/virtualide"
	"github.com/aretw0/virtualide/internal/logging"
	"github.com/aretw0/virtualide/pkg/domain"
	"github.com/aretw0/virtualide/pkg/ports"
)

// Recorder replays scripts on fresh IDEs and optionally persists the result.
type Recorder struct {
	store           ports.RecordingStore
	newIDE          func() *virtualide.IDE
	continueOnError bool
	logger          *slog.Logger
}

// Option configures the Recorder.
type Option func(*Recorder)

// WithStore persists every recording after it is built.
func WithStore(store ports.RecordingStore) Option {
	return func(r *Recorder) {
		r.store = store
	}
}

// WithIDEFactory sets how the IDE for each replay is created.
// The default is virtualide.NewDefault.
func WithIDEFactory(fn func() *virtualide.IDE) Option {
	return func(r *Recorder) {
		r.newIDE = fn
	}
}

// ContinueOnError keeps replaying after a rejected action. The failure is
// listed in Recording.Failures and produces no frame.
func ContinueOnError() Option {
	return func(r *Recorder) {
		r.continueOnError = true
	}
}

// WithLogger configures a logger for the Recorder.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) {
		r.logger = logger
	}
}

// New creates a Recorder.
func New(opts ...Option) *Recorder {
	r := &Recorder{
		newIDE: func() *virtualide.IDE { return virtualide.NewDefault() },
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record replays actions on a fresh IDE. Frame 0 is the empty workspace and
// frame i follows the i-th applied action.
//
// Unless ContinueOnError is set, the first rejected action stops the replay:
// the partial recording is returned together with a *domain.ActionError and
// nothing is stored.
func (r *Recorder) Record(ctx context.Context, id string, actions []domain.Action) (*domain.Recording, error) {
	ide := r.newIDE()
	rec := &domain.Recording{
		ID:      id,
		Actions: append([]domain.Action(nil), actions...),
		Frames:  []domain.Frame{{Step: 0, Snapshot: ide.Snapshot()}},
	}

	for i, action := range actions {
		if err := ctx.Err(); err != nil {
			return rec, &domain.ActionError{Index: i, Action: action, Err: err}
		}
		if err := ide.ApplyAction(ctx, action); err != nil {
			if !r.continueOnError {
				return rec, &domain.ActionError{Index: i, Action: action, Err: err}
			}
			r.logger.Warn("skipping rejected action", "recording", id, "index", i, "action", action.Name, "err", err)
			rec.Failures = append(rec.Failures, domain.StepFailure{
				Index:  i,
				Action: action,
				Code:   domain.ErrorCode(err),
				Error:  err.Error(),
			})
			continue
		}

		a := action
		rec.Frames = append(rec.Frames, domain.Frame{
			Step:     len(rec.Frames),
			Action:   &a,
			Snapshot: ide.Snapshot(),
		})
	}

	if r.store != nil {
		if err := r.store.Save(ctx, rec); err != nil {
			return rec, fmt.Errorf("failed to store recording %s: %w", id, err)
		}
	}
	r.logger.Debug("recording complete", "recording", id, "frames", len(rec.Frames), "failures", len(rec.Failures))
	return rec, nil
}

// Load fetches a stored recording.
func (r *Recorder) Load(ctx context.Context, id string) (*domain.Recording, error) {
	if r.store == nil {
		return nil, domain.ErrRecordingNotFound
	}
	return r.store.Load(ctx, id)
}

// Diffs returns, for every frame after the first, what changed since the previous frame.
// Entry i describes the change into frame i+1; nil means the action changed nothing visible.
func Diffs(rec *domain.Recording) []*domain.SnapshotDiff {
	if len(rec.Frames) < 2 {
		return nil
	}
	diffs := make([]*domain.SnapshotDiff, 0, len(rec.Frames)-1)
	for i := 1; i < len(rec.Frames); i++ {
		diffs = append(diffs, domain.Diff(&rec.Frames[i-1].Snapshot, &rec.Frames[i].Snapshot))
	}
	return diffs
}
