package ports

import (
	"context"

	"github.com/aretw0/virtualide/pkg/domain"
)

// ActionDispatcher applies script actions and exposes the resulting IDE state.
// Adapters (HTTP, MCP, recorder) depend on this rather than on the concrete IDE.
type ActionDispatcher interface {
	// ApplyAction applies a single action atomically.
	ApplyAction(ctx context.Context, action domain.Action) error

	// ApplyActions applies actions in order, stopping at the first failure.
	ApplyActions(ctx context.Context, actions []domain.Action) error

	// Snapshot returns a deep copy of the current state.
	Snapshot() domain.CourseSnapshot
}
