package cli

import (
	"log/slog"

	"github.com/aretw0/virtualide"
	"github.com/aretw0/virtualide/pkg/observability"
)

// NewIDEFactory returns the IDE constructor shared by every command: the
// reference collaborators, logging hooks and metrics when given.
func NewIDEFactory(logger *slog.Logger, metrics *observability.Metrics) func() *virtualide.IDE {
	opts := []virtualide.Option{
		virtualide.WithLifecycleHooks(observability.LoggingHooks(logger)),
	}
	if metrics != nil {
		opts = append(opts, virtualide.WithLifecycleHooks(metrics.Hooks()))
	}
	return func() *virtualide.IDE {
		return virtualide.NewDefault(opts...)
	}
}
