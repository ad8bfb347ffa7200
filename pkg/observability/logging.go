package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/virtualide/pkg/domain"
)

// LoggingHooks logs every dispatched action: applied ones at debug level,
// rejected ones at warn level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnActionApplied: func(ctx context.Context, e *domain.ActionEvent) {
			logger.DebugContext(ctx, "action_applied",
				"step", e.Step,
				"action", e.Action.Name,
			)
		},
		OnActionFailed: func(ctx context.Context, e *domain.ActionEvent) {
			logger.WarnContext(ctx, "action_failed",
				"step", e.Step,
				"action", e.Action.Name,
				"code", domain.ErrorCode(e.Err),
				"err", e.Err,
			)
		},
	}
}
