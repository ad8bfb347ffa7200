package domain

import (
	"context"
)

// EventType defines the category of the event.
type EventType string

const (
	EventActionApplied EventType = "action_applied"
	EventActionFailed  EventType = "action_failed"
)

// ActionEvent describes one dispatched action.
// Step is the number of actions applied before this one.
type ActionEvent struct {
	Type      EventType `json:"type"`
	Step      int       `json:"step"`
	Action    Action    `json:"action"`
	Namespace string    `json:"namespace,omitempty"`
	Err       error     `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks observe; they never influence dispatch.
type LifecycleHooks struct {
	OnActionApplied func(context.Context, *ActionEvent)
	OnActionFailed  func(context.Context, *ActionEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnActionApplied: chain(h.OnActionApplied, other.OnActionApplied),
		OnActionFailed:  chain(h.OnActionFailed, other.OnActionFailed),
	}
}

func chain(a, b func(context.Context, *ActionEvent)) func(context.Context, *ActionEvent) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *ActionEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
