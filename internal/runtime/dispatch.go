package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/virtualide/pkg/domain"
)

// Apply parses and applies a single action.
// The action is all-or-nothing: on error the engine state is unchanged.
func (e *Engine) Apply(ctx context.Context, action domain.Action) error {
	cmd, err := domain.Parse(action)
	if err != nil {
		e.emitFailed(ctx, action, err)
		return err
	}

	next := e.state.clone()
	if err := e.dispatch(next, cmd); err != nil {
		err = fmt.Errorf("%s: %w", action.Name, err)
		e.emitFailed(ctx, action, err)
		return err
	}

	e.state = next
	e.logger.Debug("action applied", "step", e.steps, "action", action.Name)
	e.emitApplied(ctx, action)
	e.steps++
	return nil
}

// ApplyAll applies actions in order and stops at the first failure.
// The returned error is a *domain.ActionError carrying the index within actions.
// Actions before the failing one stay applied.
func (e *Engine) ApplyAll(ctx context.Context, actions []domain.Action) error {
	for i, action := range actions {
		if err := ctx.Err(); err != nil {
			return &domain.ActionError{Index: i, Action: action, Err: err}
		}
		if err := e.Apply(ctx, action); err != nil {
			return &domain.ActionError{Index: i, Action: action, Err: err}
		}
	}
	return nil
}

// dispatch routes a command to the handler of its namespace.
// Handlers mutate next only; collaborators are called last.
func (e *Engine) dispatch(next *State, cmd domain.Command) error {
	switch c := cmd.(type) {
	case domain.FileExplorerCommand:
		return applyFileExplorer(next, c)
	case domain.EditorCommand:
		return applyEditor(next, c)
	case domain.MouseCommand:
		return e.applyMouse(next, c)
	case domain.TerminalCommand:
		return e.applyTerminal(c)
	case domain.AuthorCommand:
		return e.applyAuthor(c)
	default:
		return fmt.Errorf("%w: %T", domain.ErrUnrecognizedAction, cmd)
	}
}

func (e *Engine) emitApplied(ctx context.Context, action domain.Action) {
	if e.hooks.OnActionApplied == nil {
		return
	}
	e.hooks.OnActionApplied(ctx, &domain.ActionEvent{
		Type:      domain.EventActionApplied,
		Step:      e.steps,
		Action:    action,
		Namespace: action.Namespace(),
	})
}

func (e *Engine) emitFailed(ctx context.Context, action domain.Action, err error) {
	e.logger.Debug("action rejected", "step", e.steps, "action", action.Name, "err", err)
	if e.hooks.OnActionFailed == nil {
		return
	}
	e.hooks.OnActionFailed(ctx, &domain.ActionEvent{
		Type:      domain.EventActionFailed,
		Step:      e.steps,
		Action:    action,
		Namespace: action.Namespace(),
		Err:       err,
	})
}
