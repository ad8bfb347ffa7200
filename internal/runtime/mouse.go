package runtime

import (
	"fmt"

	"github.com/aretw0/virtualide/pkg/domain"
)

func (e *Engine) applyMouse(s *State, c domain.MouseCommand) error {
	switch c.Kind {
	case domain.MouseClickFilename:
		if err := s.Editor.SetCurrent(c.Path); err != nil {
			return fmt.Errorf("%w: %s", err, c.Path)
		}
		s.Editor.Focus = domain.FocusFileExplorer
		s.Mouse.Click()
	case domain.MouseClickEditor:
		file, err := currentFile(s)
		if err != nil {
			return err
		}
		file.CursorPosition = s.Mouse.Position()
		s.Editor.Focus = domain.FocusEditor
		s.Mouse.Click()
	case domain.MouseClickTerminal:
		if e.terminal == nil {
			return fmt.Errorf("%w: terminal", domain.ErrNoCollaborator)
		}
		s.Editor.Focus = domain.FocusTerminal
		s.Mouse.Click()
	case domain.MouseMove:
		s.Mouse.MoveTo(c.Point)
	case domain.MouseScroll:
		s.Mouse.Scroll(c.Point)
	case domain.MousePress:
		s.Mouse.Press(c.Button)
	case domain.MouseRelease:
		s.Mouse.Release(c.Button)
	default:
		return fmt.Errorf("%w: mouse kind %d", domain.ErrUnrecognizedAction, c.Kind)
	}
	return nil
}
