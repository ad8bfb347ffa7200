package runtime

import (
	"fmt"
	"strings"

	"github.com/aretw0/virtualide/pkg/domain"
)

func applyEditor(s *State, c domain.EditorCommand) error {
	file, err := currentFile(s)
	if err != nil {
		return err
	}

	switch c.Kind {
	case domain.EditorType:
		file.Append(c.Text)
	case domain.EditorBackspace:
		file.Backspace(c.Count)
	case domain.EditorSave:
		s.Editor.MarkSaved(s.Editor.CurrentFile, file.Content)
	case domain.EditorEnter:
		file.Append(strings.Repeat("\n", c.Count))
	case domain.EditorSpace:
		file.Append(strings.Repeat(" ", c.Count))
	case domain.EditorInsertTab:
		file.Append(strings.Repeat("\t", c.Count))
	default:
		return fmt.Errorf("%w: editor kind %d", domain.ErrUnrecognizedAction, c.Kind)
	}
	return nil
}

// currentFile resolves the editor's current file in the tree.
func currentFile(s *State) (*domain.Node, error) {
	if s.Editor.CurrentFile == "" {
		return nil, domain.ErrNoActiveFile
	}
	return s.Files.File(s.Editor.CurrentFile)
}
