package runtime

import (
	"fmt"

	"github.com/aretw0/virtualide/pkg/domain"
)

func applyFileExplorer(s *State, c domain.FileExplorerCommand) error {
	switch c.Kind {
	case domain.FileCreateFolder:
		return s.Files.CreateFolder(c.Path)
	case domain.FileCreateFile:
		return s.Files.CreateFile(c.Path)
	case domain.FileOpen:
		if _, err := s.Files.File(c.Path); err != nil {
			return err
		}
		s.Editor.Open(c.Path)
		return nil
	case domain.FileDelete:
		return removeNode(s, c.Path, domain.NodeTypeFile)
	case domain.FolderDelete:
		return removeNode(s, c.Path, domain.NodeTypeDirectory)
	case domain.FolderExpand, domain.FolderCollapse:
		dir, err := s.Files.Dir(c.Path)
		if err != nil {
			return err
		}
		dir.Collapsed = c.Kind == domain.FolderCollapse
		return nil
	default:
		return fmt.Errorf("%w: file explorer kind %d", domain.ErrUnrecognizedAction, c.Kind)
	}
}

// removeNode deletes a file or folder and closes every file that went with it.
func removeNode(s *State, p string, want domain.NodeType) error {
	removed, err := s.Files.Remove(p, want)
	if err != nil {
		return err
	}
	for _, f := range removed {
		s.Editor.Close(f)
	}
	return nil
}
