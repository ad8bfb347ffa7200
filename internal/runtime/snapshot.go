package runtime

import (
	"slices"

	"github.com/aretw0/virtualide/pkg/domain"
)

// Snapshot assembles a deep copy of the whole IDE state.
// Mutating the result never affects the engine.
func (e *Engine) Snapshot() domain.CourseSnapshot {
	ed := e.state.Editor
	snap := domain.CourseSnapshot{
		EditorSnapshot: domain.EditorSnapshot{
			FileStructure: e.state.Files.Root().Clone(),
			CurrentFile:   ed.CurrentFile,
			OpenFiles:     slices.Clone(ed.OpenFiles),
			Focus:         ed.Focus,
		},
		MouseSnapshot: e.state.Mouse,
	}

	for _, p := range ed.OpenFiles {
		n, err := e.state.Files.File(p)
		if err != nil {
			continue
		}
		snap.EditorSnapshot.Editors = append(snap.EditorSnapshot.Editors, domain.EditorTab{
			Path:     p,
			Language: n.Language,
			Content:  n.Content,
			Caret:    n.CaretPosition,
			Unsaved:  ed.Unsaved(p, n.Content),
			Current:  p == ed.CurrentFile,
		})
	}

	if e.terminal != nil {
		snap.EditorSnapshot.TerminalContents = e.terminal.Contents()
	}
	if e.author != nil {
		snap.AuthorSnapshot.CurrentSpeechCaption = e.author.CurrentSpeechCaption()
	}
	return snap
}
