package domain

import (
	"slices"
)

// FileChangeKind classifies a tree entry change between two snapshots.
type FileChangeKind string

const (
	FileAdded    FileChangeKind = "added"
	FileRemoved  FileChangeKind = "removed"
	FileModified FileChangeKind = "modified"
)

// FileChange is a single changed tree entry.
type FileChange struct {
	Path string         `json:"path"`
	Kind FileChangeKind `json:"kind"`
}

// SnapshotDiff represents the changes between two snapshots.
// It is designed to be serialized to JSON for incremental renderers:
// unchanged parts are nil and omitted.
type SnapshotDiff struct {
	Files            []FileChange `json:"files,omitempty"`
	CurrentFile      *string      `json:"currentFile,omitempty"`
	OpenFiles        []string     `json:"openFiles,omitempty"`
	Focus            *Focus       `json:"focus,omitempty"`
	TerminalContents *string      `json:"terminalContents,omitempty"`
	SpeechCaption    *string      `json:"speechCaption,omitempty"`
	Mouse            *Mouse       `json:"mouse,omitempty"`
}

// Diff calculates the difference between oldSnap and newSnap.
// If oldSnap is nil, it returns a diff representing the entire newSnap.
// It returns nil when nothing changed.
func Diff(oldSnap, newSnap *CourseSnapshot) *SnapshotDiff {
	if newSnap == nil {
		return nil
	}
	ne := newSnap.EditorSnapshot
	currentFile := ne.CurrentFile
	focus := ne.Focus
	terminal := ne.TerminalContents
	caption := newSnap.AuthorSnapshot.CurrentSpeechCaption
	mouse := newSnap.MouseSnapshot
	openFiles := slices.Clone(ne.OpenFiles)
	if openFiles == nil {
		openFiles = []string{}
	}

	// Initial load: everything is a delta.
	if oldSnap == nil {
		return &SnapshotDiff{
			Files:            diffTree(nil, ne.FileStructure),
			CurrentFile:      &currentFile,
			OpenFiles:        openFiles,
			Focus:            &focus,
			TerminalContents: &terminal,
			SpeechCaption:    &caption,
			Mouse:            &mouse,
		}
	}

	oe := oldSnap.EditorSnapshot
	diff := &SnapshotDiff{
		Files: diffTree(oe.FileStructure, ne.FileStructure),
	}
	if oe.CurrentFile != currentFile {
		diff.CurrentFile = &currentFile
	}
	if !slices.Equal(oe.OpenFiles, ne.OpenFiles) {
		diff.OpenFiles = openFiles
	}
	if oe.Focus != focus {
		diff.Focus = &focus
	}
	if oe.TerminalContents != terminal {
		diff.TerminalContents = &terminal
	}
	if oldSnap.AuthorSnapshot.CurrentSpeechCaption != caption {
		diff.SpeechCaption = &caption
	}
	if oldSnap.MouseSnapshot != mouse {
		diff.Mouse = &mouse
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// diffTree lists added, removed and modified entries. Added and modified
// entries follow the order of the new tree, removed ones the old tree.
func diffTree(oldTree, newTree *Tree) []FileChange {
	oldNodes := make(map[string]*Node)
	oldTree.Walk(func(p string, n *Node) {
		oldNodes[p] = n
	})

	var changes []FileChange
	seen := make(map[string]bool)
	newTree.Walk(func(p string, n *Node) {
		seen[p] = true
		prev, ok := oldNodes[p]
		switch {
		case !ok:
			changes = append(changes, FileChange{Path: p, Kind: FileAdded})
		case !sameEntry(prev, n):
			changes = append(changes, FileChange{Path: p, Kind: FileModified})
		}
	})
	oldTree.Walk(func(p string, _ *Node) {
		if !seen[p] {
			changes = append(changes, FileChange{Path: p, Kind: FileRemoved})
		}
	})
	return changes
}

// sameEntry compares the entry itself, not its children.
func sameEntry(a, b *Node) bool {
	return a.Type == b.Type &&
		a.Content == b.Content &&
		a.Language == b.Language &&
		a.CaretPosition == b.CaretPosition &&
		a.CursorPosition == b.CursorPosition &&
		a.Collapsed == b.Collapsed
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SnapshotDiff) IsEmpty() bool {
	return len(d.Files) == 0 &&
		d.CurrentFile == nil &&
		d.OpenFiles == nil &&
		d.Focus == nil &&
		d.TerminalContents == nil &&
		d.SpeechCaption == nil &&
		d.Mouse == nil
}
