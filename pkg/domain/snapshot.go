package domain

import "slices"

// CourseSnapshot is a point-in-time readout of the whole IDE.
// It never aliases live engine state.
type CourseSnapshot struct {
	EditorSnapshot EditorSnapshot `json:"editorSnapshot"`
	MouseSnapshot  Mouse          `json:"mouseSnapshot"`
	AuthorSnapshot AuthorSnapshot `json:"authorSnapshot"`
}

// EditorSnapshot covers the file tree, the editor tabs and the terminal.
type EditorSnapshot struct {
	FileStructure    *Tree       `json:"fileStructure"`
	CurrentFile      string      `json:"currentFile"`
	OpenFiles        []string    `json:"openFiles"`
	Editors          []EditorTab `json:"editors"`
	Focus            Focus       `json:"focus,omitempty"`
	TerminalContents string      `json:"terminalContents"`
}

// EditorTab describes one open file, in open order.
type EditorTab struct {
	Path     string   `json:"path"`
	Language string   `json:"language,omitempty"`
	Content  string   `json:"content"`
	Caret    Position `json:"caretPosition"`
	Unsaved  bool     `json:"unsaved"`
	Current  bool     `json:"current"`
}

// AuthorSnapshot holds the narration state.
type AuthorSnapshot struct {
	CurrentSpeechCaption string `json:"currentSpeechCaption"`
}

// Clone returns a deep copy of the snapshot.
func (s CourseSnapshot) Clone() CourseSnapshot {
	c := s
	c.EditorSnapshot.FileStructure = s.EditorSnapshot.FileStructure.Clone()
	c.EditorSnapshot.OpenFiles = slices.Clone(s.EditorSnapshot.OpenFiles)
	c.EditorSnapshot.Editors = slices.Clone(s.EditorSnapshot.Editors)
	return c
}

// File returns the file node at p within the snapshot's tree.
func (s CourseSnapshot) File(p string) (*Node, bool) {
	fs := FileSystem{root: s.EditorSnapshot.FileStructure}
	if fs.root == nil {
		return nil, false
	}
	n, err := fs.File(p)
	if err != nil {
		return nil, false
	}
	return n, true
}
