package domain

import (
	"maps"
	"slices"
	"unicode/utf8"
)

// Focus names the IDE region that last received a click.
type Focus string

const (
	FocusNone         Focus = ""
	FocusEditor       Focus = "editor"
	FocusTerminal     Focus = "terminal"
	FocusFileExplorer Focus = "file-explorer"
)

// Editor tracks which files are open, which one is current and
// the last saved content of each file.
type Editor struct {
	OpenFiles   []string
	CurrentFile string
	Focus       Focus

	saved map[string]string
}

// NewEditor returns an editor with no open files.
func NewEditor() *Editor {
	return &Editor{saved: make(map[string]string)}
}

// Clone returns a deep copy of the editor.
func (e *Editor) Clone() *Editor {
	c := *e
	c.OpenFiles = slices.Clone(e.OpenFiles)
	c.saved = maps.Clone(e.saved)
	if c.saved == nil {
		c.saved = make(map[string]string)
	}
	return &c
}

// IsOpen reports whether p is in the open-file list.
func (e *Editor) IsOpen(p string) bool {
	return slices.Contains(e.OpenFiles, p)
}

// Open appends p to the open files if absent and makes it current.
func (e *Editor) Open(p string) {
	if !e.IsOpen(p) {
		e.OpenFiles = append(e.OpenFiles, p)
	}
	e.CurrentFile = p
}

// SetCurrent switches the current file without reordering open files.
func (e *Editor) SetCurrent(p string) error {
	if !e.IsOpen(p) {
		return ErrFileNotOpen
	}
	e.CurrentFile = p
	return nil
}

// Close removes p from the open files. When p was current, the most
// recently opened remaining file becomes current.
func (e *Editor) Close(p string) {
	i := slices.Index(e.OpenFiles, p)
	if i < 0 {
		return
	}
	e.OpenFiles = slices.Delete(e.OpenFiles, i, i+1)
	if len(e.OpenFiles) == 0 {
		e.OpenFiles = nil
	}
	delete(e.saved, p)
	if e.CurrentFile == p {
		e.CurrentFile = ""
		if n := len(e.OpenFiles); n > 0 {
			e.CurrentFile = e.OpenFiles[n-1]
		}
	}
}

// MarkSaved records content as the persisted version of p.
func (e *Editor) MarkSaved(p, content string) {
	e.saved[p] = content
}

// Unsaved reports whether content differs from the last saved version of p.
// A file that was never saved counts as saved while empty.
func (e *Editor) Unsaved(p, content string) bool {
	return e.saved[p] != content
}

// Append adds text to the end of a file and moves the caret past it.
func (n *Node) Append(text string) {
	n.Content += text
	n.CaretPosition = caretAtEnd(n.Content)
}

// Backspace removes the last count characters, stopping at empty content.
func (n *Node) Backspace(count int) {
	content := n.Content
	for ; count > 0 && content != ""; count-- {
		_, size := utf8.DecodeLastRuneInString(content)
		content = content[:len(content)-size]
	}
	n.Content = content
	n.CaretPosition = caretAtEnd(n.Content)
}
