// Package terminal provides the reference in-memory terminal collaborator.
package terminal

import (
	"fmt"
	"slices"

	"github.com/aretw0/virtualide/pkg/domain"
)

// VirtualTerminal holds a single line buffer. Typed text accumulates and
// enter submits the line: it is appended to the history and the buffer is cleared.
// Nothing is ever executed.
type VirtualTerminal struct {
	open    bool
	buffer  string
	history []string
}

// New returns a closed terminal with an empty buffer.
func New() *VirtualTerminal {
	return &VirtualTerminal{}
}

// ConsumeAction applies a terminal command.
func (t *VirtualTerminal) ConsumeAction(cmd domain.TerminalCommand) error {
	switch cmd.Kind {
	case domain.TerminalOpen:
		t.open = true
	case domain.TerminalType:
		t.buffer += cmd.Text
	case domain.TerminalEnter:
		// The buffer is always submitted; a count above one adds empty lines.
		t.history = append(t.history, t.buffer)
		t.buffer = ""
		for i := 1; i < cmd.Count; i++ {
			t.history = append(t.history, "")
		}
	default:
		return fmt.Errorf("%w: terminal kind %d", domain.ErrUnrecognizedAction, cmd.Kind)
	}
	return nil
}

// Contents returns the current buffer.
func (t *VirtualTerminal) Contents() string {
	return t.buffer
}

// IsOpen reports whether terminal-open was received.
func (t *VirtualTerminal) IsOpen() bool {
	return t.open
}

// History returns the submitted lines, oldest first.
func (t *VirtualTerminal) History() []string {
	return slices.Clone(t.history)
}
