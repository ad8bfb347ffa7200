package runtime

import (
	"fmt"

	"github.com/aretw0/virtualide/pkg/domain"
)

func (e *Engine) applyTerminal(c domain.TerminalCommand) error {
	if e.terminal == nil {
		return fmt.Errorf("%w: terminal", domain.ErrNoCollaborator)
	}
	return e.terminal.ConsumeAction(c)
}

func (e *Engine) applyAuthor(c domain.AuthorCommand) error {
	if e.author == nil {
		return fmt.Errorf("%w: author", domain.ErrNoCollaborator)
	}
	return e.author.ConsumeAction(c)
}
