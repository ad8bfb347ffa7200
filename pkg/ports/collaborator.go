package ports

import "github.com/aretw0/virtualide/pkg/domain"

// Terminal is the external collaborator consuming terminal-* actions.
// It owns a single text buffer.
//
// ConsumeAction must be all-or-nothing: when it returns an error the
// terminal state is unchanged.
type Terminal interface {
	ConsumeAction(cmd domain.TerminalCommand) error
	Contents() string
}

// Author is the external collaborator consuming author-* actions.
// It owns the current narration caption.
//
// ConsumeAction must be all-or-nothing: when it returns an error the
// caption is unchanged.
type Author interface {
	ConsumeAction(cmd domain.AuthorCommand) error
	CurrentSpeechCaption() string
}
