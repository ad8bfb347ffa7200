// Package author provides the reference narration collaborator.
package author

import (
	"fmt"
	"slices"

	"github.com/aretw0/virtualide/pkg/domain"
)

// Caption is one narration line together with its timing relative to the
// surrounding actions.
type Caption struct {
	Kind   domain.AuthorKind
	Speech string
}

// VirtualAuthor keeps the latest caption and every caption spoken so far.
type VirtualAuthor struct {
	current string
	spoken  []Caption
}

// New returns an author that has not spoken yet.
func New() *VirtualAuthor {
	return &VirtualAuthor{}
}

// ConsumeAction replaces the current caption.
func (a *VirtualAuthor) ConsumeAction(cmd domain.AuthorCommand) error {
	switch cmd.Kind {
	case domain.AuthorSpeakBefore, domain.AuthorSpeakAfter, domain.AuthorSpeakDuring:
	default:
		return fmt.Errorf("%w: author kind %d", domain.ErrUnrecognizedAction, cmd.Kind)
	}
	a.current = cmd.Speech
	a.spoken = append(a.spoken, Caption{Kind: cmd.Kind, Speech: cmd.Speech})
	return nil
}

// CurrentSpeechCaption returns the most recent caption.
func (a *VirtualAuthor) CurrentSpeechCaption() string {
	return a.current
}

// Captions returns every caption in the order spoken.
func (a *VirtualAuthor) Captions() []Caption {
	return slices.Clone(a.spoken)
}
