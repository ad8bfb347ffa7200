package memory

import (
	"fmt"
	"slices"
	"sort"

	"github.com/aretw0/virtualide/pkg/domain"
)

// Loader implements ports.ScriptLoader using an in-memory map of named scripts.
type Loader struct {
	scripts map[string][]domain.Action
}

// NewLoader creates a Loader serving the given scripts by name.
func NewLoader(scripts map[string][]domain.Action) *Loader {
	l := &Loader{scripts: make(map[string][]domain.Action, len(scripts))}
	for name, actions := range scripts {
		l.scripts[name] = slices.Clone(actions)
	}
	return l
}

// Load returns a copy of the named script.
func (l *Loader) Load(name string) ([]domain.Action, error) {
	actions, ok := l.scripts[name]
	if !ok {
		return nil, fmt.Errorf("script not found: %s", name)
	}
	return slices.Clone(actions), nil
}

// List returns all script names.
func (l *Loader) List() []string {
	names := make([]string, 0, len(l.scripts))
	for name := range l.scripts {
		names = append(names, name)
	}
	sort.Strings(names) // Deterministic order
	return names
}
