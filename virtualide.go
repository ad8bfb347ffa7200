package virtualide

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/virtualide/internal/runtime"
	"github.com/aretw0/virtualide/pkg/adapters/author"
	"github.com/aretw0/virtualide/pkg/adapters/terminal"
	"github.com/aretw0/virtualide/pkg/domain"
	"github.com/aretw0/virtualide/pkg/ports"
)

// IDE is the high-level entry point for the library.
// It wraps the internal runtime and serialises access to it, so one IDE may be
// shared by several goroutines.
type IDE struct {
	mu      sync.Mutex
	runtime *runtime.Engine
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	Name    string
}

var _ ports.ActionDispatcher = (*IDE)(nil)

// Option defines a functional option for configuring the IDE.
type Option func(*IDE)

// WithLifecycleHooks registers observability hooks.
// Calling it more than once chains the hooks in order.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(ide *IDE) {
		ide.hooks = ide.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the IDE.
func WithLogger(logger *slog.Logger) Option {
	return func(ide *IDE) {
		ide.logger = logger
	}
}

// WithName labels the IDE in logs, e.g. with the script being replayed.
func WithName(name string) Option {
	return func(ide *IDE) {
		ide.Name = name
	}
}

// New initializes an empty IDE without collaborators.
// Terminal and author actions fail until AddVirtualTerminal and AddVirtualAuthor are called.
func New(opts ...Option) *IDE {
	ide := &IDE{}
	for _, opt := range opts {
		opt(ide)
	}

	logger := ide.logger
	if logger != nil && ide.Name != "" {
		logger = logger.With("script", ide.Name)
	}

	ide.runtime = runtime.NewEngine(
		runtime.WithLifecycleHooks(ide.hooks),
		runtime.WithLogger(logger),
	)
	return ide
}

// NewDefault initializes an IDE with the reference terminal and author registered.
func NewDefault(opts ...Option) *IDE {
	ide := New(opts...)
	// Fresh engines have no collaborators, so registration cannot fail.
	_ = ide.runtime.AddVirtualTerminal(terminal.New())
	_ = ide.runtime.AddVirtualAuthor(author.New())
	return ide
}

// AddVirtualTerminal registers the terminal collaborator.
// It fails with domain.ErrDuplicateRegistration if one is already registered.
func (ide *IDE) AddVirtualTerminal(t ports.Terminal) error {
	ide.mu.Lock()
	defer ide.mu.Unlock()
	return ide.runtime.AddVirtualTerminal(t)
}

// ReplaceVirtualTerminal swaps the terminal collaborator.
func (ide *IDE) ReplaceVirtualTerminal(t ports.Terminal) {
	ide.mu.Lock()
	defer ide.mu.Unlock()
	ide.runtime.ReplaceVirtualTerminal(t)
}

// AddVirtualAuthor registers the author collaborator.
// It fails with domain.ErrDuplicateRegistration if one is already registered.
func (ide *IDE) AddVirtualAuthor(a ports.Author) error {
	ide.mu.Lock()
	defer ide.mu.Unlock()
	return ide.runtime.AddVirtualAuthor(a)
}

// ReplaceVirtualAuthor swaps the author collaborator.
func (ide *IDE) ReplaceVirtualAuthor(a ports.Author) {
	ide.mu.Lock()
	defer ide.mu.Unlock()
	ide.runtime.ReplaceVirtualAuthor(a)
}

// ApplyAction applies a single action. On error the IDE is unchanged.
func (ide *IDE) ApplyAction(ctx context.Context, action domain.Action) error {
	ide.mu.Lock()
	defer ide.mu.Unlock()
	return ide.runtime.Apply(ctx, action)
}

// ApplyActions applies actions in order and stops at the first failure,
// returning a *domain.ActionError with the index of the failing action.
func (ide *IDE) ApplyActions(ctx context.Context, actions []domain.Action) error {
	ide.mu.Lock()
	defer ide.mu.Unlock()
	return ide.runtime.ApplyAll(ctx, actions)
}

// Snapshot returns a deep copy of the current course state.
func (ide *IDE) Snapshot() domain.CourseSnapshot {
	ide.mu.Lock()
	defer ide.mu.Unlock()
	return ide.runtime.Snapshot()
}

// OpenFiles returns the open file paths in first-open order.
func (ide *IDE) OpenFiles() []string {
	ide.mu.Lock()
	defer ide.mu.Unlock()
	return ide.runtime.OpenFiles()
}

// FileContents returns the content of the file at path.
func (ide *IDE) FileContents(path string) (string, error) {
	ide.mu.Lock()
	defer ide.mu.Unlock()
	return ide.runtime.FileContents(path)
}

// Steps returns the number of actions applied so far.
func (ide *IDE) Steps() int {
	ide.mu.Lock()
	defer ide.mu.Unlock()
	return ide.runtime.Steps()
}
