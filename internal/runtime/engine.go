package runtime

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/aretw0/virtualide/internal/logging"
	"github.com/aretw0/virtualide/pkg/domain"
	"github.com/aretw0/virtualide/pkg/ports"
)

// State is the part of the IDE the engine owns exclusively.
// Terminal and author state live in their collaborators.
type State struct {
	Files  *domain.FileSystem
	Editor *domain.Editor
	Mouse  domain.Mouse
}

// NewState returns an empty workspace: no files, nothing open, mouse at the origin.
func NewState() *State {
	return &State{
		Files:  domain.NewFileSystem(),
		Editor: domain.NewEditor(),
		Mouse:  domain.NewMouse(),
	}
}

func (s *State) clone() *State {
	return &State{
		Files:  s.Files.Clone(),
		Editor: s.Editor.Clone(),
		Mouse:  s.Mouse,
	}
}

// Engine is the action dispatcher. It is not safe for concurrent use.
type Engine struct {
	state    *State
	steps    int
	terminal ports.Terminal
	author   ports.Author
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger. Applied actions are logged at debug level.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithState starts the engine from an existing state instead of an empty workspace.
// The engine keeps its own copy.
func WithState(s *State) EngineOption {
	return func(e *Engine) {
		if s != nil {
			e.state = s.clone()
		}
	}
}

// NewEngine creates an engine with an empty workspace and no collaborators.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		state:  NewState(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddVirtualTerminal registers the terminal collaborator.
// A second registration fails with domain.ErrDuplicateRegistration.
func (e *Engine) AddVirtualTerminal(t ports.Terminal) error {
	if t == nil {
		return fmt.Errorf("terminal must not be nil")
	}
	if e.terminal != nil {
		return fmt.Errorf("%w: terminal", domain.ErrDuplicateRegistration)
	}
	e.terminal = t
	return nil
}

// ReplaceVirtualTerminal swaps the terminal collaborator. Passing nil unregisters it.
func (e *Engine) ReplaceVirtualTerminal(t ports.Terminal) {
	e.terminal = t
}

// AddVirtualAuthor registers the author collaborator.
// A second registration fails with domain.ErrDuplicateRegistration.
func (e *Engine) AddVirtualAuthor(a ports.Author) error {
	if a == nil {
		return fmt.Errorf("author must not be nil")
	}
	if e.author != nil {
		return fmt.Errorf("%w: author", domain.ErrDuplicateRegistration)
	}
	e.author = a
	return nil
}

// ReplaceVirtualAuthor swaps the author collaborator. Passing nil unregisters it.
func (e *Engine) ReplaceVirtualAuthor(a ports.Author) {
	e.author = a
}

// Steps returns the number of actions applied successfully so far.
func (e *Engine) Steps() int {
	return e.steps
}

// OpenFiles returns the open file paths in first-open order.
func (e *Engine) OpenFiles() []string {
	return slices.Clone(e.state.Editor.OpenFiles)
}

// CurrentFile returns the path of the current file, or "" when none is open.
func (e *Engine) CurrentFile() string {
	return e.state.Editor.CurrentFile
}

// FileContents returns the content of the file at p.
// Missing paths and directories fail with domain.ErrFileNotFound.
func (e *Engine) FileContents(p string) (string, error) {
	clean, err := domain.CleanPath(p)
	if err != nil {
		// An unusable path names no file; both sentinels match.
		return "", fmt.Errorf("%w: %w", domain.ErrFileNotFound, err)
	}
	n, err := e.state.Files.File(clean)
	if err != nil {
		return "", err
	}
	return n.Content, nil
}
