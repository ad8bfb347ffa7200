package domain

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Command is a parsed Action. The set of implementations is closed:
// FileExplorerCommand, EditorCommand, TerminalCommand, MouseCommand and
// AuthorCommand. Handlers switch on the concrete type.
type Command interface {
	// Source returns the action the command was parsed from.
	Source() Action
	isCommand()
}

// FileExplorerKind enumerates file-explorer-* actions.
type FileExplorerKind int

const (
	FileCreateFolder FileExplorerKind = iota + 1
	FileCreateFile
	FileOpen
	FileDelete
	FolderDelete
	FolderExpand
	FolderCollapse
)

// FileExplorerCommand mutates the file tree or the open-file list.
type FileExplorerCommand struct {
	Kind   FileExplorerKind
	Path   string
	action Action
}

// EditorKind enumerates editor-* actions.
type EditorKind int

const (
	EditorType EditorKind = iota + 1
	EditorBackspace
	EditorSave
	EditorEnter
	EditorSpace
	EditorInsertTab
)

// EditorCommand mutates the buffer of the current file.
// Text is set for EditorType, Count for the counted kinds.
type EditorCommand struct {
	Kind   EditorKind
	Text   string
	Count  int
	action Action
}

// TerminalKind enumerates terminal-* actions.
type TerminalKind int

const (
	TerminalOpen TerminalKind = iota + 1
	TerminalType
	TerminalEnter
)

// TerminalCommand is consumed by the registered terminal.
type TerminalCommand struct {
	Kind   TerminalKind
	Text   string
	Count  int
	action Action
}

// MouseKind enumerates mouse-* actions.
type MouseKind int

const (
	MouseClickFilename MouseKind = iota + 1
	MouseClickEditor
	MouseClickTerminal
	MouseMove
	MouseScroll
	MousePress
	MouseRelease
)

// MouseCommand updates the pointer and, for clicks, the editor focus.
type MouseCommand struct {
	Kind   MouseKind
	Path   string      // MouseClickFilename
	Point  Point       // MouseMove position, MouseScroll delta
	Button MouseButton // MousePress, MouseRelease
	action Action
}

// AuthorKind enumerates author-* actions.
type AuthorKind int

const (
	AuthorSpeakBefore AuthorKind = iota + 1
	AuthorSpeakAfter
	AuthorSpeakDuring
)

// AuthorCommand is consumed by the registered author.
type AuthorCommand struct {
	Kind   AuthorKind
	Speech string
	action Action
}

func (c FileExplorerCommand) Source() Action { return c.action }
func (c EditorCommand) Source() Action       { return c.action }
func (c TerminalCommand) Source() Action     { return c.action }
func (c MouseCommand) Source() Action        { return c.action }
func (c AuthorCommand) Source() Action       { return c.action }

func (FileExplorerCommand) isCommand() {}
func (EditorCommand) isCommand()       {}
func (TerminalCommand) isCommand()     {}
func (MouseCommand) isCommand()        {}
func (AuthorCommand) isCommand()       {}

type parseFunc func(Action) (Command, error)

var parsers = map[string]parseFunc{
	ActionCreateFolder:   fileExplorer(FileCreateFolder),
	ActionCreateFile:     fileExplorer(FileCreateFile),
	ActionOpenFile:       fileExplorer(FileOpen),
	ActionDeleteFile:     fileExplorer(FileDelete),
	ActionDeleteFolder:   fileExplorer(FolderDelete),
	ActionExpandFolder:   fileExplorer(FolderExpand),
	ActionCollapseFolder: fileExplorer(FolderCollapse),

	ActionEditorType: func(a Action) (Command, error) {
		return EditorCommand{Kind: EditorType, Text: a.Value, action: a}, nil
	},
	ActionEditorBackspace: func(a Action) (Command, error) {
		n, err := parseClampedCount(a)
		if err != nil {
			return nil, err
		}
		return EditorCommand{Kind: EditorBackspace, Count: n, action: a}, nil
	},
	ActionEditorSave:      editorCounted(EditorSave),
	ActionEditorEnter:     editorCounted(EditorEnter),
	ActionEditorSpace:     editorCounted(EditorSpace),
	ActionEditorTab:       editorCounted(EditorInsertTab),

	ActionTerminalOpen: terminalCounted(TerminalOpen),
	ActionTerminalType: func(a Action) (Command, error) {
		return TerminalCommand{Kind: TerminalType, Text: a.Value, action: a}, nil
	},
	ActionTerminalEnter: terminalCounted(TerminalEnter),

	ActionClickFilename: func(a Action) (Command, error) {
		p, err := CleanPath(a.Value)
		if err != nil {
			return nil, err
		}
		return MouseCommand{Kind: MouseClickFilename, Path: p, action: a}, nil
	},
	ActionClickEditor:   mouseCounted(MouseClickEditor),
	ActionClickTerminal: mouseCounted(MouseClickTerminal),
	ActionMouseMove:     mousePoint(MouseMove),
	ActionMouseScroll:   mousePoint(MouseScroll),
	ActionMousePress:    mouseButton(MousePress),
	ActionMouseRelease:  mouseButton(MouseRelease),

	ActionSpeakBefore: author(AuthorSpeakBefore),
	ActionSpeakAfter:  author(AuthorSpeakAfter),
	ActionSpeakDuring: author(AuthorSpeakDuring),
}

// Parse validates an action and decodes its payload into a typed Command.
// It fails with ErrUnrecognizedAction for names outside the vocabulary and
// with ErrInvalidPayload (or ErrInvalidPath) for malformed values.
func Parse(a Action) (Command, error) {
	parse, ok := parsers[a.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnrecognizedAction, a.Name)
	}
	return parse(a)
}

// Vocabulary returns every recognized action name.
func Vocabulary() []string {
	names := make([]string, 0, len(parsers))
	for name := range parsers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func fileExplorer(kind FileExplorerKind) parseFunc {
	return func(a Action) (Command, error) {
		p, err := CleanPath(a.Value)
		if err != nil {
			return nil, err
		}
		return FileExplorerCommand{Kind: kind, Path: p, action: a}, nil
	}
}

func editorCounted(kind EditorKind) parseFunc {
	return func(a Action) (Command, error) {
		n, err := parseCount(a)
		if err != nil {
			return nil, err
		}
		return EditorCommand{Kind: kind, Count: n, action: a}, nil
	}
}

func terminalCounted(kind TerminalKind) parseFunc {
	return func(a Action) (Command, error) {
		n, err := parseCount(a)
		if err != nil {
			return nil, err
		}
		return TerminalCommand{Kind: kind, Count: n, action: a}, nil
	}
}

func mouseCounted(kind MouseKind) parseFunc {
	return func(a Action) (Command, error) {
		if _, err := parseCount(a); err != nil {
			return nil, err
		}
		return MouseCommand{Kind: kind, action: a}, nil
	}
}

func mousePoint(kind MouseKind) parseFunc {
	return func(a Action) (Command, error) {
		x, y, ok := strings.Cut(a.Value, ",")
		if !ok {
			return nil, fmt.Errorf("%w: %s expects \"x,y\", got %q", ErrInvalidPayload, a.Name, a.Value)
		}
		px, errX := strconv.ParseFloat(strings.TrimSpace(x), 64)
		py, errY := strconv.ParseFloat(strings.TrimSpace(y), 64)
		if errX != nil || errY != nil {
			return nil, fmt.Errorf("%w: %s expects numeric coordinates, got %q", ErrInvalidPayload, a.Name, a.Value)
		}
		return MouseCommand{Kind: kind, Point: Point{X: px, Y: py}, action: a}, nil
	}
}

func mouseButton(kind MouseKind) parseFunc {
	return func(a Action) (Command, error) {
		b := MouseButton(strings.ToLower(strings.TrimSpace(a.Value)))
		switch b {
		case ButtonLeft, ButtonRight, ButtonMiddle:
		default:
			return nil, fmt.Errorf("%w: unknown mouse button %q", ErrInvalidPayload, a.Value)
		}
		return MouseCommand{Kind: kind, Button: b, action: a}, nil
	}
}

func author(kind AuthorKind) parseFunc {
	return func(a Action) (Command, error) {
		return AuthorCommand{Kind: kind, Speech: a.Value, action: a}, nil
	}
}

// parseCount reads a non-negative repeat count. An empty value means 1.
func parseCount(a Action) (int, error) {
	v := strings.TrimSpace(a.Value)
	if v == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s expects a non-negative count, got %q", ErrInvalidPayload, a.Name, a.Value)
	}
	return n, nil
}

// parseClampedCount is parseCount for removals: counts past the int range
// still just exhaust the buffer, so they clamp to math.MaxInt.
func parseClampedCount(a Action) (int, error) {
	n, err := parseCount(a)
	if err != nil && isDigits(strings.TrimSpace(a.Value)) {
		return math.MaxInt, nil
	}
	return n, err
}

func isDigits(s string) bool {
	s = strings.TrimPrefix(s, "+")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
