package dsl

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/aretw0/virtualide/pkg/adapters/memory"
	"github.com/aretw0/virtualide/pkg/adapters/script"
	"github.com/aretw0/virtualide/pkg/domain"
)

// Builder accumulates the actions of one script.
type Builder struct {
	name        string
	description string
	actions     []domain.Action
}

// New creates a new script builder.
func New(name string) *Builder {
	return &Builder{name: name}
}

// Describe sets the script description.
func (b *Builder) Describe(text string) *Builder {
	b.description = text
	return b
}

// Do appends a raw action. Prefer the typed helpers below.
func (b *Builder) Do(name, value string) *Builder {
	b.actions = append(b.actions, domain.Action{Name: name, Value: value})
	return b
}

func (b *Builder) count(name string, n int) *Builder {
	return b.Do(name, strconv.Itoa(n))
}

// Say narrates before the next step.
func (b *Builder) Say(speech string) *Builder {
	return b.Do(domain.ActionSpeakBefore, speech)
}

// SayDuring narrates over the current step.
func (b *Builder) SayDuring(speech string) *Builder {
	return b.Do(domain.ActionSpeakDuring, speech)
}

// SayAfter narrates after the previous step.
func (b *Builder) SayAfter(speech string) *Builder {
	return b.Do(domain.ActionSpeakAfter, speech)
}

// CreateFolder adds a file-explorer-create-folder action.
func (b *Builder) CreateFolder(path string) *Builder {
	return b.Do(domain.ActionCreateFolder, path)
}

// CreateFile adds a file-explorer-create-file action.
func (b *Builder) CreateFile(path string) *Builder {
	return b.Do(domain.ActionCreateFile, path)
}

// OpenFile adds a file-explorer-open-file action.
func (b *Builder) OpenFile(path string) *Builder {
	return b.Do(domain.ActionOpenFile, path)
}

// DeleteFile adds a file-explorer-delete-file action.
func (b *Builder) DeleteFile(path string) *Builder {
	return b.Do(domain.ActionDeleteFile, path)
}

// DeleteFolder adds a file-explorer-delete-folder action.
func (b *Builder) DeleteFolder(path string) *Builder {
	return b.Do(domain.ActionDeleteFolder, path)
}

// ClickFilename switches to an already open file.
func (b *Builder) ClickFilename(path string) *Builder {
	return b.Do(domain.ActionClickFilename, path)
}

// ClickEditor focuses the editor.
func (b *Builder) ClickEditor() *Builder {
	return b.count(domain.ActionClickEditor, 1)
}

// ClickTerminal focuses the terminal.
func (b *Builder) ClickTerminal() *Builder {
	return b.count(domain.ActionClickTerminal, 1)
}

// MoveMouse moves the pointer to (x, y).
func (b *Builder) MoveMouse(x, y float64) *Builder {
	return b.Do(domain.ActionMouseMove, fmt.Sprintf("%g,%g", x, y))
}

// Type appends text to the current file.
func (b *Builder) Type(text string) *Builder {
	return b.Do(domain.ActionEditorType, text)
}

// Backspace deletes the last n characters of the current file.
func (b *Builder) Backspace(n int) *Builder {
	return b.count(domain.ActionEditorBackspace, n)
}

// Enter appends n newlines to the current file.
func (b *Builder) Enter(n int) *Builder {
	return b.count(domain.ActionEditorEnter, n)
}

// Save saves the current file.
func (b *Builder) Save() *Builder {
	return b.count(domain.ActionEditorSave, 1)
}

// OpenTerminal adds a terminal-open action.
func (b *Builder) OpenTerminal() *Builder {
	return b.count(domain.ActionTerminalOpen, 1)
}

// Run types a command into the terminal and submits it.
func (b *Builder) Run(command string) *Builder {
	return b.Do(domain.ActionTerminalType, command).count(domain.ActionTerminalEnter, 1)
}

// TypeInTerminal types without submitting.
func (b *Builder) TypeInTerminal(text string) *Builder {
	return b.Do(domain.ActionTerminalType, text)
}

// Edit creates and opens path, then returns a builder scoped to it.
func (b *Builder) Edit(path string) *FileBuilder {
	b.CreateFile(path).OpenFile(path).ClickEditor()
	return &FileBuilder{path: path, builder: b}
}

// Actions returns a copy of the actions built so far.
func (b *Builder) Actions() []domain.Action {
	return slices.Clone(b.actions)
}

// Script returns the built script.
func (b *Builder) Script() *script.Script {
	actions := b.Actions()
	if actions == nil {
		actions = []domain.Action{}
	}
	return &script.Script{
		Name:        b.name,
		Description: b.description,
		Actions:     actions,
	}
}

// Build validates the script and compiles it into a MemoryLoader serving it by name.
func (b *Builder) Build() (*memory.Loader, error) {
	if b.name == "" {
		return nil, fmt.Errorf("script missing name")
	}
	if err := script.Validate(b.actions); err != nil {
		return nil, fmt.Errorf("invalid script %s: %w", b.name, err)
	}
	return memory.NewLoader(map[string][]domain.Action{b.name: b.actions}), nil
}
