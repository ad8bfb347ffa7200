package domain

import "strings"

// Action is a single named instruction of a tutorial script.
// Name is drawn from the closed vocabulary below; Value carries the
// action-specific payload (a path, literal text, a count or a caption).
type Action struct {
	Name  string `json:"name" yaml:"name" mapstructure:"name"`
	Value string `json:"value" yaml:"value" mapstructure:"value"`
}

// Namespace prefixes group the vocabulary by owning model.
const (
	NamespaceFileExplorer = "file-explorer"
	NamespaceEditor       = "editor"
	NamespaceTerminal     = "terminal"
	NamespaceMouse        = "mouse"
	NamespaceAuthor       = "author"
)

// File explorer actions. Payload: a slash-delimited path.
const (
	ActionCreateFolder   = "file-explorer-create-folder"
	ActionCreateFile     = "file-explorer-create-file"
	ActionOpenFile       = "file-explorer-open-file"
	ActionDeleteFile     = "file-explorer-delete-file"
	ActionDeleteFolder   = "file-explorer-delete-folder"
	ActionExpandFolder   = "file-explorer-expand-folder"
	ActionCollapseFolder = "file-explorer-collapse-folder"
)

// Editor actions.
const (
	// ActionEditorType appends the payload verbatim to the current file.
	ActionEditorType = "editor-type"
	// ActionEditorBackspace removes the last N characters. Payload: count.
	ActionEditorBackspace = "editor-backspace"
	// ActionEditorSave marks a checkpoint. Payload: repeat count (ignored).
	ActionEditorSave = "editor-save"
	// ActionEditorEnter, ActionEditorSpace and ActionEditorTab append N
	// newlines, spaces or tabs. Payload: count (default 1).
	ActionEditorEnter = "editor-enter"
	ActionEditorSpace = "editor-space"
	ActionEditorTab   = "editor-tab"
)

// Terminal actions, forwarded to the registered terminal.
const (
	ActionTerminalOpen  = "terminal-open"
	ActionTerminalType  = "terminal-type"
	ActionTerminalEnter = "terminal-enter"
)

// Mouse actions.
const (
	ActionClickFilename = "mouse-click-filename"
	ActionClickEditor   = "mouse-click-editor"
	ActionClickTerminal = "mouse-click-terminal"
	// ActionMouseMove payload: "x,y".
	ActionMouseMove = "mouse-move"
	// ActionMouseScroll payload: "dx,dy".
	ActionMouseScroll = "mouse-scroll"
	// ActionMousePress and ActionMouseRelease payload: left, right or middle.
	ActionMousePress   = "mouse-press"
	ActionMouseRelease = "mouse-release"
)

// Author actions, forwarded to the registered author.
const (
	ActionSpeakBefore = "author-speak-before"
	ActionSpeakAfter  = "author-speak-after"
	ActionSpeakDuring = "author-speak-during"
)

// Namespace returns the vocabulary namespace of the action name,
// or "" when the name carries no known prefix.
func (a Action) Namespace() string {
	for _, ns := range []string{NamespaceFileExplorer, NamespaceEditor, NamespaceTerminal, NamespaceMouse, NamespaceAuthor} {
		if strings.HasPrefix(a.Name, ns+"-") {
			return ns
		}
	}
	return ""
}

func (a Action) String() string {
	return a.Name + "(" + a.Value + ")"
}
