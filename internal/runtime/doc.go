// Package runtime contains the action dispatcher behind the virtual IDE.
//
// The Engine owns the file tree, the editor and the mouse. Every action is
// parsed into a typed command, applied to a clone of that state and committed
// only when the handler succeeds. Terminal and author actions are forwarded to
// the registered collaborators.
package runtime
