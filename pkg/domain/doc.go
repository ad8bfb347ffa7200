/*
Package domain contains the core domain models of the virtual IDE.

It defines the action vocabulary, the typed commands actions parse into, and
the state owned by the dispatcher: the file tree, the editor and the pointer.
This package is kept pure and free of external dependencies like I/O or
persistence, following Hexagonal Architecture principles.

# Key Entities

  - Action: a named script instruction with a single string payload.
  - Command: the parsed, namespaced form of an Action (file explorer, editor,
    terminal, mouse, author).
  - FileSystem / Tree / Node: the ordered virtual file tree.
  - Editor: open files, current file and focus.
  - Mouse: pointer position, buttons and scroll offset on a logical clock.
  - CourseSnapshot: an immutable readout of everything above plus the
    collaborators' terminal buffer and caption.
  - Recording: the frame-by-frame replay of a script.
*/
package domain
