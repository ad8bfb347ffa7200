/*
Package ports defines the driven ports (interfaces) around the virtual IDE core.

These interfaces decouple the dispatcher from its collaborators and from the
adapters that persist or transport its output.

# Key Interfaces

  - Terminal, Author: externally owned collaborators that consume the
    terminal-* and author-* subsets of the vocabulary.
  - ActionDispatcher: the IDE as seen by adapters.
  - RecordingStore: persists replayed scripts (memory, file, Redis).
  - ScriptLoader: reads scripts from YAML or JSON sources.
*/
package ports
