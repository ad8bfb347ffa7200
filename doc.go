/*
Package virtualide is a deterministic virtual IDE driven by tutorial scripts.

A script is an ordered list of named actions (create a file, type into the
editor, run a terminal command, narrate). The IDE applies them one at a time to
an in-memory workspace: a file tree, an editor with open files, a mouse, a
terminal and an author. After any prefix of the script, Snapshot returns the
complete state, which renderers use to draw frames of a coding video.

# Concept

Every action is all-or-nothing. A rejected action leaves the IDE exactly as it
was, so a script can be replayed step by step and each snapshot depends only on
the actions before it. There is no clock and no randomness.

The terminal and the author are collaborators injected by the host. NewDefault
registers the reference implementations from pkg/adapters/terminal and
pkg/adapters/author.

# Usage

	ide := virtualide.NewDefault()

	err := ide.ApplyActions(ctx, []domain.Action{
		{Name: domain.ActionCreateFile, Value: "src/hello.js"},
		{Name: domain.ActionOpenFile, Value: "src/hello.js"},
		{Name: domain.ActionEditorType, Value: "console.log('hi');"},
	})
	if err != nil {
		var actionErr *domain.ActionError
		if errors.As(err, &actionErr) {
			log.Printf("action %d failed", actionErr.Index)
		}
	}

	snap := ide.Snapshot()
	fmt.Println(snap.EditorSnapshot.CurrentFile)

# Scripts and Recordings

Scripts are usually kept as YAML or JSON files and read with pkg/adapters/script.
pkg/recorder replays a script into a Recording holding one snapshot per step,
which can be stored in memory, on disk or in Redis.
*/
package virtualide
