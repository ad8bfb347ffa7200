package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/virtualide/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiles_ImplicitAncestors(t *testing.T) {
	e := newEngine(t)
	mustApply(t, e, act(domain.ActionCreateFile, "a/b/c.txt"))

	snap := e.Snapshot()
	a, ok := snap.EditorSnapshot.FileStructure.Get("a")
	require.True(t, ok)
	assert.True(t, a.IsDir())
	b, ok := a.Children.Get("b")
	require.True(t, ok)
	assert.True(t, b.IsDir())

	c, ok := snap.File("a/b/c.txt")
	require.True(t, ok)
	assert.Equal(t, "", c.Content)
	assert.Equal(t, "txt", c.Language)
}

func TestFiles_OpenOrderIsFirstOpen(t *testing.T) {
	e := newEngine(t)
	mustApply(t, e,
		act(domain.ActionCreateFile, "a.js"),
		act(domain.ActionCreateFile, "b.js"),
		act(domain.ActionOpenFile, "a.js"),
		act(domain.ActionOpenFile, "b.js"),
		act(domain.ActionOpenFile, "a.js"),
	)

	assert.Equal(t, []string{"a.js", "b.js"}, e.OpenFiles())
	assert.Equal(t, "a.js", e.CurrentFile())
}

func TestFiles_OpenMissingFile(t *testing.T) {
	e := newEngine(t)
	mustApply(t, e, act(domain.ActionCreateFolder, "src"))

	err := e.Apply(context.Background(), act(domain.ActionOpenFile, "src/nope.js"))
	assert.ErrorIs(t, err, domain.ErrFileNotFound)

	err = e.Apply(context.Background(), act(domain.ActionOpenFile, "src"))
	assert.ErrorIs(t, err, domain.ErrFileNotFound, "a directory cannot be opened")
	assert.Empty(t, e.OpenFiles())
}

func TestFiles_CreateIsIdempotent(t *testing.T) {
	e := newEngine(t)
	mustApply(t, e,
		act(domain.ActionCreateFile, "main.go"),
		act(domain.ActionOpenFile, "main.go"),
		act(domain.ActionEditorType, "package main"),
		act(domain.ActionCreateFile, "main.go"),
		act(domain.ActionCreateFolder, "cmd"),
		act(domain.ActionCreateFolder, "cmd"),
	)

	content, err := e.FileContents("main.go")
	require.NoError(t, err)
	assert.Equal(t, "package main", content, "re-creating a file keeps its content")
	assert.Equal(t, []string{"main.go", "cmd"}, e.Snapshot().EditorSnapshot.FileStructure.Names())
}

func TestFiles_PathConflicts(t *testing.T) {
	e := newEngine(t)
	mustApply(t, e,
		act(domain.ActionCreateFile, "notes"),
		act(domain.ActionCreateFolder, "docs"),
	)

	for _, a := range []domain.Action{
		act(domain.ActionCreateFolder, "notes"),
		act(domain.ActionCreateFile, "docs"),
		act(domain.ActionCreateFile, "notes/today.md"),
	} {
		err := e.Apply(context.Background(), a)
		assert.ErrorIs(t, err, domain.ErrPathConflict, a.String())
	}
}

func TestFiles_InvalidPaths(t *testing.T) {
	e := newEngine(t)
	for _, p := range []string{"", "   ", "/", "../etc/passwd", "a/./b"} {
		err := e.Apply(context.Background(), act(domain.ActionCreateFile, p))
		assert.ErrorIs(t, err, domain.ErrInvalidPath, "path %q", p)
	}
	assert.Equal(t, 0, e.Snapshot().EditorSnapshot.FileStructure.Len())
}

func TestFiles_DeleteClosesAffectedFiles(t *testing.T) {
	e := newEngine(t)
	mustApply(t, e,
		act(domain.ActionCreateFile, "README.md"),
		act(domain.ActionCreateFile, "src/a.js"),
		act(domain.ActionCreateFile, "src/lib/b.js"),
		act(domain.ActionOpenFile, "README.md"),
		act(domain.ActionOpenFile, "src/a.js"),
		act(domain.ActionOpenFile, "src/lib/b.js"),
	)

	mustApply(t, e, act(domain.ActionDeleteFolder, "src"))

	assert.Equal(t, []string{"README.md"}, e.OpenFiles())
	assert.Equal(t, "README.md", e.CurrentFile())
	assert.Equal(t, []string{"README.md"}, e.Snapshot().EditorSnapshot.FileStructure.Names())

	mustApply(t, e, act(domain.ActionDeleteFile, "README.md"))
	assert.Empty(t, e.OpenFiles())
	assert.Equal(t, "", e.CurrentFile())
}

func TestFiles_DeleteNonCurrentKeepsCurrent(t *testing.T) {
	e := newEngine(t)
	mustApply(t, e,
		act(domain.ActionCreateFile, "a.js"),
		act(domain.ActionCreateFile, "b.js"),
		act(domain.ActionOpenFile, "a.js"),
		act(domain.ActionOpenFile, "b.js"),
		act(domain.ActionDeleteFile, "a.js"),
	)

	assert.Equal(t, []string{"b.js"}, e.OpenFiles())
	assert.Equal(t, "b.js", e.CurrentFile())
}

func TestFiles_DeleteWrongType(t *testing.T) {
	e := newEngine(t)
	mustApply(t, e, act(domain.ActionCreateFile, "src/a.js"))

	assert.ErrorIs(t, e.Apply(context.Background(), act(domain.ActionDeleteFile, "src")), domain.ErrFileNotFound)
	assert.ErrorIs(t, e.Apply(context.Background(), act(domain.ActionDeleteFolder, "src/a.js")), domain.ErrFileNotFound)
	assert.ErrorIs(t, e.Apply(context.Background(), act(domain.ActionDeleteFolder, "lib")), domain.ErrFileNotFound)
}

func TestFiles_ExpandCollapse(t *testing.T) {
	e := newEngine(t)
	mustApply(t, e,
		act(domain.ActionCreateFolder, "src"),
		act(domain.ActionCollapseFolder, "src"),
	)
	src, _ := e.Snapshot().EditorSnapshot.FileStructure.Get("src")
	assert.True(t, src.Collapsed)

	mustApply(t, e, act(domain.ActionExpandFolder, "src"))
	src, _ = e.Snapshot().EditorSnapshot.FileStructure.Get("src")
	assert.False(t, src.Collapsed)

	err := e.Apply(context.Background(), act(domain.ActionCollapseFolder, "lib"))
	assert.ErrorIs(t, err, domain.ErrFileNotFound)
}
