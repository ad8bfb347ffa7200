package recorder_test

import (
	"context"
	"testing"

	"github.com/aretw0/virtualide/pkg/adapters/memory"
	"github.com/aretw0/virtualide/pkg/domain"
	"github.com/aretw0/virtualide/pkg/recorder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func script() []domain.Action {
	return []domain.Action{
		{Name: domain.ActionCreateFile, Value: "a.js"},
		{Name: domain.ActionOpenFile, Value: "a.js"},
		{Name: domain.ActionEditorType, Value: "let x;"},
		{Name: domain.ActionEditorSave, Value: "1"},
	}
}

func TestRecord_FramePerAction(t *testing.T) {
	store := memory.NewStore()
	r := recorder.New(recorder.WithStore(store))

	rec, err := r.Record(context.Background(), "demo", script())
	require.NoError(t, err)
	require.Len(t, rec.Frames, 5)

	first := rec.Frames[0]
	assert.Nil(t, first.Action)
	assert.Equal(t, 0, first.Snapshot.EditorSnapshot.FileStructure.Len())

	for i, f := range rec.Frames[1:] {
		assert.Equal(t, i+1, f.Step)
		assert.Equal(t, script()[i], *f.Action)
	}

	final, ok := rec.Final()
	require.True(t, ok)
	node, ok := final.Snapshot.File("a.js")
	require.True(t, ok)
	assert.Equal(t, "let x;", node.Content)

	// Earlier frames are not affected by later actions.
	node, ok = rec.Frames[2].Snapshot.File("a.js")
	require.True(t, ok)
	assert.Equal(t, "", node.Content)

	stored, err := r.Load(context.Background(), "demo")
	require.NoError(t, err)
	assert.Equal(t, rec.Frames[4].Snapshot.EditorSnapshot.OpenFiles, stored.Frames[4].Snapshot.EditorSnapshot.OpenFiles)
}

func TestRecord_StopsOnError(t *testing.T) {
	store := memory.NewStore()
	r := recorder.New(recorder.WithStore(store))

	actions := append([]domain.Action{{Name: domain.ActionEditorType, Value: "too early"}}, script()...)
	rec, err := r.Record(context.Background(), "broken", actions)

	var actionErr *domain.ActionError
	require.ErrorAs(t, err, &actionErr)
	assert.Equal(t, 0, actionErr.Index)
	assert.ErrorIs(t, err, domain.ErrNoActiveFile)
	assert.Len(t, rec.Frames, 1)

	_, err = store.Load(context.Background(), "broken")
	assert.ErrorIs(t, err, domain.ErrRecordingNotFound, "failed recordings are not stored")
}

func TestRecord_ContinueOnError(t *testing.T) {
	r := recorder.New(recorder.ContinueOnError())

	actions := append([]domain.Action{{Name: domain.ActionEditorType, Value: "too early"}}, script()...)
	rec, err := r.Record(context.Background(), "lenient", actions)
	require.NoError(t, err)

	assert.Len(t, rec.Frames, 5)
	require.Len(t, rec.Failures, 1)
	assert.Equal(t, 0, rec.Failures[0].Index)
	assert.Equal(t, "no_active_file", rec.Failures[0].Code)
	assert.Equal(t, domain.ActionCreateFile, rec.Frames[1].Action.Name)
}

func TestRecord_LoadWithoutStore(t *testing.T) {
	_, err := recorder.New().Load(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrRecordingNotFound)
}

func TestDiffs(t *testing.T) {
	rec, err := recorder.New().Record(context.Background(), "d", script())
	require.NoError(t, err)

	diffs := recorder.Diffs(rec)
	require.Len(t, diffs, 4)

	require.NotNil(t, diffs[0])
	assert.Equal(t, []domain.FileChange{{Path: "a.js", Kind: domain.FileAdded}}, diffs[0].Files)

	require.NotNil(t, diffs[1])
	assert.Equal(t, []string{"a.js"}, diffs[1].OpenFiles)
	require.NotNil(t, diffs[1].CurrentFile)
	assert.Equal(t, "a.js", *diffs[1].CurrentFile)

	require.NotNil(t, diffs[2])
	assert.Equal(t, []domain.FileChange{{Path: "a.js", Kind: domain.FileModified}}, diffs[2].Files)

	assert.Nil(t, diffs[3], "save only flips the unsaved flag, which diffs do not track")
}
