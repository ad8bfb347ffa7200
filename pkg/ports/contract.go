package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/virtualide/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunRecordingStoreContract runs a suite of tests to verify that a RecordingStore
// implementation adheres to the defined interface contract.
func RunRecordingStoreContract(t *testing.T, store RecordingStore) {
	ctx := context.Background()
	recID := "contract-test-recording-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		rec := sampleRecording(t, recID)

		err := store.Save(ctx, rec)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, recID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, rec.ID, loaded.ID)
		assert.Equal(t, rec.Actions, loaded.Actions)
		require.Len(t, loaded.Frames, len(rec.Frames))
		assert.Nil(t, loaded.Frames[0].Action, "initial frame carries no action")

		final, ok := loaded.Final()
		require.True(t, ok)
		node, ok := final.Snapshot.File("src/index.js")
		require.True(t, ok, "file tree should survive persistence")
		assert.Equal(t, "console.log(1);", node.Content)
		assert.Equal(t, []string{"src/index.js"}, final.Snapshot.EditorSnapshot.OpenFiles)

		// Tree order is part of the snapshot.
		assert.Equal(t, []string{"src", "README.md"}, final.Snapshot.EditorSnapshot.FileStructure.Names())
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+recID)
		assert.ErrorIs(t, err, domain.ErrRecordingNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		rec := sampleRecording(t, recID)
		require.NoError(t, store.Save(ctx, rec))

		rec.Failures = []domain.StepFailure{{Index: 9, Code: "file_not_found", Error: "boom"}}
		require.NoError(t, store.Save(ctx, rec))

		loaded, err := store.Load(ctx, recID)
		require.NoError(t, err)
		assert.Len(t, loaded.Failures, 1)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sampleRecording(t, recID)))

		err := store.Delete(ctx, recID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, recID)
		assert.ErrorIs(t, err, domain.ErrRecordingNotFound, "Load after Delete should return ErrRecordingNotFound")

		assert.NoError(t, store.Delete(ctx, recID), "Delete of a missing recording is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := recID + "-1"
		id2 := recID + "-2"
		_ = store.Save(ctx, sampleRecording(t, id1))
		_ = store.Save(ctx, sampleRecording(t, id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}

// sampleRecording builds a two-frame recording without going through the engine.
func sampleRecording(t *testing.T, id string) *domain.Recording {
	t.Helper()

	fs := domain.NewFileSystem()
	require.NoError(t, fs.CreateFile("src/index.js"))
	require.NoError(t, fs.CreateFile("README.md"))

	initial := domain.CourseSnapshot{
		EditorSnapshot: domain.EditorSnapshot{FileStructure: fs.Root().Clone()},
		MouseSnapshot:  domain.NewMouse(),
	}

	node, err := fs.File("src/index.js")
	require.NoError(t, err)
	node.Append("console.log(1);")

	action := domain.Action{Name: domain.ActionEditorType, Value: "console.log(1);"}
	final := domain.CourseSnapshot{
		EditorSnapshot: domain.EditorSnapshot{
			FileStructure: fs.Root().Clone(),
			CurrentFile:   "src/index.js",
			OpenFiles:     []string{"src/index.js"},
			Editors: []domain.EditorTab{{
				Path:     "src/index.js",
				Language: "js",
				Content:  node.Content,
				Caret:    node.CaretPosition,
				Unsaved:  true,
				Current:  true,
			}},
			Focus: domain.FocusEditor,
		},
		MouseSnapshot: domain.NewMouse(),
	}

	return &domain.Recording{
		ID:      id,
		Actions: []domain.Action{action},
		Frames: []domain.Frame{
			{Step: 0, Snapshot: initial},
			{Step: 1, Action: &action, Snapshot: final},
		},
	}
}
