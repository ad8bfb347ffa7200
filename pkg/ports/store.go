package ports

import (
	"context"

	"github.com/aretw0/virtualide/pkg/domain"
)

// RecordingStore defines the interface for persisting replayed scripts.
// Snapshots are in-memory values; stores own their serialized form.
type RecordingStore interface {
	// Save persists the recording under rec.ID, replacing any previous one.
	Save(ctx context.Context, rec *domain.Recording) error

	// Load retrieves a recording by ID.
	// Returns domain.ErrRecordingNotFound if the recording does not exist.
	Load(ctx context.Context, id string) (*domain.Recording, error)

	// Delete removes the recording. Deleting a missing recording is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of stored recordings.
	List(ctx context.Context) ([]string, error)
}
