package memory_test

import (
	"testing"

	"github.com/aretw0/virtualide/pkg/adapters/memory"
	"github.com/aretw0/virtualide/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunRecordingStoreContract(t, store)
}
