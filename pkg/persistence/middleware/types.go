package middleware

import "github.com/aretw0/virtualide/pkg/ports"

// Middleware allows wrapping a RecordingStore to add behavior.
type Middleware func(ports.RecordingStore) ports.RecordingStore

// Chain applies mws to store. The first middleware is the outermost.
func Chain(store ports.RecordingStore, mws ...Middleware) ports.RecordingStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
