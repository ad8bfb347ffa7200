package ports

import "github.com/aretw0/virtualide/pkg/domain"

// ScriptLoader defines how tutorial scripts are read.
// This allows the source (file, embedded data, network) to be decoupled.
type ScriptLoader interface {
	// Load reads the ordered action list identified by source.
	Load(source string) ([]domain.Action, error)
}
