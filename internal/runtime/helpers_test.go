package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/virtualide/internal/runtime"
	"github.com/aretw0/virtualide/pkg/adapters/author"
	"github.com/aretw0/virtualide/pkg/adapters/terminal"
	"github.com/aretw0/virtualide/pkg/domain"
	"github.com/stretchr/testify/require"
)

// newEngine returns an engine with the reference terminal and author registered.
func newEngine(t *testing.T, opts ...runtime.EngineOption) *runtime.Engine {
	t.Helper()
	e := runtime.NewEngine(opts...)
	require.NoError(t, e.AddVirtualTerminal(terminal.New()))
	require.NoError(t, e.AddVirtualAuthor(author.New()))
	return e
}

func act(name, value string) domain.Action {
	return domain.Action{Name: name, Value: value}
}

func mustApply(t *testing.T, e *runtime.Engine, actions ...domain.Action) {
	t.Helper()
	require.NoError(t, e.ApplyAll(context.Background(), actions))
}
