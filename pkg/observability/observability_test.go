package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/virtualide"
	"github.com/aretw0/virtualide/pkg/domain"
	"github.com/aretw0/virtualide/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountsActions(t *testing.T) {
	m := observability.NewMetrics("virtualide")
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))

	ide := virtualide.NewDefault(virtualide.WithLifecycleHooks(m.Hooks()))
	ctx := context.Background()

	_ = ide.ApplyActions(ctx, []domain.Action{
		{Name: domain.ActionCreateFile, Value: "a.js"},
		{Name: domain.ActionCreateFile, Value: "b.js"},
		{Name: domain.ActionSpeakBefore, Value: "hi"},
	})
	_ = ide.ApplyAction(ctx, domain.Action{Name: domain.ActionEditorType, Value: "x"})
	_ = ide.ApplyAction(ctx, domain.Action{Name: "bogus"})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Applied.WithLabelValues(domain.NamespaceFileExplorer, domain.ActionCreateFile)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Applied.WithLabelValues(domain.NamespaceAuthor, domain.ActionSpeakBefore)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Failed.WithLabelValues(domain.NamespaceEditor, "no_active_file")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Failed.WithLabelValues("unknown", "unrecognized_action")))

	assert.Equal(t, 2, testutil.CollectAndCount(m.Applied))
}

func TestMetrics_RegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, observability.NewMetrics("x").Register(reg))
	assert.Error(t, observability.NewMetrics("x").Register(reg))
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	hooks := observability.LoggingHooks(logger)
	ide := virtualide.NewDefault(virtualide.WithLifecycleHooks(hooks))
	ctx := context.Background()

	require.NoError(t, ide.ApplyAction(ctx, domain.Action{Name: domain.ActionCreateFolder, Value: "src"}))
	require.Error(t, ide.ApplyAction(ctx, domain.Action{Name: domain.ActionOpenFile, Value: "src"}))

	out := buf.String()
	assert.Contains(t, out, `"msg":"action_applied"`)
	assert.Contains(t, out, `"msg":"action_failed"`)
	assert.Contains(t, out, `"code":"file_not_found"`)
}
