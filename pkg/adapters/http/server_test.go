package http_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/virtualide"
	api "github.com/aretw0/virtualide/pkg/adapters/http"
	"github.com/aretw0/virtualide/pkg/domain"
	"github.com/aretw0/virtualide/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

const helloScript = `[
	{"file-explorer-create-file": "src/hello.js"},
	{"file-explorer-open-file": "src/hello.js"},
	{"name": "editor-type", "value": "console.log('hi');"},
	"editor-save"
]`

func TestHealthAndInfo(t *testing.T) {
	h := api.NewHandler()

	w := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/info", "")
	assert.Equal(t, http.StatusOK, w.Code)
	info := decode[map[string]string](t, w)
	assert.Equal(t, strings.TrimSpace(virtualide.Version), info["version"])

	w = do(t, h, http.MethodOptions, "/snapshot", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSnapshot(t *testing.T) {
	h := api.NewHandler()

	w := do(t, h, http.MethodPost, "/snapshot", helloScript)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	snap := decode[domain.CourseSnapshot](t, w)
	node, ok := snap.File("src/hello.js")
	require.True(t, ok)
	assert.Equal(t, "console.log('hi');", node.Content)
	assert.Equal(t, "src/hello.js", snap.EditorSnapshot.CurrentFile)
}

func TestSnapshot_Errors(t *testing.T) {
	h := api.NewHandler()

	w := do(t, h, http.MethodPost, "/snapshot", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "bad_request", decode[api.ErrorBody](t, w).Code)

	w = do(t, h, http.MethodPost, "/snapshot", `[{"file-explorer-create-file": "a.txt"}, {"editor-type": "x"}]`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decode[api.ErrorBody](t, w)
	assert.Equal(t, "no_active_file", body.Code)
	require.NotNil(t, body.Index)
	assert.Equal(t, 1, *body.Index)
	assert.Equal(t, domain.ActionEditorType, body.Action)
}

func TestSessions(t *testing.T) {
	h := api.NewHandler()

	w := do(t, h, http.MethodPost, "/sessions", `{"id":"s1"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "s1", decode[api.SessionResponse](t, w).ID)

	w = do(t, h, http.MethodPost, "/sessions/s1/actions", helloScript)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[api.ApplyResponse](t, w)
	assert.Equal(t, 4, res.Applied)
	assert.Nil(t, res.Error)

	// A rejected action keeps the prefix.
	w = do(t, h, http.MethodPost, "/sessions/s1/actions", `[{"editor-enter": "1"}, {"file-explorer-open-file": "nope.js"}]`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	res = decode[api.ApplyResponse](t, w)
	assert.Equal(t, 1, res.Applied)
	require.NotNil(t, res.Error)
	assert.Equal(t, "file_not_found", res.Error.Code)

	w = do(t, h, http.MethodGet, "/sessions/s1/snapshot", "")
	require.Equal(t, http.StatusOK, w.Code)
	node, ok := decode[api.SessionResponse](t, w).Snapshot.File("src/hello.js")
	require.True(t, ok)
	assert.Equal(t, "console.log('hi');\n", node.Content)

	w = do(t, h, http.MethodGet, "/sessions/s1/actions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.Action](t, w), 5)

	w = do(t, h, http.MethodGet, "/sessions", "")
	assert.Equal(t, []string{"s1"}, decode[[]string](t, w))

	w = do(t, h, http.MethodDelete, "/sessions/s1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, "/sessions/s1/snapshot", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "session_not_found", decode[api.ErrorBody](t, w).Code)
}

func TestSessions_GeneratedID(t *testing.T) {
	h := api.NewHandler()
	w := do(t, h, http.MethodPost, "/sessions", "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, decode[api.SessionResponse](t, w).ID)
}

func TestRecordings(t *testing.T) {
	h := api.NewHandler()

	w := do(t, h, http.MethodPost, "/recordings?id=hello", helloScript)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	rec := decode[domain.Recording](t, w)
	assert.Equal(t, "hello", rec.ID)
	assert.Len(t, rec.Frames, 5)

	w = do(t, h, http.MethodGet, "/recordings", "")
	assert.Equal(t, []string{"hello"}, decode[[]string](t, w))

	w = do(t, h, http.MethodGet, "/recordings/hello/frames/2", "")
	require.Equal(t, http.StatusOK, w.Code)
	frame := decode[domain.Frame](t, w)
	require.NotNil(t, frame.Action)
	assert.Equal(t, domain.ActionOpenFile, frame.Action.Name)

	w = do(t, h, http.MethodGet, "/recordings/hello/frames/99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, h, http.MethodGet, "/recordings/hello/frames/two", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodGet, "/recordings/hello/diffs", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]*domain.SnapshotDiff](t, w), 4)

	w = do(t, h, http.MethodDelete, "/recordings/hello", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, h, http.MethodGet, "/recordings/hello", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "recording_not_found", decode[api.ErrorBody](t, w).Code)
}

func TestRecordings_NamedScriptAndFailures(t *testing.T) {
	h := api.NewHandler()
	doc := `{"name": "broken", "actions": [{"editor-type": "x"}, "file-explorer-create-file"]}`

	w := do(t, h, http.MethodPost, "/recordings", doc)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, h, http.MethodPost, "/recordings?continue=true", doc)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	rec := decode[domain.Recording](t, w)
	assert.Equal(t, "broken", rec.ID)
	require.Len(t, rec.Failures, 2)
	assert.Equal(t, "no_active_file", rec.Failures[0].Code)
	assert.Equal(t, "invalid_path", rec.Failures[1].Code)
	assert.Len(t, rec.Frames, 1)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics("virtualide")
	require.NoError(t, m.Register(reg))

	h := api.NewHandler(
		api.WithMetrics(reg),
		api.WithIDEFactory(func() *virtualide.IDE {
			return virtualide.NewDefault(virtualide.WithLifecycleHooks(m.Hooks()))
		}),
	)

	w := do(t, h, http.MethodPost, "/snapshot", helloScript)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "virtualide_actions_applied_total")
}

func TestSubscribeEvents(t *testing.T) {
	srv := api.NewServer()
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	_, err := srv.Sessions.Start(context.Background(), "live")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/sessions/live/events?watch=terminal", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := make(chan string, 10)
	go func() {
		defer close(events)
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			if data, ok := strings.CutPrefix(scanner.Text(), "data: "); ok {
				events <- data
			}
		}
	}()

	next := func() string {
		select {
		case e, ok := <-events:
			require.True(t, ok, "stream closed early")
			return e
		case <-ctx.Done():
			t.Fatal("timed out waiting for event")
			return ""
		}
	}

	assert.Equal(t, "connected", next())
	initial := next()
	assert.Contains(t, initial, `"currentFile":""`, "the first diff carries the full state")

	require.Eventually(t, func() bool { return srv.Streams.Subscribers("live") == 1 }, time.Second, 10*time.Millisecond)

	// Not watched: the file diff is filtered out.
	post := func(body string) {
		r, err := http.Post(ts.URL+"/sessions/live/actions", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		r.Body.Close()
		require.Equal(t, http.StatusOK, r.StatusCode)
	}
	post(`[{"file-explorer-create-file": "a.txt"}]`)
	post(`["terminal-open", {"terminal-type": "ls"}]`)

	var diff domain.SnapshotDiff
	require.NoError(t, json.Unmarshal([]byte(next()), &diff))
	require.NotNil(t, diff.TerminalContents)
	assert.Equal(t, "ls", *diff.TerminalContents)
	assert.Empty(t, diff.Files)
}

func TestSubscribeEvents_UnknownSession(t *testing.T) {
	h := api.NewHandler()
	w := do(t, h, http.MethodGet, "/sessions/ghost/events", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
