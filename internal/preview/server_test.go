package preview

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"pkt.systems/wikihtml"
)

func newTestServer(t *testing.T) (*Server, *prometheus.Registry, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	reg := prometheus.NewRegistry()
	s := New(Options{
		Logger:   slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
		Registry: reg,
	})
	return s, reg, &logs
}

func do(t *testing.T, h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, body))
	return rec
}

func TestRender(t *testing.T) {
	s, reg, logs := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodPost, "/render", strings.NewReader("*** Hi\n-a\n--b"))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Equal(t, wikihtml.Render("*** Hi\n-a\n--b"), rec.Body.String())

	require.Equal(t, 1.0, testutil.ToFloat64(s.metrics.requests.WithLabelValues("200")))
	n, err := testutil.GatherAndCount(reg, "wikihtml_render_duration_seconds", "wikihtml_render_input_bytes")
	require.NoError(t, err)
	require.Equal(t, 2, n)

	require.Contains(t, logs.String(), "path=/render")
	require.Contains(t, logs.String(), "status=200")
}

func TestRenderRejectsBinary(t *testing.T) {
	s, _, _ := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodPost, "/render", bytes.NewReader([]byte{'a', 0x00}))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "binary input")
	require.Equal(t, 1.0, testutil.ToFloat64(s.metrics.requests.WithLabelValues("400")))
}

func TestRenderOptions(t *testing.T) {
	s := New(Options{RenderOptions: []wikihtml.RenderOption{
		wikihtml.WithFrontMatterStripped(true),
		wikihtml.WithValidation(false),
	}})

	rec := do(t, s.Handler(), http.MethodPost, "/render", strings.NewReader("---\ntitle: x\n---\n* Hi"))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "<h1>Hi</h1>", rec.Body.String())

	rec = do(t, s.Handler(), http.MethodPost, "/render", bytes.NewReader([]byte{'a', 0x00}))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "a\x00<br>", rec.Body.String())
}

func TestRenderTooLarge(t *testing.T) {
	s, _, _ := newTestServer(t)
	body := strings.Repeat("a", MaxInputBytes+1)
	rec := do(t, s.Handler(), http.MethodPost, "/render", strings.NewReader(body))
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	require.Equal(t, 1.0, testutil.ToFloat64(s.metrics.requests.WithLabelValues("413")))
}

func TestRenderMethod(t *testing.T) {
	s, _, _ := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodGet, "/render", nil)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestEditor(t *testing.T) {
	s, _, _ := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `<textarea id="source"`)
	require.Contains(t, body, `data-theme="default"`)
	require.Contains(t, body, ".wikihtml h1 {")

	rec = do(t, s.Handler(), http.MethodGet, "/?theme=nord", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `data-theme="nord"`)

	rec = do(t, s.Handler(), http.MethodGet, "/?theme=nope", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestThemesAndHealth(t *testing.T) {
	s, _, _ := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodGet, "/themes", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var names []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &names))
	require.Equal(t, wikihtml.AvailableThemes(), names)

	rec = do(t, s.Handler(), http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	s, _, _ := newTestServer(t)
	do(t, s.Handler(), http.MethodPost, "/render", strings.NewReader("x"))
	rec := do(t, s.Handler(), http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `wikihtml_render_requests_total{code="200"} 1`)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s, _, _ := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
