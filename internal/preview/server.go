// Package preview serves a browser editor that re-renders wiki markup on
// every keystroke.
package preview

import (
	"context"
	"encoding/json"
	"html/template"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pkt.systems/wikihtml"
)

// MaxInputBytes bounds the body of a render request.
const MaxInputBytes = 1 << 20

const shutdownTimeout = 5 * time.Second

// Options configures a Server. Zero values select the default theme, a
// discarding logger and a private registry.
type Options struct {
	Theme    wikihtml.Theme
	Logger   *slog.Logger
	Registry *prometheus.Registry
	// RenderOptions apply to every /render request. The editor frames the
	// result itself, so they should not include WithPage.
	RenderOptions []wikihtml.RenderOption
}

// Server is the live preview HTTP server.
type Server struct {
	theme    wikihtml.Theme
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metrics
	router   *mux.Router
	opts     []wikihtml.RenderOption
}

// New returns a Server with its routes registered.
func New(opts Options) *Server {
	s := &Server{
		theme:    opts.Theme,
		logger:   opts.Logger,
		registry: opts.Registry,
		opts:     opts.RenderOptions,
	}
	if s.theme == nil {
		s.theme = wikihtml.DefaultTheme()
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = newMetrics(s.registry)
	s.router = mux.NewRouter()
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	routeDefinitions := []struct {
		path    string
		method  string
		handler http.Handler
	}{
		{"/", http.MethodGet, http.HandlerFunc(s.editor)},
		{"/render", http.MethodPost, http.HandlerFunc(s.render)},
		{"/themes", http.MethodGet, http.HandlerFunc(s.themes)},
		{"/healthz", http.MethodGet, http.HandlerFunc(s.healthz)},
		{"/metrics", http.MethodGet, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})},
	}
	for _, route := range routeDefinitions {
		s.router.Handle(route.path, route.handler).Methods(route.method)
	}
	s.router.Use(s.logRequests)
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe listens on addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listen %s", addr)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("preview server shutdown", slog.Any("error", err))
		}
	}()
	s.logger.Info("preview server listening",
		slog.String("addr", ln.Addr().String()),
		slog.String("theme", s.theme.Name()),
	)
	err := srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		<-done
		return nil
	}
	return errors.Wrap(err, "serve")
}

func (s *Server) editor(w http.ResponseWriter, r *http.Request) {
	th := s.theme
	if name := r.URL.Query().Get("theme"); name != "" {
		var ok bool
		if th, ok = wikihtml.ThemeByName(name); !ok {
			http.Error(w, "unknown theme", http.StatusBadRequest)
			return
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := editorTemplate.Execute(w, struct {
		Title string
		Theme string
		CSS   template.CSS
	}{
		Title: wikihtml.DefaultPageTitle,
		Theme: th.Name(),
		CSS:   template.CSS(th.Styles().CSS(".wikihtml")),
	})
	if err != nil {
		s.logger.Error("editor template", slog.Any("error", err))
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	code := http.StatusOK
	defer func() {
		s.metrics.observe(code, time.Since(start))
	}()

	src, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxInputBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			code = http.StatusRequestEntityTooLarge
		} else {
			code = http.StatusBadRequest
		}
		http.Error(w, http.StatusText(code), code)
		return
	}
	s.metrics.inputBytes.Observe(float64(len(src)))

	out, err := wikihtml.ConvertBytes(src, s.opts...)
	if err != nil {
		code = http.StatusBadRequest
		s.logger.Debug("render rejected", slog.Any("error", err), slog.Int("bytes", len(src)))
		http.Error(w, err.Error(), code)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(out)
}

func (s *Server) themes(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, wikihtml.AvailableThemes())
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

func writeJSONResponse(w http.ResponseWriter, code int, payload any) {
	res, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(res)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", time.Since(start)),
		)
	})
}
