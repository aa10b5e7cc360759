package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/polisai/commission-board/pkg/config"
	"github.com/polisai/commission-board/pkg/domain"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// Options configures a Server.
type Options struct {
	// Upstream is the commissions API base URL that receives /api/ requests.
	Upstream string
	// StaticDir is layered over the embedded assets when set.
	StaticDir string
	Logger    *slog.Logger
	Metrics   *Metrics
	// Transport is used for upstream round trips. Defaults to an
	// otelhttp-instrumented http.DefaultTransport.
	Transport http.RoundTripper
}

// Server is the development server.
type Server struct {
	logger   *slog.Logger
	metrics  *Metrics
	assets   fs.FS
	upstream atomic.Pointer[url.URL]
	proxy    *httputil.ReverseProxy
	handler  http.Handler
}

// New creates a Server. The upstream must be an absolute http(s) URL.
func New(opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = NewMetrics()
	}
	transport := opts.Transport
	if transport == nil {
		transport = otelhttp.NewTransport(http.DefaultTransport)
	}

	s := &Server{
		logger:  logger,
		metrics: metrics,
		assets:  Assets(opts.StaticDir),
	}
	if err := s.SetUpstream(opts.Upstream); err != nil {
		return nil, err
	}

	s.proxy = &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(s.upstream.Load())
			pr.SetXForwarded()
			if id, ok := pr.In.Context().Value(requestIDKey{}).(string); ok {
				pr.Out.Header.Set(RequestIDHeader, id)
			}
		},
		Transport:    transport,
		ErrorHandler: s.proxyError,
	}

	s.handler = s.routes()
	return s, nil
}

// Upstream returns the current proxy target.
func (s *Server) Upstream() string {
	return s.upstream.Load().String()
}

// SetUpstream atomically re-targets the API proxy.
func (s *Server) SetUpstream(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: upstream %q: %v", domain.ErrConfigInvalid, raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: upstream %q must be an absolute http(s) URL", domain.ErrConfigInvalid, raw)
	}
	s.upstream.Store(u)
	s.metrics.SetUpstream(u.String())
	return nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Watch applies configuration updates until ctx is done or updates closes.
func (s *Server) Watch(ctx context.Context, updates <-chan *config.Config) {
	for {
		select {
		case <-ctx.Done():
			return
		case cfg, ok := <-updates:
			if !ok {
				return
			}
			target := cfg.Upstream()
			if target == s.Upstream() {
				continue
			}
			if err := s.SetUpstream(target); err != nil {
				s.logger.Error("Failed to apply upstream from config", "upstream", target, "error", err)
				s.metrics.RecordConfigReload("error")
				continue
			}
			s.metrics.RecordConfigReload("success")
			s.logger.Info("API upstream updated", "upstream", target)
		}
	}
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("Server listening", "addr", ln.Addr().String(), "upstream", s.Upstream())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// ListenAndServe binds addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.page("index.html"))
	mux.HandleFunc("GET /commission/{id}", s.page("commission.html"))
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(s.assets)))
	mux.Handle("/api/", s.proxy)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", s.metrics.Handler())

	var h http.Handler = mux
	h = s.metrics.MetricsMiddleware(h)
	h = requestID(h)
	return otelhttp.NewHandler(h, "commissions.server")
}

func (s *Server) page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := fs.ReadFile(s.assets, name)
		if err != nil {
			s.logger.Error("Page shell missing", "page", name, "error", err)
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write(data)
	}
}

func (s *Server) proxyError(w http.ResponseWriter, r *http.Request, err error) {
	upstream := s.Upstream()
	s.metrics.RecordProxyError(upstream)
	s.logger.Warn("API proxy error",
		"upstream", upstream,
		"path", r.URL.Path,
		"request_id", RequestIDFromContext(r.Context()),
		"error", err,
	)
	http.Error(w, "upstream unavailable", http.StatusBadGateway)
}

// requestID reuses an incoming X-Request-ID or generates a UUID, echoes it on
// the response and stores it in the request context.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// RequestIDFromContext extracts the request id stored by the server middleware.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
