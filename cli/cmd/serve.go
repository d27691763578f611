package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ardnew/mfmt/log"
	"github.com/ardnew/mfmt/lru"
	"github.com/ardnew/mfmt/markup"
	"github.com/ardnew/mfmt/metrics"
	"github.com/ardnew/mfmt/pkg"
	"github.com/ardnew/mfmt/profile"
	"github.com/ardnew/mfmt/render"
)

// maxBodySize limits request bodies accepted by the server.
const maxBodySize = 1 << 20

// Serve serves the parser and renderer over HTTP.
type Serve struct {
	Addr    string        `default:"localhost:8080" help:"Address to listen on."                                 short:"a"`
	Expr    bool          `default:"true"           help:"Evaluate expressions without a value as expr-lang programs." negatable:""`
	Timeout time.Duration `default:"5s"             help:"Time allowed for in-flight requests at shutdown."`
}

// Run executes the serve command. It returns when ctx is done or the
// listener fails.
func (s *Serve) Run(ctx context.Context) error {
	logger := log.Default()

	srv := NewServer(
		parserFrom(ctx),
		render.New(render.WithExpr(s.Expr), render.WithLogger(logger)),
		logger,
	)

	hs := &http.Server{
		Addr:              s.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)

	go func() {
		logger.InfoContext(ctx, "listening", slog.String("addr", s.Addr))
		errc <- hs.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return ErrServe.Wrap(err).With(slog.String("addr", s.Addr))

	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.Timeout)
	defer cancel()

	logger.InfoContext(ctx, "shutting down", slog.Duration("timeout", s.Timeout))

	if err := hs.Shutdown(shutdown); err != nil {
		return ErrServe.Wrap(err).With(slog.String("addr", s.Addr))
	}

	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return ErrServe.Wrap(err).With(slog.String("addr", s.Addr))
	}

	return nil
}

// Server is the HTTP handler of the serve command.
//
// Parser and Renderer caches are not safe for concurrent use, so every
// request holds mu while it parses or renders.
type Server struct {
	mu       sync.Mutex
	parser   *markup.Parser
	renderer *render.Renderer
	logger   log.Logger
	router   chi.Router
}

// NewServer returns a Server routing requests to parser and renderer.
func NewServer(
	parser *markup.Parser,
	renderer *render.Renderer,
	logger log.Logger,
) *Server {
	s := &Server{parser: parser, renderer: renderer, logger: logger}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		metrics.NewCacheCollector(pkg.Name, s.locked(parser.Stats),
			prometheus.Labels{"cache": "parse"}),
		metrics.NewCacheCollector(pkg.Name, s.locked(renderer.Stats),
			prometheus.Labels{"cache": "program"}),
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequest)
	r.Use(middleware.Recoverer)

	r.Post("/parse", s.handleParse)
	r.Post("/render", s.handleRender)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics",
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	if profile.Enabled {
		r.Mount("/debug", middleware.Profiler())
	}

	s.router = r

	return s
}

// ServeHTTP implements [http.Handler].
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) locked(f func() lru.Stats) func() lru.Stats {
	return func() lru.Stats {
		s.mu.Lock()
		defer s.mu.Unlock()

		return f()
	}
}

func (s *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		defer func() {
			s.logger.DebugContext(r.Context(), "request",
				slog.String("id", middleware.GetReqID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("elapsed", time.Since(start)),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		writeError(w, bodyStatus(err), err)

		return
	}

	s.mu.Lock()
	root, err := s.parser.Parse(r.Context(), string(body))
	s.mu.Unlock()

	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := root.FormatJSON(w, 0); err != nil {
		s.logger.WarnContext(r.Context(), "write response", slog.Any("error", err))
	}
}

// renderRequest is the body of POST /render. Slots and Tags are keyed by
// element index.
type renderRequest struct {
	Format string               `json:"format"`
	Slots  map[string][2]string `json:"slots"`
	Tags   map[string]string    `json:"tags"`
	Values map[string]any       `json:"values"`
}

func (req renderRequest) slots() (render.Slots, error) {
	slots := make(render.Slots, len(req.Slots)+len(req.Tags))

	index := func(key string) (uint64, error) {
		n, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			return 0, ErrInvalidSlot.With(slog.String("slot", key)).Wrap(err)
		}

		return n, nil
	}

	for key, wrap := range req.Slots {
		n, err := index(key)
		if err != nil {
			return nil, err
		}

		slots[n] = render.Wrap(wrap[0], wrap[1])
	}

	for key, name := range req.Tags {
		n, err := index(key)
		if err != nil {
			return nil, err
		}

		slots[n] = render.Tag(name)
	}

	return slots, nil
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.UseNumber()

	if err := dec.Decode(&req); err != nil {
		writeError(w, bodyStatus(err), err)

		return
	}

	slots, err := req.slots()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	values := make(map[string]any, len(req.Values))
	for name, v := range req.Values {
		values[name] = jsonValue(v)
	}

	s.mu.Lock()
	out, err := s.renderer.RenderString(r.Context(), s.parser, req.Format, slots, values)
	s.mu.Unlock()

	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)

		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, out)
}

// jsonValue converts a decoded JSON number to int when it is integral, or
// float64 otherwise.
func jsonValue(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}

	if i, err := strconv.Atoi(n.String()); err == nil {
		return i
	}

	if f, err := n.Float64(); err == nil {
		return f
	}

	return n.String()
}

// errorBody is the JSON body of an error response.
type errorBody struct {
	Error  string `json:"error"`
	Kind   string `json:"kind,omitempty"`
	Offset *int   `json:"offset,omitempty"`
	Line   *int   `json:"line,omitempty"`
	Column *int   `json:"column,omitempty"`
}

// errorKinds names the sentinel errors reported in error responses.
var errorKinds = []struct {
	err  error
	name string
}{
	{markup.ErrInvalidToken, "invalid_token"},
	{markup.ErrMalformedElement, "malformed_element"},
	{markup.ErrMalformedExpression, "malformed_expression"},
	{markup.ErrUnmatchedClose, "unmatched_close"},
	{markup.ErrUnterminatedInput, "unterminated_input"},
	{markup.ErrInternal, "internal"},
	{render.ErrMissingSlot, "missing_slot"},
	{render.ErrUnboundExpression, "unbound_expression"},
	{ErrInvalidSlot, "invalid_slot"},
}

// bodyStatus is the status for a request body that could not be read or
// decoded.
func bodyStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}

	return http.StatusBadRequest
}

func writeError(w http.ResponseWriter, status int, err error) {
	body := errorBody{Error: err.Error()}

	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			body.Kind = k.name

			break
		}
	}

	var merr *markup.Error
	if errors.As(err, &merr) {
		if pos, ok := merr.Position(); ok {
			body.Offset, body.Line, body.Column = &pos.Offset, &pos.Line, &pos.Column
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
