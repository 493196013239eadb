// Package server exposes quests, progress and layouts over HTTP.
//
// Routes:
//
//	GET    /healthz
//	GET    /quests?kappa=true
//	GET    /quests/{id}
//	GET    /progress
//	PUT    /progress/{id}
//	DELETE /progress/{id}
//	POST   /progress/{id}/toggle
//	GET    /layout        (also /layout.svg, /layout.dot, /layout.png)
//
// The layout routes accept kappa=true and hide_completed=true. Every
// response carries an X-Request-ID header. Errors are JSON objects
// {"code": ..., "error": ...} with a status derived from the code.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	qerrors "github.com/matzehuels/questgraph/pkg/errors"
	"github.com/matzehuels/questgraph/pkg/layout"
	"github.com/matzehuels/questgraph/pkg/pipeline"
	"github.com/matzehuels/questgraph/pkg/progress"
	"github.com/matzehuels/questgraph/pkg/render"
)

// Options configures a Server.
type Options struct {
	Runner     *pipeline.Runner
	Store      progress.Store
	QuestsPath string
	Layout     layout.Config
	Logger     *log.Logger
}

// Server is the HTTP API. It is safe for concurrent use; all state lives in
// the runner and the store.
type Server struct {
	runner     *pipeline.Runner
	store      progress.Store
	questsPath string
	layout     layout.Config
	logger     *log.Logger
	router     chi.Router
}

// New creates a server. Runner defaults to an uncached runner.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.Runner == nil {
		opts.Runner = pipeline.NewRunner(nil, nil, opts.Logger)
	}
	if opts.QuestsPath == "" {
		opts.QuestsPath = pipeline.DefaultQuestsPath
	}
	s := &Server{
		runner:     opts.Runner,
		store:      opts.Store,
		questsPath: opts.QuestsPath,
		layout:     opts.Layout,
		logger:     opts.Logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/quests", func(r chi.Router) {
		r.Get("/", s.handleListQuests)
		r.Get("/{id}", s.handleGetQuest)
	})

	r.Route("/progress", func(r chi.Router) {
		r.Get("/", s.handleGetProgress)
		r.Put("/{id}", s.handleMark)
		r.Delete("/{id}", s.handleUnmark)
		r.Post("/{id}/toggle", s.handleToggle)
	})

	r.Get("/layout", s.handleLayout(render.FormatJSON))
	r.Get("/layout.json", s.handleLayout(render.FormatJSON))
	r.Get("/layout.svg", s.handleLayout(render.FormatSVG))
	r.Get("/layout.dot", s.handleLayout(render.FormatDOT))
	r.Get("/layout.png", s.handleLayout(render.FormatPNG))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, qerrors.New(qerrors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type errorBody struct {
	Code  qerrors.Code `json:"code"`
	Error string       `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := qerrors.GetCode(err)
	if code == "" {
		code = qerrors.ErrCodeInternal
	}
	writeJSON(w, qerrors.HTTPStatus(err), errorBody{Code: code, Error: qerrors.UserMessage(err)})
}

func boolParam(r *http.Request, name string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return v
}
