// Package httpserver exposes a board over a small JSON API so the game can be
// driven by a browser front end instead of the terminal UI.
//
// Endpoints:
//   - GET  /health
//   - GET  /puzzles          names of the puzzles in the puzzle directory
//   - GET  /game             current snapshot
//   - POST /game/new         {"puzzle": name} starts a new board
//   - POST /game/select      {"word": w} toggles a word
//   - POST /game/deselect
//   - POST /game/submit      returns the outcome and the snapshot
//   - POST /game/reset
//
// There is one board per process. Requests are serialised behind a mutex.
package httpserver

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/tatianab/connections/internal/engine"
	"github.com/tatianab/connections/internal/models"
)

// Options configures new boards created by the server.
type Options struct {
	PuzzleDir      string
	MessageTimeout time.Duration
	EngineOptions  []engine.Option
}

// Server bundles the router and the board it serves.
type Server struct {
	r    *chi.Mux
	log  zerolog.Logger
	opts Options

	mu  sync.Mutex // guards eng
	eng *engine.Engine
}

// New constructs a Server for eng, installs middleware, and registers routes.
func New(eng *engine.Engine, opts Options, log zerolog.Logger) *Server {
	s := &Server{r: chi.NewRouter(), log: log, opts: opts, eng: eng}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(s.requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/puzzles", s.handlePuzzles)

	s.r.Route("/game", func(r chi.Router) {
		r.Get("/", s.handleSnapshot)
		r.Post("/new", s.handleNew)
		r.Post("/select", s.handleSelect)
		r.Post("/deselect", s.handleDeselect)
		r.Post("/submit", s.handleSubmit)
		r.Post("/reset", s.handleReset)
	})

	return s
}

// ServeHTTP lets Server be used directly as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.r.ServeHTTP(w, r)
}

// Start runs the HTTP server on addr.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

type submitResponse struct {
	Outcome engine.Outcome  `json:"outcome"`
	Game    engine.Snapshot `json:"game"`
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snap := s.eng.Snapshot()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handlePuzzles(w http.ResponseWriter, r *http.Request) {
	names, err := models.ListPuzzles(s.opts.PuzzleDir)
	if err != nil {
		s.log.Error().Err(err).Msg("list puzzles")
		writeError(w, http.StatusInternalServerError, "failed to list puzzles")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"puzzles": names})
}

func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Puzzle string `json:"puzzle"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var (
		p   *models.Puzzle
		err error
	)
	if body.Puzzle == "" {
		p, err = models.DefaultPuzzle()
	} else {
		var path string
		path, err = models.PuzzlePath(s.opts.PuzzleDir, body.Puzzle)
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		p, err = models.LoadPuzzle(path)
	}
	if err != nil {
		s.log.Error().Err(err).Str("puzzle", body.Puzzle).Msg("load puzzle")
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	eng, err := engine.NewEngine(*p, s.opts.EngineOptions...)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.mu.Lock()
	s.eng = eng
	snap := eng.Snapshot()
	s.mu.Unlock()

	s.log.Info().Str("puzzle", p.Title).Msg("new board")
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Word string `json:"word"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var toggleErr error
	snap := s.mutate(func(e *engine.Engine) { toggleErr = e.ToggleSelect(body.Word) })
	if errors.Is(toggleErr, engine.ErrUnknownWord) {
		writeError(w, http.StatusBadRequest, toggleErr.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDeselect(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.mutate(func(e *engine.Engine) { e.DeselectAll() }))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var outcome engine.Outcome
	snap := s.mutate(func(e *engine.Engine) { outcome = e.Submit() })
	writeJSON(w, http.StatusOK, submitResponse{Outcome: outcome, Game: snap})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.mutate(func(e *engine.Engine) { e.Reset() }))
}

// mutate applies fn to the board under the lock and schedules the message
// auto-clear when fn produced a new message.
func (s *Server) mutate(fn func(e *engine.Engine)) engine.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	eng := s.eng
	before := eng.MessageID()
	fn(eng)
	snap := eng.Snapshot()

	if snap.MessageID != before && snap.Message != "" && !snap.MessageSticky {
		id := snap.MessageID
		time.AfterFunc(s.opts.MessageTimeout, func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			// A timer from a replaced board must not touch the new one.
			if s.eng == eng {
				eng.ClearMessage(id)
			}
		})
	}
	return snap
}
