// internal/httpserver/server.go
//
// HTTP server wiring for the WordScramble backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Round endpoints: POST /game/new, POST /game/submit, GET /game/state.
//   - Daily round: POST /game/daily (see routes_daily.go).
//   - Websocket channel: GET /game/ws (see ws.go).
//
// Notes:
//   - A session is identified by a signed token (see session.go) carried in
//     a cookie or an Authorization header.
//   - Each session owns one engine; store.Session.Do serializes access.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/joomin-choi/wordscramble/internal/game"
	"github.com/joomin-choi/wordscramble/internal/store"
)

const maxSuggestions = 3

// Suggester proposes dictionary words close to a rejected candidate,
// limited to those keep accepts.
type Suggester interface {
	Suggest(word, language string, max int, keep func(string) bool) []string
}

// Options carries the dependencies and settings of a Server.
type Options struct {
	Words          []string    // root word list for new rounds
	Oracle         game.Oracle // spelling oracle shared by all sessions
	Suggester      Suggester   // optional; decorates not_a_word results
	Language       string
	DictionarySize int    // reported by /debug/words
	DailySalt      string // keys the daily root selection

	Secret       string
	TokenTTL     time.Duration
	CookieName   string
	ClientOrigin string
	Secure       bool // Secure + SameSite=None cookies
}

// Server bundles router, session store and round settings.
type Server struct {
	r     *chi.Mux
	store store.Store
	opts  Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, opts Options) *Server {
	if opts.Language == "" {
		opts.Language = game.DefaultLanguage
	}
	if opts.CookieName == "" {
		opts.CookieName = "scramble_session"
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	s := &Server{r: chi.NewRouter(), store: st, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(jsonContentType)
	s.r.Use(s.cors)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"service":   "wordscramble-go",
			"endpoints": []string{"/health", "POST /game/new", "POST /game/daily", "POST /game/submit", "/game/state", "DELETE /game/session", "/game/ws"},
			"rules":     game.Rules,
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{
			"rootWords":  len(s.opts.Words),
			"dictionary": s.opts.DictionarySize,
			"sessions":   s.store.Len(),
		})
	})

	s.r.Route("/game", func(r chi.Router) {
		// The websocket must not run under the handler timeout.
		r.With(s.requireSession).Get("/ws", s.handleWS)

		r.Group(func(r chi.Router) {
			r.Use(chimw.Timeout(10 * time.Second))
			r.Post("/new", s.handleNewGame)
			s.mountDaily(r)
			r.With(s.requireSession).Post("/submit", s.handleSubmit)
			r.With(s.requireSession).Get("/state", s.handleState)
			r.With(s.requireSession).Delete("/session", s.handleEndSession)
		})
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.opts.ClientOrigin
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ payloads -----------------------------------

// usedWord is one accepted word as rendered by clients.
type usedWord struct {
	Word   string `json:"word"`
	Length int    `json:"length"`
}

// stateRes mirrors game.Round with per-word lengths.
type stateRes struct {
	Root      string     `json:"root"`
	Score     int        `json:"score"`
	UsedWords []usedWord `json:"usedWords"`
}

func toState(rd game.Round) stateRes {
	used := make([]usedWord, len(rd.UsedWords))
	for i, w := range rd.UsedWords {
		used[i] = usedWord{Word: w, Length: len([]rune(w))}
	}
	return stateRes{Root: rd.Root, Score: rd.Score, UsedWords: used}
}

// resultRes is a submission outcome with its display texts.
type resultRes struct {
	Kind        game.Kind `json:"kind"`
	Word        string    `json:"word"`
	Delta       int       `json:"delta"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Suggestions []string  `json:"suggestions,omitempty"`
}

func (s *Server) toResult(res game.Result) resultRes {
	out := resultRes{
		Kind:    res.Kind,
		Word:    res.Word,
		Delta:   res.Delta,
		Title:   res.Title(),
		Message: res.Message(),
	}
	if res.Kind == game.KindNotAWord && s.opts.Suggester != nil {
		playable := func(w string) bool { return game.Playable(w, res.Root) }
		out.Suggestions = s.opts.Suggester.Suggest(res.Word, s.opts.Language, maxSuggestions, playable)
	}
	return out
}

// -------------------------------- GAME -------------------------------------

type newGameRes struct {
	Token string   `json:"token"`
	Date  string   `json:"date,omitempty"` // daily rounds only
	State stateRes `json:"state"`
}

// handleNewGame starts a new round for the caller from the full word list.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	s.startRound(w, r, s.opts.Words, "")
}

// startRound (re)starts the caller's round from list, creating a session when
// the request carries none (or an expired one), and issues a fresh token.
func (s *Server) startRound(w http.ResponseWriter, r *http.Request, list []string, date string) {
	sess := s.sessionFromRequest(r)
	if sess == nil {
		sess = store.NewSession(game.New(s.opts.Oracle, game.WithLanguage(s.opts.Language)))
		if err := s.store.Save(r.Context(), sess); err != nil {
			log.Error().Err(err).Msg("save session")
			http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
			return
		}
		log.Info().Str("session", sess.ID).Msg("session created")
	}

	var rd game.Round
	sess.Do(func(e *game.Engine) {
		e.StartGame(list)
		rd = e.Snapshot()
	})

	tok, exp, err := s.signToken(sess.ID)
	if err != nil {
		log.Error().Err(err).Msg("sign session token")
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	s.setSessionCookie(w, tok, exp)
	_ = json.NewEncoder(w).Encode(newGameRes{Token: tok, Date: date, State: toState(rd)})
}

type submitReq struct {
	Word string `json:"word"`
}

type submitRes struct {
	Result resultRes `json:"result"`
	State  stateRes  `json:"state"`
}

// handleSubmit validates one word against the caller's round.
// An empty submission is a no-op answered with 204.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess := sessionFromContext(r.Context())

	var (
		res game.Result
		ok  bool
		rd  game.Round
	)
	sess.Do(func(e *game.Engine) {
		res, ok = e.Submit(req.Word)
		rd = e.Snapshot()
	})
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	log.Debug().Str("session", sess.ID).Str("word", res.Word).Str("kind", string(res.Kind)).Msg("submission")
	_ = json.NewEncoder(w).Encode(submitRes{Result: s.toResult(res), State: toState(rd)})
}

// handleState returns the caller's current round.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	var rd game.Round
	sessionFromContext(r.Context()).Do(func(e *game.Engine) { rd = e.Snapshot() })
	_ = json.NewEncoder(w).Encode(toState(rd))
}

// handleEndSession drops the caller's session and clears the cookie.
func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	if err := s.store.Delete(r.Context(), sess.ID); err != nil {
		log.Error().Err(err).Str("session", sess.ID).Msg("delete session")
		http.Error(w, `{"error":"delete_failed"}`, http.StatusInternalServerError)
		return
	}
	s.clearSessionCookie(w)
	log.Info().Str("session", sess.ID).Msg("session ended")
	w.WriteHeader(http.StatusNoContent)
}
