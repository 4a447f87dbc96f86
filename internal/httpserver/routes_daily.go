// internal/httpserver/routes_daily.go
//
// Daily round: POST /game/daily starts the caller's round with the root word
// of the current UTC date, so every player shares the same root that day.
// The round itself behaves like any other; nothing is persisted.

package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/joomin-choi/wordscramble/internal/daily"
)

// mountDaily registers the daily route on r.
func (s *Server) mountDaily(r chi.Router) {
	r.Post("/daily", s.handleDaily)
}

// handleDaily starts a round whose root is today's daily word.
// An empty word list leaves the engine to its default root.
func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	var list []string
	if root := daily.Root(now, s.opts.DailySalt, s.opts.Words); root != "" {
		list = []string{root}
	}
	s.startRound(w, r, list, daily.DateKey(now))
}
