// internal/game/engine.go
//
// Core engine for a single word-scramble round.
// Responsibilities:
//   - Start rounds by drawing a root word from the injected word list.
//   - Validate submissions against the five ordered rules.
//   - Keep UsedWords (most-recent-first) and Score consistent.
//
// Notes:
//   - The engine is not safe for concurrent use; callers serialize access.
//   - Oracle failures count as "not recognized" and are logged, never returned.

package game

import (
	"crypto/rand"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultRoot is used when the word list is empty.
	DefaultRoot = "silkworm"
	// DefaultLanguage is passed to the oracle unless overridden.
	DefaultLanguage = "en"

	minLength = 4
)

// Engine owns the state of the current round.
type Engine struct {
	oracle   Oracle
	language string
	pick     func(n int) int

	list  []string
	root  string
	used  []string
	score int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLanguage sets the language passed to the oracle.
func WithLanguage(lang string) Option {
	return func(e *Engine) {
		if lang != "" {
			e.language = lang
		}
	}
}

// WithPicker replaces the random index source. pick(n) must return a value in [0, n).
func WithPicker(pick func(n int) int) Option {
	return func(e *Engine) {
		if pick != nil {
			e.pick = pick
		}
	}
}

// New constructs an engine. The root word is DefaultRoot until StartGame runs.
func New(oracle Oracle, opts ...Option) *Engine {
	e := &Engine{
		oracle:   oracle,
		language: DefaultLanguage,
		pick:     randomIndex,
		root:     DefaultRoot,
		used:     []string{},
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// StartGame begins a new round with a root drawn uniformly from list,
// or DefaultRoot if list is empty. Score and UsedWords are reset.
func (e *Engine) StartGame(list []string) string {
	e.list = list
	root := DefaultRoot
	if len(list) > 0 {
		if w := normalize(list[e.pick(len(list))]); w != "" {
			root = w
		}
	}
	e.root = root
	e.used = []string{}
	e.score = 0
	log.Debug().Str("root", root).Int("candidates", len(list)).Msg("round started")
	return root
}

// Restart begins a new round from the word list of the previous StartGame.
func (e *Engine) Restart() string {
	return e.StartGame(e.list)
}

// Submit validates candidate and applies it to the round.
// The bool is false when the normalized candidate is empty; the round is
// then unchanged and the Result is zero.
//
// Rules run in order and stop at the first failure:
//  1. not already used
//  2. spelled from the root's letters (with multiplicity)
//  3. recognized by the oracle
//  4. longer than 3 letters
//  5. not the root word itself
func (e *Engine) Submit(candidate string) (Result, bool) {
	word := normalize(candidate)
	if word == "" {
		return Result{}, false
	}
	res := Result{Word: word, Root: e.root}

	switch {
	case !e.isOriginal(word):
		res.Kind = KindAlreadyUsed
	case !CanSpell(word, e.root):
		res.Kind = KindNotDerivable
	case !e.isReal(word):
		res.Kind = KindNotAWord
	case utf8.RuneCountInString(word) < minLength:
		res.Kind = KindTooShort
	case word == e.root:
		res.Kind = KindIsRootWord
	default:
		res.Kind = KindAccepted
		res.Delta = ScoreFor(word)
		e.used = append([]string{word}, e.used...)
		e.score += res.Delta
	}
	return res, true
}

// Root returns the current root word.
func (e *Engine) Root() string { return e.root }

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// UsedWords returns a copy of the accepted words, most recent first.
func (e *Engine) UsedWords() []string {
	return append([]string(nil), e.used...)
}

// Snapshot returns the current round state.
func (e *Engine) Snapshot() Round {
	return Round{Root: e.root, UsedWords: e.UsedWords(), Score: e.score}
}

// ScoreFor returns the points for an accepted word: 1 for four letters,
// plus 1 per extra letter.
func ScoreFor(word string) int {
	n := utf8.RuneCountInString(word)
	if n < minLength {
		return 0
	}
	return n - (minLength - 1)
}

// ScoreOf is the score implied by a list of accepted words.
func ScoreOf(used []string) int {
	total := 0
	for _, w := range used {
		total += ScoreFor(w)
	}
	return total
}

func (e *Engine) isOriginal(word string) bool {
	for _, w := range e.used {
		if w == word {
			return false
		}
	}
	return true
}

// CanSpell reports whether word can be spelled from root's letters,
// consuming one occurrence per letter.
func CanSpell(word, root string) bool {
	remaining := []rune(root)
	for _, r := range word {
		i := indexRune(remaining, r)
		if i < 0 {
			return false
		}
		remaining = append(remaining[:i], remaining[i+1:]...)
	}
	return true
}

// Playable reports whether a recognized word would be accepted in a fresh
// round on root: spelled from its letters, long enough, and not root itself.
func Playable(word, root string) bool {
	return CanSpell(word, root) && utf8.RuneCountInString(word) >= minLength && word != root
}

func indexRune(rs []rune, r rune) int {
	for i, x := range rs {
		if x == r {
			return i
		}
	}
	return -1
}

func (e *Engine) isReal(word string) bool {
	if e.oracle == nil {
		return false
	}
	ok, err := e.oracle.IsRecognizedWord(word, e.language)
	if err != nil {
		log.Warn().Err(err).Str("word", word).Str("lang", e.language).Msg("spelling oracle unavailable")
		return false
	}
	return ok
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// randomIndex returns a crypto-random index in [0, n).
func randomIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}
