// Package dictionary provides spelling-validity oracles for the game engine.
//
// Backends:
//   - Set:    in-memory word sets per language (embedded or file-based lists).
//   - SQLite: a dictionary table in a SQLite database.
//   - Remote: an HTTP dictionary service.
//   - Chain:  first-positive composition of other oracles.
//
// An oracle returns an error only when it cannot answer; "not a word" is a
// false result with a nil error.
package dictionary

import (
	"errors"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ErrUnavailable is returned when a backend cannot answer a lookup.
var ErrUnavailable = errors.New("dictionary: unavailable")

// Oracle reports whether word is recognized in language.
type Oracle interface {
	IsRecognizedWord(word, language string) (bool, error)
}

// Chain recognizes a word when any member does. When no member recognizes
// it and at least one failed to answer, the failures are returned so the
// caller can tell an outage from a plain rejection.
type Chain []Oracle

// IsRecognizedWord asks each member in order.
func (c Chain) IsRecognizedWord(word, language string) (bool, error) {
	var errs []error
	for _, o := range c {
		ok, err := o.IsRecognizedWord(word, language)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			return true, nil
		}
	}
	return false, errors.Join(errs...)
}

// Suggest returns up to max candidates closest to word by edit distance,
// within a limit that grows with the word's length. When keep is non-nil
// only candidates it accepts are considered.
func Suggest(candidates []string, word string, max int, keep func(string) bool) []string {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" || max <= 0 {
		return nil
	}
	limit := distanceLimit(len(word))

	type scored struct {
		w    string
		dist int
	}
	var hits []scored
	for _, c := range candidates {
		if c == word || abs(len(c)-len(word)) > limit {
			continue
		}
		if keep != nil && !keep(c) {
			continue
		}
		if d := levenshtein.ComputeDistance(word, c); d <= limit {
			hits = append(hits, scored{w: c, dist: d})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].w < hits[j].w
	})
	if len(hits) > max {
		hits = hits[:max]
	}
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.w
	}
	return out
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
