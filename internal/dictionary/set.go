package dictionary

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/joomin-choi/wordscramble/internal/words"
)

// Set is an in-memory dictionary keyed by language.
type Set struct {
	mu    sync.RWMutex
	langs map[string]map[string]struct{}
}

// NewSet constructs a Set seeded with list for lang.
func NewSet(lang string, list []string) *Set {
	s := &Set{langs: make(map[string]map[string]struct{})}
	s.Add(lang, list...)
	return s
}

// LoadSetFile builds a Set for lang from a word-per-line file.
func LoadSetFile(lang, path string) (*Set, error) {
	list, err := words.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dictionary file: %w", err)
	}
	return NewSet(lang, list), nil
}

// Add inserts words (lowercased, trimmed) for lang.
func (s *Set) Add(lang string, list ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.langs[lang]
	if !ok {
		set = make(map[string]struct{}, len(list))
		s.langs[lang] = set
	}
	for _, w := range list {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			set[w] = struct{}{}
		}
	}
}

// IsRecognizedWord reports membership; unknown languages recognize nothing.
func (s *Set) IsRecognizedWord(word, language string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.langs[language][strings.ToLower(word)]
	return ok, nil
}

// Len returns the number of words known for lang.
func (s *Set) Len(lang string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.langs[lang])
}

// Words returns the sorted word list for lang.
func (s *Set) Words(lang string) []string {
	s.mu.RLock()
	out := make([]string, 0, len(s.langs[lang]))
	for w := range s.langs[lang] {
		out = append(out, w)
	}
	s.mu.RUnlock()
	sort.Strings(out)
	return out
}

// Suggest returns up to max known words close to word that keep accepts.
func (s *Set) Suggest(word, lang string, max int, keep func(string) bool) []string {
	return Suggest(s.Words(lang), word, max, keep)
}
