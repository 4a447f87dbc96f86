// internal/words/words.go
//
// Root word list management.
//
// Responsibilities:
//   - Load the root word list from an environment-provided file or fall back
//     to the embedded start.txt.
//   - Distinguish "source could not be read" (fatal at startup) from
//     "source read but empty" (the engine falls back to a default root).
//
// Format: one word per line; lines are trimmed and lowercased, blank lines
// and '#' comments are dropped.
//
// Initialization is run once (sync.Once).

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/joomin-choi/wordscramble/assets"
)

var (
	// ErrSourceUnavailable means no word source could be read at all.
	ErrSourceUnavailable = errors.New("words: source unavailable")
	// ErrEmptyList means the source was read but produced no words.
	ErrEmptyList = errors.New("words: list is empty")
)

var (
	initOnce   sync.Once
	list       []string
	initialErr error
)

// Init loads the root word list exactly once.
// An empty path selects the embedded list.
func Init(path string) error {
	initOnce.Do(func() {
		list, initialErr = Load(path)
	})
	return initialErr
}

// Load reads a word list from path, or from the embedded start.txt when
// path is empty. It never returns a nil error with an unusable source;
// a readable but empty source returns ErrEmptyList alongside the empty list.
func Load(path string) ([]string, error) {
	var (
		out []string
		err error
	)
	if path != "" {
		out, err = LoadFile(path)
	} else {
		out, err = assets.StartWords()
		if err != nil {
			err = fmt.Errorf("%w: embedded start.txt: %v", ErrSourceUnavailable, err)
		}
	}
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, ErrEmptyList
	}
	return out, nil
}

// LoadFile reads one word per line from a file.
func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer f.Close()
	out, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrSourceUnavailable, path, err)
	}
	return out, nil
}

// Parse splits r on newlines into trimmed, lowercased, non-blank words.
func Parse(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.ToLower(strings.TrimSpace(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		out = append(out, w)
	}
	return out, sc.Err()
}

// List returns the loaded root word list (nil before Init).
func List() []string {
	return list
}

// Stats returns the number of loaded root words.
func Stats() int {
	return len(list)
}
