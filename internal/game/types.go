// internal/game/types.go
//
// Core type definitions for the word-scramble engine.
// Defines:
//   - Kind:   outcome of a submission (accepted or one rejection reason).
//   - Result: the value returned for every non-empty submission.
//   - Round:  a read-only snapshot of the current round.
//   - Oracle: the spelling-validity capability the engine depends on.

package game

import "fmt"

// Kind identifies the outcome of a submission.
type Kind string

const (
	KindAccepted     Kind = "accepted"
	KindAlreadyUsed  Kind = "already_used"
	KindNotDerivable Kind = "not_derivable"
	KindNotAWord     Kind = "not_a_word"
	KindTooShort     Kind = "too_short"
	KindIsRootWord   Kind = "is_root_word"
)

// Result is the outcome of a single submission.
type Result struct {
	Kind  Kind   `json:"kind"`
	Word  string `json:"word"`            // normalized candidate
	Delta int    `json:"delta,omitempty"` // score delta, accepted only
	Root  string `json:"-"`               // root word at submission time
}

// Accepted reports whether the word was added to the round.
func (r Result) Accepted() bool { return r.Kind == KindAccepted }

// Title is the short heading shown for the outcome.
func (r Result) Title() string {
	switch r.Kind {
	case KindAccepted:
		return "Nice!"
	case KindAlreadyUsed:
		return "Word used already"
	case KindNotDerivable:
		return "Word not possible"
	case KindNotAWord:
		return "Word not recognized"
	case KindTooShort:
		return "Word too short"
	case KindIsRootWord:
		return "Cheeky"
	}
	return ""
}

// Message is the longer explanation shown for the outcome.
func (r Result) Message() string {
	switch r.Kind {
	case KindAccepted:
		if r.Delta == 1 {
			return fmt.Sprintf("'%s' is worth 1 point", r.Word)
		}
		return fmt.Sprintf("'%s' is worth %d points", r.Word, r.Delta)
	case KindAlreadyUsed:
		return "Be more original!"
	case KindNotDerivable:
		return fmt.Sprintf("You can't spell that word from '%s'!", r.Root)
	case KindNotAWord:
		return "You can't just make them up, you know!"
	case KindTooShort:
		return "Word has to be longer than 3 letters"
	case KindIsRootWord:
		return "Word can't be the starting word"
	}
	return ""
}

// Round is a snapshot of the round state.
// UsedWords is most-recent-first and owned by the caller.
type Round struct {
	Root      string   `json:"root"`
	UsedWords []string `json:"usedWords"`
	Score     int      `json:"score"`
}

// Oracle reports whether word is a recognized word in language.
// An error means the oracle could not answer.
type Oracle interface {
	IsRecognizedWord(word, language string) (bool, error)
}

// OracleFunc adapts a plain function to Oracle.
type OracleFunc func(word, language string) (bool, error)

// IsRecognizedWord calls f(word, language).
func (f OracleFunc) IsRecognizedWord(word, language string) (bool, error) {
	return f(word, language)
}

// Rules lists the submission rules and scoring, in evaluation order.
var Rules = []string{
	"Word has to be original",
	"Word has to be possible from the given word",
	"Word has to be real",
	"Word has to be more than 3 letters",
	"Word can't be the starting word",
	"Scoring: 1 point for a 4 letter word, 1 point for every extra letter after",
}
