package game

import (
	"errors"
	"reflect"
	"testing"
)

// dict is a fixed-vocabulary oracle for tests.
func dict(words ...string) Oracle {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return OracleFunc(func(word, _ string) (bool, error) {
		return set[word], nil
	})
}

func first(int) int { return 0 }

func newRound(t *testing.T, root string, o Oracle) *Engine {
	t.Helper()
	e := New(o, WithPicker(first))
	if got := e.StartGame([]string{root}); got != root {
		t.Fatalf("StartGame()=%q want=%q", got, root)
	}
	return e
}

func TestAcceptSilk(t *testing.T) {
	e := newRound(t, "silkworm", dict("silk", "silkworm"))
	res, ok := e.Submit("silk")
	if !ok {
		t.Fatalf("expected a result")
	}
	if res.Kind != KindAccepted || res.Word != "silk" || res.Delta != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	if e.Score() != 1 {
		t.Fatalf("score=%d want=1", e.Score())
	}
	if !reflect.DeepEqual(e.UsedWords(), []string{"silk"}) {
		t.Fatalf("used=%v", e.UsedWords())
	}
}

func TestRootWordRejected(t *testing.T) {
	e := newRound(t, "silkworm", dict("silkworm"))
	res, _ := e.Submit("silkworm")
	if res.Kind != KindIsRootWord {
		t.Fatalf("kind=%s want=%s", res.Kind, KindIsRootWord)
	}
	if e.Score() != 0 || len(e.UsedWords()) != 0 {
		t.Fatalf("rejection must not change state: %+v", e.Snapshot())
	}
}

func TestRoomRejectsMoonAndMoor(t *testing.T) {
	e := newRound(t, "room", dict())
	res, _ := e.Submit("moon")
	// "moon" needs an 'n', which "room" lacks.
	if res.Kind != KindNotDerivable {
		t.Fatalf("kind=%s want=%s", res.Kind, KindNotDerivable)
	}
	res, _ = e.Submit("moor")
	if res.Kind != KindNotAWord {
		t.Fatalf("kind=%s want=%s", res.Kind, KindNotAWord)
	}
}

func TestDerivabilityRespectsMultiplicity(t *testing.T) {
	tests := []struct {
		word, root string
		want       bool
	}{
		{word: "moor", root: "room", want: true},
		{word: "roomy", root: "room", want: false},
		{word: "mooo", root: "room", want: false},
		{word: "silk", root: "silkworm", want: true},
		{word: "kiwi", root: "silkworm", want: false},
		{word: "", root: "room", want: true},
	}
	for _, tc := range tests {
		if got := CanSpell(tc.word, tc.root); got != tc.want {
			t.Fatalf("CanSpell(%q, %q)=%v want=%v", tc.word, tc.root, got, tc.want)
		}
	}
}

func TestRuleOrder(t *testing.T) {
	o := dict("silk", "owl", "slim")
	e := newRound(t, "silkworm", o)
	if res, _ := e.Submit("silk"); !res.Accepted() {
		t.Fatalf("setup: %+v", res)
	}

	tests := []struct {
		in   string
		want Kind
	}{
		{in: "silk", want: KindAlreadyUsed},
		{in: "zoo", want: KindNotDerivable},   // short and underivable
		{in: "zzzzzz", want: KindNotDerivable}, // underivable and unknown
		{in: "worm", want: KindNotAWord},       // derivable, unknown
		{in: "mil", want: KindNotAWord},        // short, unknown
		{in: "owl", want: KindTooShort},
		{in: "slim", want: KindAccepted},
	}
	for _, tc := range tests {
		res, ok := e.Submit(tc.in)
		if !ok {
			t.Fatalf("Submit(%q) produced no result", tc.in)
		}
		if res.Kind != tc.want {
			t.Fatalf("Submit(%q)=%s want=%s", tc.in, res.Kind, tc.want)
		}
	}
}

func TestNormalization(t *testing.T) {
	e := newRound(t, "silkworm", dict("silk"))
	res, ok := e.Submit("  SiLk\n")
	if !ok || res.Kind != KindAccepted || res.Word != "silk" {
		t.Fatalf("unexpected %+v ok=%v", res, ok)
	}
	res, _ = e.Submit("SILK")
	if res.Kind != KindAlreadyUsed {
		t.Fatalf("kind=%s want=%s", res.Kind, KindAlreadyUsed)
	}
}

func TestEmptySubmissionIsNoop(t *testing.T) {
	e := newRound(t, "silkworm", dict("silk"))
	e.Submit("silk")
	before := e.Snapshot()
	for _, in := range []string{"", "   ", "\t\n"} {
		res, ok := e.Submit(in)
		if ok || res != (Result{}) {
			t.Fatalf("Submit(%q) should be a no-op, got %+v ok=%v", in, res, ok)
		}
	}
	if !reflect.DeepEqual(before, e.Snapshot()) {
		t.Fatalf("state changed: %+v -> %+v", before, e.Snapshot())
	}
}

func TestScoringLaw(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{word: "abc", want: 0},
		{word: "abcd", want: 1},
		{word: "abcde", want: 2},
		{word: "abcdef", want: 3},
		{word: "abcdefgh", want: 5},
	}
	for _, tc := range tests {
		if got := ScoreFor(tc.word); got != tc.want {
			t.Fatalf("ScoreFor(%q)=%d want=%d", tc.word, got, tc.want)
		}
	}
}

func TestScoreMatchesHistory(t *testing.T) {
	e := newRound(t, "silkworm", dict("silk", "worm", "works", "milk", "slim", "skim"))
	for _, w := range []string{"silk", "works", "silk", "milk", "worm", "nope", "skim"} {
		e.Submit(w)
		if e.Score() != ScoreOf(e.UsedWords()) {
			t.Fatalf("after %q score=%d history=%v", w, e.Score(), e.UsedWords())
		}
	}
	want := []string{"skim", "worm", "milk", "works", "silk"}
	if !reflect.DeepEqual(e.UsedWords(), want) {
		t.Fatalf("used=%v want=%v", e.UsedWords(), want)
	}
	if e.Score() != 6 {
		t.Fatalf("score=%d want=6", e.Score())
	}
}

func TestStartGameResets(t *testing.T) {
	e := newRound(t, "silkworm", dict("silk", "worm"))
	e.Submit("silk")
	e.Submit("worm")
	root := e.StartGame([]string{"airplane"})
	if root != "airplane" || e.Root() != "airplane" {
		t.Fatalf("root=%q", e.Root())
	}
	if e.Score() != 0 || len(e.UsedWords()) != 0 {
		t.Fatalf("expected reset, got %+v", e.Snapshot())
	}
	if e.Restart() != "airplane" {
		t.Fatalf("Restart should reuse the last word list")
	}
}

func TestStartGameEmptyListFallsBack(t *testing.T) {
	e := New(dict())
	if got := e.StartGame(nil); got != DefaultRoot {
		t.Fatalf("StartGame(nil)=%q want=%q", got, DefaultRoot)
	}
	if got := e.StartGame([]string{"   "}); got != DefaultRoot {
		t.Fatalf("blank entry should fall back, got %q", got)
	}
}

func TestStartGamePicksFromList(t *testing.T) {
	list := []string{"alpha", "bravo", "charlie"}
	e := New(dict(), WithPicker(func(n int) int { return n - 1 }))
	if got := e.StartGame(list); got != "charlie" {
		t.Fatalf("StartGame()=%q want=charlie", got)
	}
	e = New(dict())
	for i := 0; i < 20; i++ {
		got := e.StartGame(list)
		if got != "alpha" && got != "bravo" && got != "charlie" {
			t.Fatalf("root %q not from list", got)
		}
	}
}

func TestOracleFailureIsNotAWord(t *testing.T) {
	down := OracleFunc(func(string, string) (bool, error) {
		return true, errors.New("connection refused")
	})
	e := newRound(t, "silkworm", down)
	res, ok := e.Submit("silk")
	if !ok || res.Kind != KindNotAWord {
		t.Fatalf("expected not_a_word, got %+v", res)
	}
}

func TestLanguagePassedToOracle(t *testing.T) {
	var seen string
	o := OracleFunc(func(_, lang string) (bool, error) {
		seen = lang
		return true, nil
	})
	e := New(o, WithLanguage("fr"), WithPicker(first))
	e.StartGame([]string{"silkworm"})
	e.Submit("silk")
	if seen != "fr" {
		t.Fatalf("language=%q want=fr", seen)
	}
}

func TestResultMessages(t *testing.T) {
	r := Result{Kind: KindNotDerivable, Word: "kiwi", Root: "silkworm"}
	if r.Title() != "Word not possible" {
		t.Fatalf("title=%q", r.Title())
	}
	if r.Message() != "You can't spell that word from 'silkworm'!" {
		t.Fatalf("message=%q", r.Message())
	}
	acc := Result{Kind: KindAccepted, Word: "works", Delta: 2}
	if acc.Message() != "'works' is worth 2 points" {
		t.Fatalf("message=%q", acc.Message())
	}
}

func TestPlayable(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{word: "worm", want: true},
		{word: "word", want: false},
		{word: "owl", want: false},
		{word: "silkworm", want: false},
	}
	for _, tc := range tests {
		if got := Playable(tc.word, "silkworm"); got != tc.want {
			t.Fatalf("Playable(%q)=%v want=%v", tc.word, got, tc.want)
		}
	}
}
