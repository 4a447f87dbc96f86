package daily

import (
	"testing"
	"time"
)

func TestDateKeyIsUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	d := time.Date(2026, 3, 2, 5, 0, 0, 0, loc)
	if got := DateKey(d); got != "2026-03-01" {
		t.Fatalf("DateKey=%q want=2026-03-01", got)
	}
}

func TestWordIndexDeterministic(t *testing.T) {
	d := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	a := WordIndex(d, "salt", 50)
	b := WordIndex(d.Add(3*time.Hour), "salt", 50)
	if a != b {
		t.Fatalf("same day gave %d and %d", a, b)
	}
	if a < 0 || a >= 50 {
		t.Fatalf("index %d out of range", a)
	}
	if WordIndex(d, "salt", 0) != 0 {
		t.Fatalf("empty list must yield 0")
	}
}

func TestWordIndexVariesAcrossDays(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seen := map[int]bool{}
	for i := 0; i < 30; i++ {
		seen[WordIndex(start.AddDate(0, 0, i), "salt", 1000)] = true
	}
	if len(seen) < 10 {
		t.Fatalf("expected varied indexes, got %d distinct", len(seen))
	}
}

func TestRoot(t *testing.T) {
	list := []string{"silkworm", "airplane", "alphabet"}
	d := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	got := Root(d, "salt", list)
	if got != list[WordIndex(d, "salt", len(list))] {
		t.Fatalf("Root=%q inconsistent with WordIndex", got)
	}
	if Root(d, "salt", nil) != "" {
		t.Fatalf("empty list must yield empty root")
	}
}
