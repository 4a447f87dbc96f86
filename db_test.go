package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/joomin-choi/wordscramble/assets"
	"github.com/joomin-choi/wordscramble/internal/config"
)

func TestMigrateIsIdempotent(t *testing.T) {
	db, err := openDB(filepath.Join(t.TempDir(), "nested", "dict.db"))
	if err != nil {
		t.Fatalf("openDB: %v", err)
	}
	defer db.Close()

	for i := 0; i < 2; i++ {
		if err := migrate(db, assets.Migrations()); err != nil {
			t.Fatalf("migrate pass %d: %v", i, err)
		}
	}
	var applied int
	if err := db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&applied); err != nil {
		t.Fatal(err)
	}
	if applied != 1 {
		t.Fatalf("applied=%d want=1", applied)
	}
	if _, err := db.Exec(`INSERT INTO dictionary(language, word) VALUES ('en', 'silk')`); err != nil {
		t.Fatalf("dictionary table missing: %v", err)
	}
}

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	cfg := config.Load()
	cfg.Game.Language = "en"
	cfg.Dictionary.Backend = backend
	cfg.Dictionary.File = ""
	cfg.Dictionary.DBPath = filepath.Join(t.TempDir(), "dictionary.db")
	return cfg
}

func TestOpenDictionaryEmbedded(t *testing.T) {
	d, err := openDictionary(context.Background(), testConfig(t, config.BackendEmbedded))
	if err != nil {
		t.Fatalf("openDictionary: %v", err)
	}
	defer d.close()
	if ok, _ := d.oracle.IsRecognizedWord("silk", "en"); !ok {
		t.Fatalf("embedded dictionary should know silk")
	}
	if d.size == 0 {
		t.Fatalf("expected a non-empty dictionary")
	}
}

func TestOpenDictionarySQLiteSeedsOnce(t *testing.T) {
	cfg := testConfig(t, config.BackendSQLite)
	custom := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(custom, []byte("silk\nworm\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.Dictionary.File = custom

	d, err := openDictionary(context.Background(), cfg)
	if err != nil {
		t.Fatalf("openDictionary: %v", err)
	}
	if d.size != 2 {
		t.Fatalf("seeded %d words want=2", d.size)
	}
	if ok, err := d.oracle.IsRecognizedWord("worm", "en"); !ok || err != nil {
		t.Fatalf("expected worm recognized, got %v %v", ok, err)
	}
	d.close()

	// Reopening keeps the stored words and does not reseed.
	cfg.Dictionary.File = filepath.Join(t.TempDir(), "missing.txt")
	d, err = openDictionary(context.Background(), cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer d.close()
	if d.size != 2 {
		t.Fatalf("size=%d want=2", d.size)
	}
}

func TestOpenDictionaryUnknownBackend(t *testing.T) {
	if _, err := openDictionary(context.Background(), testConfig(t, "carrier-pigeon")); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
