package dictionary

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const lookupTimeout = 2 * time.Second

// SQLite looks words up in the dictionary table.
// The schema is created by the embedded migrations (assets/sql).
type SQLite struct {
	db *sql.DB
}

// NewSQLite wraps an open database handle.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

// IsRecognizedWord looks word up by primary key.
func (s *SQLite) IsRecognizedWord(word, language string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM dictionary WHERE language=? AND word=?`,
		language, strings.ToLower(word),
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: lookup %q: %v", ErrUnavailable, word, err)
	}
	return true, nil
}

// Import inserts words for language in one transaction, skipping duplicates.
// It returns the number of rows added.
func (s *SQLite) Import(ctx context.Context, language string, list []string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO dictionary(language, word) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare import: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, w := range list {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		res, err := stmt.ExecContext(ctx, language, w)
		if err != nil {
			return 0, fmt.Errorf("import %q: %w", w, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return added, nil
}

// Count returns the number of words stored for language.
func (s *SQLite) Count(ctx context.Context, language string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM dictionary WHERE language=?`, language,
	).Scan(&n)
	return n, err
}

// Suggest returns up to max stored words close to word that keep accepts.
// Lookup failures yield no suggestions.
func (s *SQLite) Suggest(word, language string, max int, keep func(string) bool) []string {
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	n := len(word)
	limit := distanceLimit(n)
	rows, err := s.db.QueryContext(ctx,
		`SELECT word FROM dictionary WHERE language=? AND length(word) BETWEEN ? AND ?`,
		language, n-limit, n+limit,
	)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var candidates []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil
		}
		candidates = append(candidates, w)
	}
	if rows.Err() != nil {
		return nil
	}
	return Suggest(candidates, word, max, keep)
}
