package telemetry

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure Go SQLite driver
)

// maxZeroResultQueries bounds the zero-result log; the oldest entries are
// pruned once the cap is exceeded.
const maxZeroResultQueries = 100

// Store persists query metrics in SQLite.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the metrics database at path.
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create telemetry directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open telemetry db: %w", err)
	}
	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS query_terms (
		term TEXT PRIMARY KEY,
		count INTEGER NOT NULL DEFAULT 1,
		last_seen TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_query_terms_count ON query_terms(count DESC);

	CREATE TABLE IF NOT EXISTS zero_result_queries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		query TEXT NOT NULL,
		timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS query_latency_stats (
		date TEXT NOT NULL,
		bucket TEXT NOT NULL,
		count INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (date, bucket)
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create telemetry schema: %w", err)
	}
	return nil
}

// Record persists one query event.
func (s *Store) Record(ev QueryEvent) error {
	for _, term := range ev.Terms() {
		if _, err := s.db.Exec(`
			INSERT INTO query_terms (term, count, last_seen) VALUES (?, 1, CURRENT_TIMESTAMP)
			ON CONFLICT(term) DO UPDATE SET count = count + 1, last_seen = CURRENT_TIMESTAMP`,
			term,
		); err != nil {
			return fmt.Errorf("record query term: %w", err)
		}
	}

	if ev.IsZeroResult() {
		if _, err := s.db.Exec(`INSERT INTO zero_result_queries (query) VALUES (?)`, ev.Query); err != nil {
			return fmt.Errorf("record zero-result query: %w", err)
		}
		if _, err := s.db.Exec(`
			DELETE FROM zero_result_queries WHERE id NOT IN (
				SELECT id FROM zero_result_queries ORDER BY id DESC LIMIT ?
			)`, maxZeroResultQueries,
		); err != nil {
			return fmt.Errorf("prune zero-result queries: %w", err)
		}
	}

	date := ev.Timestamp
	if date.IsZero() {
		date = time.Now()
	}
	if _, err := s.db.Exec(`
		INSERT INTO query_latency_stats (date, bucket, count) VALUES (?, ?, 1)
		ON CONFLICT(date, bucket) DO UPDATE SET count = count + 1`,
		date.Format("2006-01-02"), string(LatencyToBucket(ev.Latency)),
	); err != nil {
		return fmt.Errorf("record latency: %w", err)
	}
	return nil
}

// TermCount is a query term with its recorded frequency.
type TermCount struct {
	Term  string
	Count int
}

// TopTerms returns the n most frequent query terms.
func (s *Store) TopTerms(n int) ([]TermCount, error) {
	rows, err := s.db.Query(`SELECT term, count FROM query_terms ORDER BY count DESC, term ASC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query top terms: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []TermCount
	for rows.Next() {
		var tc TermCount
		if err := rows.Scan(&tc.Term, &tc.Count); err != nil {
			return nil, fmt.Errorf("scan term row: %w", err)
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

// ZeroResultQueries returns up to n recent queries that found nothing,
// newest first.
func (s *Store) ZeroResultQueries(n int) ([]string, error) {
	rows, err := s.db.Query(`SELECT query FROM zero_result_queries ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query zero-result log: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, fmt.Errorf("scan zero-result row: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
