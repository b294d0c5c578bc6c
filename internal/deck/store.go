// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package deck persists extracted quiz cards in a local SQLite database
// with full-text search over their question, answer, and reference text.
// See docs/ARCHITECTURE § Deck Store.
package deck

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/cardex/internal/render"
	"github.com/pdiddy/cardex/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "deck.db"
)

// Store manages the deck SQLite database.
type Store struct {
	db         *sql.DB
	deckDir    string
	maxResults int
}

// NewStore opens or creates the deck database at deckDir/index/deck.db,
// creating the schema if it does not exist.
func NewStore(cfg types.DeckConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.DeckDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, deckDir: cfg.DeckDir, maxResults: maxResults}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS cards (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			seq INTEGER NOT NULL,
			type TEXT NOT NULL,
			ref TEXT NOT NULL,
			extra_info TEXT,
			club TEXT,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			UNIQUE(source, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cards_type ON cards(type)`,
		`CREATE INDEX IF NOT EXISTS idx_cards_club ON cards(club)`,
		`CREATE TABLE IF NOT EXISTS ingest_status (
			source TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='cards_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE cards_fts USING fts5(ref, question, answer, content=cards, content_rowid=rowid)`,
			`CREATE TRIGGER cards_ai AFTER INSERT ON cards BEGIN
				INSERT INTO cards_fts(rowid, ref, question, answer) VALUES (new.rowid, new.ref, new.question, new.answer);
			END`,
			`CREATE TRIGGER cards_ad AFTER DELETE ON cards BEGIN
				INSERT INTO cards_fts(cards_fts, rowid, ref, question, answer) VALUES('delete', old.rowid, old.ref, old.question, old.answer);
			END`,
			`CREATE TRIGGER cards_au AFTER UPDATE ON cards BEGIN
				INSERT INTO cards_fts(cards_fts, rowid, ref, question, answer) VALUES('delete', old.rowid, old.ref, old.question, old.answer);
				INSERT INTO cards_fts(rowid, ref, question, answer) VALUES (new.rowid, new.ref, new.question, new.answer);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from a deck ingest run.
type IngestSummary struct {
	Ingested int
	Updated  int
	Skipped  int
	Failed   int
}

// Total returns the number of files processed.
func (s IngestSummary) Total() int {
	return s.Ingested + s.Updated + s.Skipped + s.Failed
}

// HasFailures reports whether any file failed ingestion.
func (s IngestSummary) HasFailures() bool {
	return s.Failed > 0
}

// Ingest loads cardex CSV files into the deck. A file whose modification
// time matches the last ingest is skipped; a changed file replaces its
// previous cards. The source key is the file's base name.
func (s *Store) Ingest(ctx context.Context, csvPaths []string, w io.Writer) (IngestSummary, error) {
	var summary IngestSummary

	for _, path := range csvPaths {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		source := filepath.Base(path)

		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", source, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM ingest_status WHERE source = ?`, source,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", source)
			summary.Skipped++
			continue
		}
		isUpdate := err == nil

		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", source, err)
			summary.Failed++
			continue
		}
		cards, err := render.ReadCSV(f)
		f.Close()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: parse error: %v\n", source, err)
			summary.Failed++
			continue
		}

		if err := s.ingestSource(ctx, source, cards, modTime); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", source, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d cards)\n", source, len(cards))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "ingested %s (%d cards)\n", source, len(cards))
			summary.Ingested++
		}
	}

	fmt.Fprintf(w, "\ningested: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Ingested, summary.Updated, summary.Skipped, summary.Failed)

	// Refresh the export files after a successful ingest.
	if summary.Ingested > 0 || summary.Updated > 0 {
		if err := s.ExportYAML(ctx, QueryOpts{}); err != nil {
			fmt.Fprintf(w, "warning: export.yaml write failed: %v\n", err)
		}
	}

	return summary, nil
}

// ingestSource replaces the cards for one source file in a transaction.
func (s *Store) ingestSource(ctx context.Context, source string, cards []types.QuizCard, modTime string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cards WHERE source = ?`, source); err != nil {
		return fmt.Errorf("clearing previous cards: %w", err)
	}

	for i, c := range cards {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO cards (source, seq, type, ref, extra_info, club, question, answer)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			source, i, c.Type, c.Ref, c.ExtraInfo, c.Club, c.Question, c.Answer)
		if err != nil {
			return fmt.Errorf("inserting card %d: %w", i, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO ingest_status (source, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(source) DO UPDATE SET file_mod_time = excluded.file_mod_time`,
		source, modTime)
	if err != nil {
		return fmt.Errorf("recording ingest status: %w", err)
	}

	return tx.Commit()
}
