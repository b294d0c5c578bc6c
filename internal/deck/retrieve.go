// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package deck

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/cardex/pkg/types"
)

// QueryOpts holds parameters for deck queries.
type QueryOpts struct {
	// Query is the FTS5 full-text search string, matched against the
	// ref, question, and answer text.
	Query string

	// Type filters by card type (e.g. "SIT").
	Type string

	// Club filters by club.
	Club string

	// Ref filters by reference prefix (e.g. "John 3" matches
	// "John 3:16").
	Ref string

	// Source filters by the source file the cards were ingested from.
	Source string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOpts) IsEmpty() bool {
	return q.Query == "" && q.Type == "" && q.Club == "" && q.Ref == "" && q.Source == ""
}

// QueryResult is a QuizCard with its ingest provenance.
type QueryResult struct {
	types.QuizCard `yaml:",inline"`
	Source         string `json:"source" yaml:"source"`
	Seq            int    `json:"seq" yaml:"seq"`
}

// Retrieve queries the deck with optional full-text search and structured
// filters. Full-text results are ranked by relevance; structured-only
// queries come back in ingest order (source, then sequence).
func (s *Store) Retrieve(ctx context.Context, opts QueryOpts) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT c.source, c.seq, c.type, c.ref, c.extra_info, c.club, c.question, c.answer
			FROM cards_fts
			JOIN cards c ON c.rowid = cards_fts.rowid
			WHERE cards_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT c.source, c.seq, c.type, c.ref, c.extra_info, c.club, c.question, c.answer
			FROM cards c
			WHERE 1=1`)
	}

	if opts.Type != "" {
		qb.WriteString(` AND c.type = ?`)
		args = append(args, opts.Type)
	}
	if opts.Club != "" {
		qb.WriteString(` AND c.club = ?`)
		args = append(args, opts.Club)
	}
	if opts.Ref != "" {
		qb.WriteString(` AND c.ref LIKE ?`)
		args = append(args, opts.Ref+"%")
	}
	if opts.Source != "" {
		qb.WriteString(` AND c.source = ?`)
		args = append(args, opts.Source)
	}

	if useFTS {
		qb.WriteString(` ORDER BY cards_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY c.source, c.seq`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying deck: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var qr QueryResult
		if err := rows.Scan(
			&qr.Source, &qr.Seq,
			&qr.Type, &qr.Ref, &qr.ExtraInfo, &qr.Club, &qr.Question, &qr.Answer,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, qr)
	}

	return results, rows.Err()
}
