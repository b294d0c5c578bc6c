// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render serializes extracted quiz cards: CSV for spreadsheet
// import, or a reformatted PDF rendered through an HTML card template.
// See docs/ARCHITECTURE § Output.
package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/cardex/internal/parse"
	"github.com/pdiddy/cardex/pkg/types"
)

// WriteCSV writes the cards to w in the schema's column layout: a header
// row of column titles, then one row per card with every value trimmed.
// Every value is quoted, including the header, so downstream consumers
// never have to guess at quoting.
func WriteCSV(w io.Writer, schema parse.Schema, cards []types.QuizCard) error {
	if err := writeQuotedRow(w, schema.ColumnTitles()); err != nil {
		return err
	}
	for _, c := range cards {
		if err := writeQuotedRow(w, schema.Row(c)); err != nil {
			return err
		}
	}
	return nil
}

// writeQuotedRow emits one CSV record with all fields quoted. The stdlib
// csv.Writer quotes only when a field needs it, which breaks the
// all-values-quoted output contract, so writing is done by hand.
func writeQuotedRow(w io.Writer, fields []string) error {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	_, err := fmt.Fprintln(w, strings.Join(quoted, ","))
	return err
}

// ReadCSV parses a cardex CSV back into cards. The header row decides
// which columns are present, so both the standard and sit layouts (and
// custom schema layouts) round-trip. Unknown columns are rejected.
func ReadCSV(r io.Reader) ([]types.QuizCard, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 0 // all records match the header width

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty CSV: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	fields := make([]parse.Field, len(header))
	for i, title := range header {
		f, ok := parse.FieldByTitle(title)
		if !ok {
			return nil, fmt.Errorf("unknown CSV column %q", title)
		}
		fields[i] = f
	}

	var cards []types.QuizCard
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return cards, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV record: %w", err)
		}
		var c types.QuizCard
		for i, value := range record {
			parse.SetField(&c, fields[i], strings.TrimSpace(value))
		}
		cards = append(cards, c)
	}
}
