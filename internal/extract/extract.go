// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract reads quiz cards out of a two-column PDF document.
// It slices each page into two column regions, feeds the column text
// through the tokenizer, and runs one parse.Machine across the whole
// document so a card may continue over a column or page boundary.
// See docs/ARCHITECTURE § Extraction.
package extract

import (
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/cardex/internal/parse"
	"github.com/pdiddy/cardex/pkg/types"
)

// Extract parses the PDF at path and returns the completed cards in
// document reading order: column 0 before column 1 on each page, pages in
// input order. Incomplete cards are dropped, not fatal; each one is
// reported on w with its partial contents. Failure to open or read the
// PDF is fatal.
func Extract(path string, schema parse.Schema, w io.Writer) ([]types.QuizCard, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	// One machine for the whole document. Resetting it per column or
	// page would sever cards that continue across a boundary.
	m := parse.NewMachine(schema)

	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		texts := p.Content().Text
		for col := 0; col < columnCount; col++ {
			text := columnText(p, texts, col)
			if text == "" {
				continue
			}
			m.FeedAll(parse.Words(text))
		}
	}

	m.Finish()

	for _, c := range m.Dropped() {
		fmt.Fprintf(w, "dropped incomplete card: %s\n", c)
	}

	return m.Cards(), nil
}
