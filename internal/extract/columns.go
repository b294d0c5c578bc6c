// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// columnCount is fixed: the source study guides lay cards out in
	// two equal-width columns per page.
	columnCount = 2

	// rowTolerance groups positioned fragments whose baselines are
	// within this many points into one text row.
	rowTolerance = 2.0
)

// wordGap is the horizontal distance beyond which two adjacent fragments
// on a row are separate words. Kerned pieces of one word sit closer than
// a fifth of the font size; real inter-word gaps are wider.
func wordGap(t pdf.Text) float64 {
	if t.FontSize > 0 {
		return t.FontSize * 0.2
	}
	return 1.0
}

// columnText returns the plain text confined to column i (0 or 1) of the
// page, assembled in reading order: rows top to bottom, fragments left to
// right, one line per row. An empty region yields "".
func columnText(p pdf.Page, texts []pdf.Text, column int) string {
	left, right := columnBounds(p, column)
	return assembleText(columnSlice(texts, left, right))
}

// columnBounds computes the horizontal extent of column i: region i spans
// [i*w/2, (i+1)*w/2] of the page width, full page height.
func columnBounds(p pdf.Page, column int) (left, right float64) {
	x0, x1 := pageExtent(p)
	width := x1 - x0
	left = x0 + float64(column)*width/columnCount
	right = x0 + float64(column+1)*width/columnCount
	return left, right
}

// pageExtent returns the horizontal MediaBox extent, walking up the page
// tree for inherited attributes. Falls back to US Letter.
func pageExtent(p pdf.Page) (x0, x1 float64) {
	box := p.V.Key("MediaBox")
	for node := p.V; box.IsNull() && !node.IsNull(); {
		node = node.Key("Parent")
		box = node.Key("MediaBox")
	}
	if box.IsNull() || box.Len() < 4 {
		return 0, 612
	}
	return box.Index(0).Float64(), box.Index(2).Float64()
}

// columnSlice keeps the fragments whose origin lies within [left, right),
// dropping whitespace-only fragments.
func columnSlice(texts []pdf.Text, left, right float64) []pdf.Text {
	var kept []pdf.Text
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		if t.X >= left && t.X < right {
			kept = append(kept, t)
		}
	}
	return kept
}

type textRow struct {
	y     float64
	texts []pdf.Text
}

// assembleText orders fragments into lines of text. PDF user space has
// its origin at the bottom left, so reading order is descending Y.
func assembleText(texts []pdf.Text) string {
	var rows []textRow
	for _, t := range texts {
		placed := false
		for i := range rows {
			if abs(rows[i].y-t.Y) < rowTolerance {
				rows[i].texts = append(rows[i].texts, t)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, textRow{y: t.Y, texts: []pdf.Text{t}})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })

	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = assembleLine(row.texts)
	}
	return strings.Join(lines, "\n")
}

// assembleLine joins a row's fragments left to right, inserting a space
// only across inter-word gaps.
func assembleLine(texts []pdf.Text) string {
	sort.SliceStable(texts, func(i, j int) bool { return texts[i].X < texts[j].X })

	var b strings.Builder
	for i, t := range texts {
		if i > 0 {
			prev := texts[i-1]
			if t.X-(prev.X+prev.W) > wordGap(t) {
				b.WriteString(" ")
			}
		}
		b.WriteString(t.S)
	}
	return b.String()
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
