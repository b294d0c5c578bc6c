package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cardex/pkg/types"
)

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, types.OutputCSV, f)

	f, err = ParseFormat("pdf")
	require.NoError(t, err)
	assert.Equal(t, types.OutputPDF, f)

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestCheckExtension(t *testing.T) {
	tests := []struct {
		path   string
		format types.OutputFormat
		ok     bool
	}{
		{"cards.csv", types.OutputCSV, true},
		{"cards.CSV", types.OutputCSV, true},
		{"out/cards.pdf", types.OutputPDF, true},
		{"cards.pdf", types.OutputCSV, false},
		{"cards.csv", types.OutputPDF, false},
		{"cards", types.OutputCSV, false},
	}
	for _, tt := range tests {
		err := CheckExtension(tt.path, tt.format)
		if tt.ok {
			assert.NoError(t, err, tt.path)
		} else {
			assert.Error(t, err, tt.path)
		}
	}
}

func TestCardHTMLEscapesAndConcatenates(t *testing.T) {
	cards := []types.QuizCard{
		{Type: "SIT", Ref: "Gen 1:1", Question: "What is <b>bold</b>?", Answer: "A"},
		{Type: "MCQ", Ref: "Gen 1:2", Question: "Q2?", Answer: "A2"},
	}

	html, err := CardHTML(cards, "")
	require.NoError(t, err)

	// One card block per record, with template escaping applied.
	assert.Equal(t, 2, strings.Count(html, "page-break-inside"))
	assert.Contains(t, html, "&lt;b&gt;bold&lt;/b&gt;")
	assert.Contains(t, html, "Gen 1:2")
}

func TestCardHTMLCustomTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "card.html")
	require.NoError(t, os.WriteFile(path, []byte(`<p>{{.Type}}|{{.Answer}}</p>`), 0o644))

	html, err := CardHTML([]types.QuizCard{{Type: "SIT", Answer: "A"}}, path)
	require.NoError(t, err)
	assert.Equal(t, "<p>SIT|A</p>", html)
}

func TestCardHTMLMissingTemplate(t *testing.T) {
	_, err := CardHTML(nil, "does/not/exist.html")
	assert.Error(t, err)
}
