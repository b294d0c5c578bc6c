package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cardex/internal/parse"
	"github.com/pdiddy/cardex/pkg/types"
)

var testCards = []types.QuizCard{
	{
		Type:      "SIT",
		Ref:       "John 3:16",
		ExtraInfo: "first half",
		Club:      "East",
		Question:  "Who wrote this?",
		Answer:    "John",
	},
	{
		Type:     "MCQ",
		Ref:      "Gen 1:1",
		Question: `What does "beginning" mean?`,
		Answer:   "The start",
	},
}

func TestWriteCSVAllValuesQuoted(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, parse.SIT(), testCards))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, `"Type","Ref","Extra Info","Club","Question","Answer"`, lines[0])
	assert.Equal(t, `"SIT","John 3:16","first half","East","Who wrote this?","John"`, lines[1])
	// Embedded quotes are doubled, and every value stays quoted.
	assert.Equal(t, `"MCQ","Gen 1:1","","","What does ""beginning"" mean?","The start"`, lines[2])
}

func TestWriteCSVStandardLayoutOmitsExtraInfo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, parse.Standard(), testCards))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, `"Type","Ref","Club","Question","Answer"`, lines[0])
	assert.NotContains(t, lines[1], "first half")
}

func TestWriteCSVTrimsValues(t *testing.T) {
	cards := []types.QuizCard{{
		Type: "  SIT ", Ref: " Gen 1:1", Question: "Q? ", Answer: " A ",
	}}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, parse.Standard(), cards))
	assert.Contains(t, buf.String(), `"SIT","Gen 1:1","","Q?","A"`)
}

func TestCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, parse.SIT(), testCards))

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(testCards))
	for i := range testCards {
		assert.Equal(t, testCards[i].Trimmed(), got[i], "card %d", i)
	}
}

func TestCSVRoundTripStandard(t *testing.T) {
	cards := []types.QuizCard{{Type: "Q", Ref: "Gen 1:1", Question: "Q?", Answer: "A"}}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, parse.Standard(), cards))

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, cards[0], got[0])
}

func TestReadCSVRejectsUnknownColumn(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(`"Type","Mystery"` + "\n"))
	assert.Error(t, err)
}

func TestReadCSVEmptyInput(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err)
}
