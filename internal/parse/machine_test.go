package parse

import (
	"slices"
	"testing"

	"github.com/pdiddy/cardex/pkg/types"
)

func runMachine(s Schema, tokens []string) *Machine {
	m := NewMachine(s)
	for _, tok := range tokens {
		m.Feed(tok)
	}
	m.Finish()
	return m
}

func TestMachineSITCard(t *testing.T) {
	tokens := []string{
		"Type:SIT", "Ref:", "John", "3:16", "extra", "words",
		"Club", "East",
		"Question:", "Who", "wrote", "this?",
		"Answer:", "John",
	}
	m := runMachine(SIT(), tokens)

	if len(m.Dropped()) != 0 {
		t.Fatalf("dropped %d cards, want 0", len(m.Dropped()))
	}
	cards := m.Cards()
	if len(cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(cards))
	}
	want := types.QuizCard{
		Type:      "SIT",
		Ref:       "John 3:16",
		ExtraInfo: "extra words",
		Club:      "East",
		Question:  "Who wrote this?",
		Answer:    "John",
	}
	if cards[0] != want {
		t.Errorf("card = %s\nwant   %s", cards[0], want)
	}
}

func TestMachineNoHeadersDiscardsEverything(t *testing.T) {
	m := runMachine(Standard(), []string{"just", "some", "loose", "words", "5:22"})
	if len(m.Cards()) != 0 {
		t.Errorf("got %d cards, want 0", len(m.Cards()))
	}
	if len(m.Dropped()) != 0 {
		t.Errorf("dropped %d cards, want 0", len(m.Dropped()))
	}
}

func TestMachineVerseMarkerOnlyWhileRefOpen(t *testing.T) {
	// The same digits:digits token inside a question is a plain word.
	tokens := []string{
		"Type:MCQ", "Ref:", "Gal", "5:22",
		"Question:", "What", "is", "in", "5:22?",
		"Answer:", "Fruit",
	}
	m := runMachine(SIT(), tokens)
	cards := m.Cards()
	if len(cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(cards))
	}
	if cards[0].Question != "What is in 5:22?" {
		t.Errorf("question = %q, verse token must not close it", cards[0].Question)
	}
	if cards[0].Ref != "Gal 5:22" {
		t.Errorf("ref = %q, want %q", cards[0].Ref, "Gal 5:22")
	}
}

func TestMachineStandardVariantIgnoresVerseMarker(t *testing.T) {
	tokens := []string{
		"Type:Q", "Ref:", "Gal", "5:22", "and", "following",
		"Question:", "Q?", "Answer:", "A",
	}
	m := runMachine(Standard(), tokens)
	cards := m.Cards()
	if len(cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(cards))
	}
	// Without the verse-marker rule the whole run stays in ref.
	if cards[0].Ref != "Gal 5:22 and following" {
		t.Errorf("ref = %q", cards[0].Ref)
	}
	if cards[0].ExtraInfo != "" {
		t.Errorf("extra info = %q, want empty", cards[0].ExtraInfo)
	}
}

func TestMachineSecondTypeEmitsCompleteCard(t *testing.T) {
	tokens := []string{
		"Type:A", "Ref:", "Gen", "1:1", "Question:", "Q1?", "Answer:", "A1",
		"Type:B", "Ref:", "Gen", "1:2", "Question:", "Q2?", "Answer:", "A2",
	}
	m := runMachine(Standard(), tokens)
	cards := m.Cards()
	if len(cards) != 2 {
		t.Fatalf("got %d cards, want 2", len(cards))
	}
	if cards[0].Type != "A" || cards[1].Type != "B" {
		t.Errorf("types = %q, %q", cards[0].Type, cards[1].Type)
	}
	if cards[0].Answer != "A1" || cards[1].Answer != "A2" {
		t.Errorf("answers = %q, %q", cards[0].Answer, cards[1].Answer)
	}
}

func TestMachineSecondTypeContinuesIncompleteCard(t *testing.T) {
	// The first card never gets a question or answer, so the second
	// Type: header overwrites in place rather than emitting early.
	tokens := []string{
		"Type:A", "Ref:", "Gen", "1:1",
		"Type:B", "Question:", "Q?", "Answer:", "A",
	}
	m := runMachine(Standard(), tokens)
	cards := m.Cards()
	if len(cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(cards))
	}
	want := types.QuizCard{Type: "B", Ref: "Gen 1:1", Question: "Q?", Answer: "A"}
	if cards[0] != want {
		t.Errorf("card = %s\nwant   %s", cards[0], want)
	}
	if len(m.Dropped()) != 0 {
		t.Errorf("dropped %d cards, want 0", len(m.Dropped()))
	}
}

func TestMachineIncompleteTrailingCardDropped(t *testing.T) {
	tokens := []string{"Type:A", "Ref:", "Gen", "1:1", "Question:", "Q?"}
	m := runMachine(Standard(), tokens)

	if len(m.Cards()) != 0 {
		t.Fatalf("got %d cards, want 0", len(m.Cards()))
	}
	dropped := m.Dropped()
	if len(dropped) != 1 {
		t.Fatalf("dropped %d cards, want 1", len(dropped))
	}
	if dropped[0].Answer != "" || dropped[0].Question != "Q?" {
		t.Errorf("dropped card = %s", dropped[0])
	}
}

func TestMachineClubForms(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   string
	}{
		{
			name:   "bare club header",
			tokens: []string{"Club", "East", "Side"},
			want:   "East Side",
		},
		{
			name:   "club with colon",
			tokens: []string{"Club:", "East"},
			want:   "East",
		},
		{
			name:   "fused club value",
			tokens: []string{"Club:East"},
			want:   "East",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix := []string{"Type:A", "Ref:", "Gen", "1:1"}
			suffix := []string{"Question:", "Q?", "Answer:", "A"}
			m := runMachine(Standard(), slices.Concat(prefix, tt.tokens, suffix))
			cards := m.Cards()
			if len(cards) != 1 {
				t.Fatalf("got %d cards, want 1", len(cards))
			}
			if cards[0].Club != tt.want {
				t.Errorf("club = %q, want %q", cards[0].Club, tt.want)
			}
		})
	}
}

func TestMachineClubhouseIsNotAHeader(t *testing.T) {
	tokens := []string{
		"Type:A", "Ref:", "Gen", "1:1",
		"Question:", "Who", "built", "the", "Clubhouse?",
		"Answer:", "Sam",
	}
	m := runMachine(Standard(), tokens)
	cards := m.Cards()
	if len(cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(cards))
	}
	if cards[0].Club != "" {
		t.Errorf("club = %q, want empty", cards[0].Club)
	}
	if cards[0].Question != "Who built the Clubhouse?" {
		t.Errorf("question = %q", cards[0].Question)
	}
}

func TestMachineNoLeadingSpace(t *testing.T) {
	// Header token carries no value; the first continuation word must
	// land without a leading space.
	tokens := []string{"Type:", "SIT", "Ref:", "Gen", "1:1", "Question:", "Q?", "Answer:", "A"}
	m := runMachine(Standard(), tokens)
	cards := m.Cards()
	if len(cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(cards))
	}
	if cards[0].Type != "SIT" {
		t.Errorf("type = %q, want %q", cards[0].Type, "SIT")
	}
}

func TestMachineDeterministic(t *testing.T) {
	tokens := []string{
		"Type:SIT", "Ref:", "John", "3:16", "note",
		"Question:", "Q?", "Answer:", "A",
		"Type:MCQ", "Ref:", "Gen", "1:1",
		"Question:", "Q2?", "Answer:", "A2",
	}
	first := runMachine(SIT(), tokens).Cards()
	second := runMachine(SIT(), tokens).Cards()
	if !slices.Equal(first, second) {
		t.Errorf("re-run produced different cards:\n%v\n%v", first, second)
	}
}

func TestMachineEmptyInput(t *testing.T) {
	m := NewMachine(Standard())
	m.Finish()
	if len(m.Cards()) != 0 || len(m.Dropped()) != 0 {
		t.Errorf("empty input produced cards=%d dropped=%d", len(m.Cards()), len(m.Dropped()))
	}
}

func TestMachineFeedAll(t *testing.T) {
	m := NewMachine(Standard())
	m.FeedAll(Words("Type:A Ref: Gen 1:1\nQuestion: Q? Answer: A"))
	m.Finish()
	if len(m.Cards()) != 1 {
		t.Fatalf("got %d cards, want 1", len(m.Cards()))
	}
}
