// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"iter"
	"regexp"

	"github.com/pdiddy/cardex/pkg/types"
)

// verseMarker matches a chapter:verse token such as "3:16" or "5:22,".
// Match semantics are contains, not whole-token: references frequently
// end with punctuation attached to the verse number.
var verseMarker = regexp.MustCompile(`\d+:\d+`)

// Machine is the field-assignment state machine. It consumes one word
// token at a time, tracks which field is open, and accumulates words into
// the card under construction until the next header token. A card is
// finalized when a new Type: header arrives while the current card is
// complete, and once more at end of input.
//
// A Machine owns its in-progress card exclusively and is not safe for
// concurrent use. Use one Machine per document parse.
type Machine struct {
	schema  Schema
	field   Field
	card    types.QuizCard
	cards   []types.QuizCard
	dropped []types.QuizCard
	done    bool
}

// NewMachine returns a Machine for the given schema with no open field.
func NewMachine(schema Schema) *Machine {
	return &Machine{schema: schema}
}

// Feed consumes one token. Rules apply in strict priority order: header
// rules in schema order, the verse-marker rule immediately after the Ref
// header, and plain word accumulation last. Tokens arriving while no
// field is open are discarded. Feed never fails: malformed input yields
// an incomplete card for Finish to drop.
func (m *Machine) Feed(token string) {
	for _, rule := range m.schema.Headers {
		if value, ok := rule.Match(token); ok {
			if rule.Field == FieldType && m.card.Complete() {
				m.cards = append(m.cards, m.card)
				m.card = types.QuizCard{}
			}
			m.field = rule.Field
			SetField(&m.card, rule.Field, value)
			return
		}

		// A chapter:verse token closes an open ref: it is the last
		// token of the reference, and whatever follows is headerless
		// extra info. Only fires while ref is open, so an identical
		// token elsewhere stays a plain word.
		if rule.Field == FieldRef && m.schema.VerseMarker &&
			m.field == FieldRef && verseMarker.MatchString(token) {
			m.appendWord(FieldRef, token)
			m.field = FieldExtraInfo
			return
		}
	}

	if m.field == FieldNone {
		return
	}
	m.appendWord(m.field, token)
}

// FeedAll consumes every token in the sequence.
func (m *Machine) FeedAll(tokens iter.Seq[string]) {
	for token := range tokens {
		m.Feed(token)
	}
}

// appendWord joins word onto the field with a single space, or no space
// when the field is still empty.
func (m *Machine) appendWord(f Field, word string) {
	current := fieldValue(m.card, f)
	if current == "" {
		SetField(&m.card, f, word)
		return
	}
	SetField(&m.card, f, current+" "+word)
}

// Finish finalizes the trailing in-progress card: emitted when complete,
// dropped (and retained for diagnostics) when partially filled. Calling
// Finish more than once is a no-op.
func (m *Machine) Finish() {
	if m.done {
		return
	}
	m.done = true
	switch {
	case m.card.Complete():
		m.cards = append(m.cards, m.card)
	case !m.card.Zero():
		m.dropped = append(m.dropped, m.card)
	}
	m.card = types.QuizCard{}
	m.field = FieldNone
}

// Cards returns the finalized cards in document reading order.
func (m *Machine) Cards() []types.QuizCard {
	return m.cards
}

// Dropped returns cards that were incomplete at a finalize point.
func (m *Machine) Dropped() []types.QuizCard {
	return m.dropped
}
