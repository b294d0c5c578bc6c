// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parse reconstructs quiz-card records from the unstructured word
// stream of a two-column study-guide PDF. The source documents carry no
// record delimiters beyond inline header tokens (Type:, Ref:, Club,
// Question:, Answer:), so a field-assignment state machine tracks the open
// field and accumulates words into it until the next header arrives.
// See docs/ARCHITECTURE § Parsing.
package parse

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cardex/pkg/types"
)

// Field names a QuizCard field the state machine can accumulate into.
type Field string

const (
	FieldNone      Field = ""
	FieldType      Field = "type"
	FieldRef       Field = "ref"
	FieldExtraInfo Field = "extra_info"
	FieldClub      Field = "club"
	FieldQuestion  Field = "question"
	FieldAnswer    Field = "answer"
)

// HeaderRule maps a header keyword to the field it opens. Headers are
// matched as token prefixes, not whole tokens: the extractor sometimes
// emits a header and its first word fused together (e.g. "Type:SIT").
type HeaderRule struct {
	// Keyword is the header literal without its colon (e.g. "Type").
	Keyword string `yaml:"keyword"`

	// Field is the card field the header opens.
	Field Field `yaml:"field"`

	// ColonOptional also accepts the bare keyword as a header token.
	// The source documents write the Club header with and without a
	// colon, inconsistently. A longer word sharing the prefix (such as
	// "Clubhouse") is never a header.
	ColonOptional bool `yaml:"colon_optional,omitempty"`
}

// Match reports whether token is this header and returns the field value
// carried on the token itself: the suffix after the keyword and colon,
// trimmed. A bare colon-optional keyword carries an empty value.
func (r HeaderRule) Match(token string) (value string, ok bool) {
	if rest, found := strings.CutPrefix(token, r.Keyword+":"); found {
		return strings.TrimSpace(rest), true
	}
	if r.ColonOptional && token == r.Keyword {
		return "", true
	}
	return "", false
}

// Schema describes one document layout: the recognized headers in match
// priority order, the record fields in column order, and whether the
// chapter:verse-marker rule is active. One engine serves every layout;
// new layouts are data, not code.
type Schema struct {
	// Variant names the schema (e.g. "standard", "sit").
	Variant string `yaml:"variant"`

	// Headers lists the recognized header rules in priority order.
	Headers []HeaderRule `yaml:"headers"`

	// Fields lists the record fields in serialization order.
	Fields []Field `yaml:"fields"`

	// VerseMarker closes an open ref field at a digits:colon:digits
	// token (e.g. "3:16") and opens extra_info for the trailing
	// descriptive text, which has no header of its own.
	VerseMarker bool `yaml:"verse_marker,omitempty"`
}

// standardHeaders is shared by the built-in variants.
func standardHeaders() []HeaderRule {
	return []HeaderRule{
		{Keyword: "Type", Field: FieldType},
		{Keyword: "Ref", Field: FieldRef},
		{Keyword: "Club", Field: FieldClub, ColonOptional: true},
		{Keyword: "Question", Field: FieldQuestion},
		{Keyword: "Answer", Field: FieldAnswer},
	}
}

// Standard is the five-field layout: Type, Ref, Club, Question, Answer.
func Standard() Schema {
	return Schema{
		Variant: "standard",
		Headers: standardHeaders(),
		Fields:  []Field{FieldType, FieldRef, FieldClub, FieldQuestion, FieldAnswer},
	}
}

// SIT is the standard layout plus an Extra Info field between Ref and
// Club, populated by the verse-marker rule for SIT-style cards.
func SIT() Schema {
	return Schema{
		Variant:     "sit",
		Headers:     standardHeaders(),
		Fields:      []Field{FieldType, FieldRef, FieldExtraInfo, FieldClub, FieldQuestion, FieldAnswer},
		VerseMarker: true,
	}
}

// ByVariant returns the built-in schema with the given name.
func ByVariant(name string) (Schema, error) {
	switch name {
	case "standard":
		return Standard(), nil
	case "sit":
		return SIT(), nil
	}
	return Schema{}, fmt.Errorf("unknown schema variant %q (want standard or sit)", name)
}

// LoadSchemaFile reads a schema descriptor from a YAML file.
func LoadSchemaFile(path string) (Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Schema{}, fmt.Errorf("reading schema: %w", err)
	}
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Schema{}, fmt.Errorf("parsing schema: %w", err)
	}
	if err := s.validate(); err != nil {
		return Schema{}, fmt.Errorf("schema %s: %w", path, err)
	}
	return s, nil
}

func (s Schema) validate() error {
	if len(s.Headers) == 0 {
		return fmt.Errorf("no header rules")
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("no fields")
	}
	known := map[Field]bool{
		FieldType: true, FieldRef: true, FieldExtraInfo: true,
		FieldClub: true, FieldQuestion: true, FieldAnswer: true,
	}
	for _, r := range s.Headers {
		if r.Keyword == "" {
			return fmt.Errorf("header rule with empty keyword")
		}
		if !known[r.Field] {
			return fmt.Errorf("header %q targets unknown field %q", r.Keyword, r.Field)
		}
	}
	for _, f := range s.Fields {
		if !known[f] {
			return fmt.Errorf("unknown field %q", f)
		}
	}
	return nil
}

// columnTitles maps fields to their serialized column names.
var columnTitles = map[Field]string{
	FieldType:      "Type",
	FieldRef:       "Ref",
	FieldExtraInfo: "Extra Info",
	FieldClub:      "Club",
	FieldQuestion:  "Question",
	FieldAnswer:    "Answer",
}

// ColumnTitles returns the CSV header row for this schema.
func (s Schema) ColumnTitles() []string {
	titles := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		titles[i] = columnTitles[f]
	}
	return titles
}

// Row returns the card's trimmed values in this schema's column order.
func (s Schema) Row(c types.QuizCard) []string {
	c = c.Trimmed()
	row := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		row[i] = fieldValue(c, f)
	}
	return row
}

func fieldValue(c types.QuizCard, f Field) string {
	switch f {
	case FieldType:
		return c.Type
	case FieldRef:
		return c.Ref
	case FieldExtraInfo:
		return c.ExtraInfo
	case FieldClub:
		return c.Club
	case FieldQuestion:
		return c.Question
	case FieldAnswer:
		return c.Answer
	}
	return ""
}

// FieldByTitle resolves a serialized column name back to its field.
// Used when re-reading a cardex CSV.
func FieldByTitle(title string) (Field, bool) {
	for f, t := range columnTitles {
		if t == title {
			return f, true
		}
	}
	return FieldNone, false
}

// SetField assigns value to the named field of card.
func SetField(c *types.QuizCard, f Field, value string) {
	switch f {
	case FieldType:
		c.Type = value
	case FieldRef:
		c.Ref = value
	case FieldExtraInfo:
		c.ExtraInfo = value
	case FieldClub:
		c.Club = value
	case FieldQuestion:
		c.Question = value
	case FieldAnswer:
		c.Answer = value
	}
}
