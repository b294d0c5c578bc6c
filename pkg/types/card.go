// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared record and configuration structs used
// across the cardex pipeline stages.
package types

import (
	"fmt"
	"strings"
)

// QuizCard is one quiz-card record reconstructed from the source PDF.
// Fields are accumulated word by word during parsing: words are joined
// with a single space, in original order, with no leading space.
type QuizCard struct {
	// Type is the card type (e.g. "SIT").
	Type string `json:"type" yaml:"type"`

	// Ref is the scripture reference (e.g. "John 3:16").
	Ref string `json:"ref" yaml:"ref"`

	// ExtraInfo holds trailing descriptive text after the reference.
	// Only populated by schema variants that carry the field.
	ExtraInfo string `json:"extra_info,omitempty" yaml:"extra_info,omitempty"`

	// Club is the club or group the card belongs to, when present.
	Club string `json:"club,omitempty" yaml:"club,omitempty"`

	// Question is the question text.
	Question string `json:"question" yaml:"question"`

	// Answer is the answer text.
	Answer string `json:"answer" yaml:"answer"`
}

// Complete reports whether the card carries every required field.
// Club and ExtraInfo are optional in all known document layouts.
func (c QuizCard) Complete() bool {
	return c.Type != "" && c.Ref != "" && c.Question != "" && c.Answer != ""
}

// Zero reports whether no field of the card has been set.
func (c QuizCard) Zero() bool {
	return c == QuizCard{}
}

// Trimmed returns a copy of the card with surrounding whitespace removed
// from every field. Serializers write the trimmed form.
func (c QuizCard) Trimmed() QuizCard {
	return QuizCard{
		Type:      strings.TrimSpace(c.Type),
		Ref:       strings.TrimSpace(c.Ref),
		ExtraInfo: strings.TrimSpace(c.ExtraInfo),
		Club:      strings.TrimSpace(c.Club),
		Question:  strings.TrimSpace(c.Question),
		Answer:    strings.TrimSpace(c.Answer),
	}
}

// String renders the card on one line for diagnostics.
func (c QuizCard) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "type=%q ref=%q", c.Type, c.Ref)
	if c.ExtraInfo != "" {
		fmt.Fprintf(&b, " extra_info=%q", c.ExtraInfo)
	}
	if c.Club != "" {
		fmt.Fprintf(&b, " club=%q", c.Club)
	}
	fmt.Fprintf(&b, " question=%q answer=%q", c.Question, c.Answer)
	return b.String()
}
