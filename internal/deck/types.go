package deck

import (
	"slices"
	"strings"
)

// Type tags how an item is answered.
type Type string

const (
	// TypeMultipleChoice items are answered by picking one rendered choice.
	TypeMultipleChoice Type = "multiple-choice"

	// TypeDefinition items are answered by typing free text.
	TypeDefinition Type = "definition"
)

// ParseType maps a raw type tag to a Type. Anything that is not
// "definition" is multiple-choice.
func ParseType(tag string) Type {
	if strings.EqualFold(strings.TrimSpace(tag), string(TypeDefinition)) {
		return TypeDefinition
	}
	return TypeMultipleChoice
}

// Item is a canonical, validated question.
type Item struct {
	// ID is "q-<n>" where n is the record's position in the raw input.
	ID string

	// Question is the non-empty, trimmed prompt.
	Question string

	// Choices holds distinct, non-empty, trimmed options in first-seen order.
	Choices []string

	// Answer holds the acceptable answer(s).
	Answer Answer

	// Synonyms are extra acceptable strings for free-text matching.
	Synonyms []string

	Type Type
}

// Distractors returns the choices that are not acceptable answers.
func (it Item) Distractors() []string {
	var out []string
	for _, c := range it.Choices {
		if !it.Answer.Accepts(c) {
			out = append(out, c)
		}
	}
	return out
}

// Raw returns the item in the canonical raw shape, suitable for writing back
// to a deck file.
func (it Item) Raw() RawItem {
	raw := RawItem{
		"question": it.Question,
		"type":     string(it.Type),
	}
	if len(it.Choices) > 0 {
		raw["choices"] = toAnySlice(it.Choices)
	}
	if it.Answer.IsList() {
		raw["answer"] = toAnySlice(it.Answer.Values())
	} else {
		raw["answer"] = it.Answer.Primary()
	}
	if len(it.Synonyms) > 0 {
		raw["synonyms"] = toAnySlice(it.Synonyms)
	}
	return raw
}

// Answer is either a single string or an ordered list of acceptable strings.
// The zero value accepts nothing.
type Answer struct {
	values []string
	list   bool
}

// SingleAnswer returns an Answer holding one string.
func SingleAnswer(s string) Answer {
	return Answer{values: []string{s}}
}

// AnswerList returns an Answer holding an ordered list of strings.
func AnswerList(values ...string) Answer {
	return Answer{values: slices.Clone(values), list: true}
}

// Primary returns the first acceptable answer, which is the one rendered
// among multiple-choice options.
func (a Answer) Primary() string {
	if len(a.values) == 0 {
		return ""
	}
	return a.values[0]
}

// Values returns a copy of all acceptable answers.
func (a Answer) Values() []string {
	return slices.Clone(a.values)
}

// IsList reports whether the answer was given as a list.
func (a Answer) IsList() bool {
	return a.list
}

// IsZero reports whether the answer holds no values.
func (a Answer) IsZero() bool {
	return len(a.values) == 0
}

// Accepts reports whether s is exactly one of the acceptable answers.
func (a Answer) Accepts(s string) bool {
	return slices.Contains(a.values, s)
}

func (a Answer) String() string {
	return strings.Join(a.values, " / ")
}

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// CorrectChoice returns the acceptable answer rendered among the options:
// the first answer value that is also a choice, or the primary answer.
func (it Item) CorrectChoice() string {
	for _, v := range it.Answer.values {
		if slices.Contains(it.Choices, v) {
			return v
		}
	}
	return it.Answer.Primary()
}
