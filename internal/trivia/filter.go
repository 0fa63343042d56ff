package trivia

import (
	"strings"
	"unicode/utf8"
)

// Filter drops or rewrites generated facts.
type Filter interface {
	Filter(facts []string, input Input) []string
}

// CleanFilter trims whitespace, strips list markers the model may add
// despite instructions, and drops blanks.
type CleanFilter struct{}

func (CleanFilter) Filter(facts []string, _ Input) []string {
	out := facts[:0:0]
	for _, f := range facts {
		f = strings.TrimSpace(f)
		f = strings.TrimLeft(f, "-*• ")
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// LengthFilter drops facts longer than MaxRunes.
type LengthFilter struct {
	MaxRunes int
}

func (l LengthFilter) Filter(facts []string, _ Input) []string {
	out := facts[:0:0]
	for _, f := range facts {
		if utf8.RuneCountInString(f) <= l.MaxRunes {
			out = append(out, f)
		}
	}
	return out
}

// DedupFilter drops case-insensitive repeats within the batch and facts
// already listed in Input.Avoid.
type DedupFilter struct{}

func (DedupFilter) Filter(facts []string, input Input) []string {
	seen := make(map[string]bool, len(facts)+len(input.Avoid))
	for _, a := range input.Avoid {
		seen[dedupKey(a)] = true
	}

	out := facts[:0:0]
	for _, f := range facts {
		k := dedupKey(f)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, f)
	}
	return out
}

func dedupKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
