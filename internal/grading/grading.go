// Package grading decides whether a response to a deck item is correct.
package grading

import (
	"strings"

	"github.com/abhisek/flashquiz/internal/deck"
)

// PartialMatchThreshold is the fraction of a candidate's words that a typed
// definition must contain to be accepted.
const PartialMatchThreshold = 0.70

// Response is what the learner gave: a rendered choice or typed text.
type Response struct {
	// Choice is the option string that was picked (multiple-choice).
	Choice string

	// Text is the typed answer (definition).
	Text string
}

// Choice returns a Response for a picked option.
func Choice(s string) Response { return Response{Choice: s} }

// Text returns a Response for typed text.
func Text(s string) Response { return Response{Text: s} }

// Check grades a response against an item.
func Check(item deck.Item, resp Response) bool {
	switch item.Type {
	case deck.TypeDefinition:
		return CheckDefinition(item, resp.Text)
	default:
		return CheckChoice(item, resp.Choice)
	}
}

// CheckChoice compares the picked option string with the acceptable
// answers. Comparison is exact: options are rendered from the same strings.
func CheckChoice(item deck.Item, choice string) bool {
	if choice == "" {
		return false
	}
	return item.Answer.Accepts(choice)
}

// CheckDefinition accepts typed text that exactly matches an answer or
// synonym after lowercasing and trimming, or that contains at least
// PartialMatchThreshold of some candidate's words.
func CheckDefinition(item deck.Item, typed string) bool {
	given := normalize(typed)
	if given == "" {
		return false
	}

	candidates := Candidates(item)
	for _, c := range candidates {
		if c == given {
			return true
		}
	}

	givenWords := strings.Fields(given)
	for _, c := range candidates {
		if Overlap(givenWords, strings.Fields(c)) >= PartialMatchThreshold {
			return true
		}
	}
	return false
}

// Candidates returns the normalized acceptable strings for a definition:
// the answers followed by synonyms, blanks removed.
func Candidates(item deck.Item) []string {
	values := append(item.Answer.Values(), item.Synonyms...)
	out := make([]string, 0, len(values))
	for _, v := range values {
		if n := normalize(v); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Overlap returns the number of given words found in candidate, divided by
// the number of candidate words. Every given word counts, repeats included.
func Overlap(given, candidate []string) float64 {
	if len(candidate) == 0 {
		return 0
	}
	words := make(map[string]bool, len(candidate))
	for _, w := range candidate {
		words[w] = true
	}
	matches := 0
	for _, w := range given {
		if words[w] {
			matches++
		}
	}
	return float64(matches) / float64(len(candidate))
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
