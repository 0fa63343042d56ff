package deck

import "fmt"

// minChoices is the number of options a multiple-choice item needs.
const minChoices = 2

// Normalize converts a raw record into a canonical Item. The index is the
// record's position in the raw input and becomes part of the ID, so IDs stay
// stable when earlier records are rejected. ok is false when the record is
// rejected.
func Normalize(raw RawItem, index int) (Item, bool) {
	question := resolveQuestion(raw)
	rawChoices := resolveChoices(raw)
	answer := resolveAnswer(raw, rawChoices)
	choices := cleanStrings(rawChoices, true)
	typ := resolveType(raw)

	if question == "" || answer.IsZero() {
		return Item{}, false
	}
	if typ != TypeDefinition {
		if len(choices) < minChoices {
			return Item{}, false
		}
		if !anyAccepted(answer, choices) {
			return Item{}, false
		}
	}

	return Item{
		ID:       fmt.Sprintf("q-%d", index),
		Question: question,
		Choices:  choices,
		Answer:   answer,
		Synonyms: resolveSynonyms(raw),
		Type:     typ,
	}, true
}

func anyAccepted(answer Answer, choices []string) bool {
	for _, c := range choices {
		if answer.Accepts(c) {
			return true
		}
	}
	return false
}
