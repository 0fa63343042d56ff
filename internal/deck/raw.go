package deck

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// RawItem is an untrusted question record as decoded from a deck file.
// Fields may appear under several legacy names and shapes.
type RawItem map[string]any

// resolveQuestion reads "question", falling back to "q" only when
// "question" is missing or empty. The chosen field is trimmed afterwards,
// so a blank "question" does not fall through.
func resolveQuestion(raw RawItem) string {
	for _, key := range []string{"question", "q"} {
		if s, ok := stringify(raw[key]); ok && s != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// resolveChoices reads "choices", falling back to "options", then to the
// legacy "a" + "distractors" pair. Entries are returned uncleaned.
func resolveChoices(raw RawItem) []any {
	for _, key := range []string{"choices", "options"} {
		if list, ok := raw[key].([]any); ok && len(list) > 0 {
			return list
		}
	}
	if a, ok := raw["a"]; ok && a != nil {
		out := []any{a}
		if ds, ok := raw["distractors"].([]any); ok {
			out = append(out, ds...)
		}
		return out
	}
	return nil
}

// answerResolver resolves the answer from one source. handled reports
// whether this source applied; once a source applies its result is final.
type answerResolver func(raw RawItem, choices []any) (ans Answer, handled bool)

// answerPipeline lists answer sources in priority order.
var answerPipeline = []answerResolver{
	answerFromList,
	answerFromString,
	answerFromIndex,
	answerFromLegacy,
}

func resolveAnswer(raw RawItem, choices []any) Answer {
	for _, resolve := range answerPipeline {
		if ans, handled := resolve(raw, choices); handled {
			return ans
		}
	}
	return Answer{}
}

func answerFromList(raw RawItem, _ []any) (Answer, bool) {
	list, ok := raw["answer"].([]any)
	if !ok {
		return Answer{}, false
	}
	values := cleanStrings(list, false)
	if len(values) == 0 {
		return Answer{}, true
	}
	return AnswerList(values...), true
}

func answerFromString(raw RawItem, _ []any) (Answer, bool) {
	s, ok := raw["answer"].(string)
	if !ok {
		return Answer{}, false
	}
	if s = strings.TrimSpace(s); s == "" {
		return Answer{}, true
	}
	return SingleAnswer(s), true
}

func answerFromIndex(raw RawItem, choices []any) (Answer, bool) {
	idx, ok := toIndex(raw["answerIndex"])
	if !ok || idx < 0 || idx >= len(choices) {
		return Answer{}, false
	}
	s, ok := stringify(choices[idx])
	if !ok {
		return Answer{}, true
	}
	if s = strings.TrimSpace(s); s == "" {
		return Answer{}, true
	}
	return SingleAnswer(s), true
}

func answerFromLegacy(raw RawItem, _ []any) (Answer, bool) {
	a, ok := raw["a"]
	if !ok || a == nil {
		return Answer{}, false
	}
	s, ok := stringify(a)
	if !ok {
		return Answer{}, true
	}
	if s = strings.TrimSpace(s); s == "" {
		return Answer{}, true
	}
	return SingleAnswer(s), true
}

func resolveSynonyms(raw RawItem) []string {
	switch v := raw["synonyms"].(type) {
	case []any:
		return cleanStrings(v, false)
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return []string{s}
		}
	}
	return nil
}

func resolveType(raw RawItem) Type {
	tag, _ := raw["type"].(string)
	return ParseType(tag)
}

// cleanStrings stringifies, trims, and drops entries that are empty after
// trimming or not scalars. When dedupe is set, later duplicates are dropped.
func cleanStrings(list []any, dedupe bool) []string {
	var out []string
	seen := make(map[string]bool, len(list))
	for _, v := range list {
		s, ok := stringify(v)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if dedupe {
			if seen[s] {
				continue
			}
			seen[s] = true
		}
		out = append(out, s)
	}
	return out
}

// stringify converts a scalar to its display string. nil and composite
// values report ok=false; zero and false stringify like any other scalar.
func stringify(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case json.Number:
		return x.String(), true
	}
	return "", false
}

// toIndex converts an integral number to an int.
func toIndex(v any) (int, bool) {
	switch x := v.(type) {
	case float64:
		if x != math.Trunc(x) {
			return 0, false
		}
		return int(x), true
	case int:
		return x, true
	case int64:
		return int(x), true
	case uint64:
		return int(x), true
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}
