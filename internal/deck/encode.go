package deck

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// EncodeTrivia renders facts as a trivia file.
func EncodeTrivia(facts []string, format Format) ([]byte, error) {
	return encode(facts, format)
}

// EncodeQuestions renders items in canonical raw shape. The result loads
// back into the same items.
func EncodeQuestions(items []Item, format Format) ([]byte, error) {
	raws := make([]RawItem, len(items))
	for i, it := range items {
		raws[i] = it.Raw()
	}
	return encode(raws, format)
}

func encode(v any, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if format == FormatYAML {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	}

	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return buf.Bytes(), nil
}
