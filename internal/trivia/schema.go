package trivia

import "github.com/abhisek/flashquiz/internal/llm"

// FactsSchema is the structured output requested from the model.
var FactsSchema = &llm.Schema{
	Name:        "trivia-facts",
	Description: "A list of short, self-contained trivia facts",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"facts": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Each entry is one fact of one or two sentences, plain text",
			},
		},
		"required":             []any{"facts"},
		"additionalProperties": false,
	},
}
