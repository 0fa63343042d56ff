package deck

import (
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Deck files are loose by design: only the top-level shape is enforced
// here, everything else goes through Normalize.
var (
	questionsSchema = map[string]any{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type":    "array",
	}
	triviaSchema = map[string]any{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type":    "array",
	}
)

var schemaCache sync.Map // map[string]*jsonschema.Schema

// checkShape validates a decoded value against the named schema.
func checkShape(name string, def map[string]any, v any) error {
	compiled, err := compiledSchema(name, def)
	if err != nil {
		return err
	}
	return compiled.Validate(v)
}

func compiledSchema(name string, def map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://flashquiz/%s.json", name)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", name, err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}
