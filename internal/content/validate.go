package content

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// ValidateLesson checks a raw lesson document against the lesson schema.
// Parsing accepts anything structurally decodable; validation is the gate
// that catches authoring mistakes before a lesson reaches the player.
func ValidateLesson(data []byte) error {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := compiledLessonSchema()
	if err != nil {
		return fmt.Errorf("compile lesson schema: %w", err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("lesson schema: %w", err)
	}
	return nil
}

// compiledLessonSchema returns the cached compiled schema, compiling on first use.
func compiledLessonSchema() (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(lessonSchemaName); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library wants a parsed JSON value, not Go maps with
	// typed ints. Round-trip through encoding/json to normalize.
	defBytes, err := json.Marshal(lessonSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", lessonSchemaName)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(lessonSchemaName, compiled)
	return compiled, nil
}
