package content

// lessonSchemaName keys the compiled-schema cache.
const lessonSchemaName = "lesson"

// lessonSchema is the JSON schema lesson files must satisfy before parsing.
// It guards the authoring format: screen and question type enums, required
// identity fields, and the per-type answer-key shapes.
var lessonSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":               map[string]any{"type": "string", "minLength": 1},
		"title":            map[string]any{"type": "string", "minLength": 1},
		"courseId":         map[string]any{"type": "string"},
		"pathId":           map[string]any{"type": "string"},
		"order":            map[string]any{"type": "integer", "minimum": 0},
		"duration":         map[string]any{"type": "integer", "minimum": 0},
		"xpReward":         map[string]any{"type": "integer", "minimum": 0},
		"description":      map[string]any{"type": "string"},
		"objectives":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"totalPoints":      map[string]any{"type": "integer", "minimum": 0},
		"masteryThreshold": map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
		"screens": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items":    map[string]any{"$ref": "#/$defs/screen"},
		},
	},
	"required": []any{"id", "title", "totalPoints", "masteryThreshold", "screens"},
	"$defs": map[string]any{
		"screen": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"type": map[string]any{
					"enum": []any{"hook", "challenge", "reason", "feedback", "transfer", "wrap"},
				},
				"title":     map[string]any{"type": "string"},
				"body":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"takeaways": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"scenarios": map[string]any{
					"type":  "array",
					"items": map[string]any{"$ref": "#/$defs/scenario"},
				},
			},
			"required": []any{"type"},
		},
		"scenario": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":          map[string]any{"type": "string", "minLength": 1},
				"title":       map[string]any{"type": "string"},
				"description": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"questions": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items":    map[string]any{"$ref": "#/$defs/question"},
				},
			},
			"required": []any{"id", "questions"},
		},
		"question": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id": map[string]any{"type": "string", "minLength": 1},
				"type": map[string]any{
					"enum": []any{
						"single_choice", "multi_select", "matching", "ranking",
						"free_text", "swipe_classifier", "sentence_builder",
						"strategy_builder", "dialogue_simulator",
					},
				},
				"question": map[string]any{"type": "string"},
				"points":   map[string]any{"type": "integer", "minimum": 0},
				"options":  nonEmptyArray(),
				"items":    nonEmptyArray(),
				"cards":    nonEmptyArray(),
				"blanks":   nonEmptyArray(),
				"wordBank": nonEmptyArray(),
				"elements": nonEmptyArray(),
				"turns": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items":    map[string]any{"$ref": "#/$defs/turn"},
				},
			},
			"required": []any{"id", "type", "points"},
			"allOf": []any{
				typeRequires("single_choice", "options", "correctAnswer"),
				typeRequires("multi_select", "options"),
				typeRequires("matching", "items"),
				typeRequires("ranking", "options"),
				typeRequires("free_text", "minWords", "maxWords"),
				typeRequires("swipe_classifier", "cards"),
				typeRequires("sentence_builder", "sentence", "blanks", "wordBank"),
				typeRequires("strategy_builder", "elements", "selectCount"),
				typeRequires("dialogue_simulator", "turns"),
			},
		},
		"turn": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"options": nonEmptyArray(),
			},
			"required": []any{"options"},
		},
	},
}

// nonEmptyArray builds the schema for an answer-key list. An empty list would
// leave a question with nothing to answer, so every list must carry at least
// one entry.
func nonEmptyArray() map[string]any {
	return map[string]any{"type": "array", "minItems": 1}
}

// typeRequires builds an if/then clause tying a question type to the fields
// that carry its answer key.
func typeRequires(qtype string, fields ...string) map[string]any {
	req := make([]any, len(fields))
	for i, f := range fields {
		req[i] = f
	}
	return map[string]any{
		"if": map[string]any{
			"properties": map[string]any{"type": map[string]any{"const": qtype}},
			"required":   []any{"type"},
		},
		"then": map[string]any{"required": req},
	}
}
