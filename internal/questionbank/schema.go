package questionbank

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://question-bank.json"

// catalogSchema describes the on-disk catalog: an array of subjects.
const catalogSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "minItems": 1,
  "items": {
    "type": "object",
    "required": ["subjectId", "title", "subtopics"],
    "properties": {
      "subjectId": {"type": "string", "minLength": 1},
      "title": {"type": "string", "minLength": 1},
      "icon": {"type": "string"},
      "color": {"type": "string"},
      "description": {"type": "string"},
      "subtopics": {
        "type": "array",
        "items": {
          "type": "object",
          "required": ["subtopicId", "title", "questions"],
          "properties": {
            "subtopicId": {"type": "string", "minLength": 1},
            "title": {"type": "string", "minLength": 1},
            "difficulty": {"enum": ["easy", "medium", "hard"]},
            "questions": {
              "type": "array",
              "items": {
                "type": "object",
                "required": ["id", "type", "question"],
                "properties": {
                  "id": {"type": "string", "minLength": 1},
                  "type": {"enum": ["mcq", "written"]},
                  "question": {"type": "string", "minLength": 1},
                  "options": {"type": "array", "items": {"type": "string"}},
                  "correctAnswer": {"type": "integer", "minimum": 0},
                  "answerGuide": {"type": "string"},
                  "explanation": {"type": "string"},
                  "difficulty": {"enum": ["easy", "medium", "hard"]}
                },
                "if": {"properties": {"type": {"const": "mcq"}}},
                "then": {"required": ["options", "correctAnswer"]},
                "else": {"required": ["answerGuide"]}
              }
            }
          }
        }
      }
    }
  }
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func catalogValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(catalogSchema), &def); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("compile: %w", compileErr)
		}
	})
	return compiled, compileErr
}

// validateSchema checks raw catalog JSON against catalogSchema.
func validateSchema(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	sch, err := catalogValidator()
	if err != nil {
		return err
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
