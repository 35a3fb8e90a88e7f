package catalog

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// bankSchema validates a question-bank document before its contents enter a
// snapshot. Difficulty is deliberately unconstrained: unknown labels are
// normalized later, never rejected.
const bankSchema = `{
  "type": "object",
  "required": ["topic"],
  "properties": {
    "topic": {
      "type": "object",
      "required": ["id", "name", "subject"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "name": {"type": "string", "minLength": 1},
        "subject": {"type": "string", "enum": ["Physics", "Chemistry", "Botany", "Zoology", "physics", "chemistry", "botany", "zoology"]}
      }
    },
    "questions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "difficulty": {"type": "string"}
        }
      }
    }
  }
}`

var bankSchemaLoader = gojsonschema.NewStringLoader(bankSchema)

// validateBankDoc checks a decoded bank document against the bank schema.
func validateBankDoc(doc map[string]any) error {
	result, err := gojsonschema.Validate(bankSchemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("validating bank document: %w", err)
	}
	if !result.Valid() {
		errs := result.Errors()
		if len(errs) > 0 {
			return fmt.Errorf("invalid bank document: %s", errs[0])
		}
		return fmt.Errorf("invalid bank document")
	}
	return nil
}
