package blueprint

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// blueprintSchema describes the normalized shape. It is used as a
// diagnostic on raw provider output and as the totality check in tests.
const blueprintSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["summary", "features", "feasibility", "system_flow", "tech_stack", "comparison", "viva", "pitch", "diagrams"],
  "properties": {
    "summary": {
      "type": "object",
      "required": ["problem_statement", "target_users", "objectives", "scope", "what_this_means", "why_this_matters"],
      "properties": {
        "problem_statement": {"type": "string", "minLength": 1},
        "target_users": {"type": "array", "items": {"type": "string"}},
        "objectives": {"type": "array", "items": {"type": "string"}}
      }
    },
    "features": {
      "type": "object",
      "required": ["features"],
      "properties": {
        "features": {
          "type": "array",
          "minItems": 1,
          "items": {
            "type": "object",
            "required": ["feature_name", "what_it_does", "why_it_exists", "how_it_helps", "limitations"]
          }
        }
      }
    },
    "feasibility": {
      "type": "object",
      "required": ["feasibility_level", "feasibility_explanation", "strengths", "risks", "why_this_matters"],
      "properties": {
        "feasibility_level": {"enum": ["High", "Medium", "Low"]}
      }
    },
    "system_flow": {
      "type": "object",
      "required": ["flow_title", "steps", "summary"],
      "properties": {
        "steps": {
          "type": "array",
          "minItems": 1,
          "items": {
            "type": "object",
            "required": ["step_number", "actor", "action", "explanation"],
            "properties": {"step_number": {"type": "integer"}}
          }
        }
      }
    },
    "tech_stack": {
      "type": "object",
      "required": ["primary_stack", "backup_stack"],
      "properties": {
        "primary_stack": {"type": "array", "minItems": 1}
      }
    },
    "comparison": {
      "type": "object",
      "required": ["existing_solutions", "unique_aspects", "why_this_project_is_still_valuable", "summary_insight"]
    },
    "viva": {
      "type": "object",
      "required": ["project_overview_explanation", "problem_statement_explanation", "architecture_explanation", "unique_feature_explanation", "common_questions", "hackathon_questions"],
      "properties": {
        "common_questions": {"type": "array", "minItems": 1},
        "hackathon_questions": {"type": "array", "minItems": 1}
      }
    },
    "pitch": {
      "type": "object",
      "required": ["thirty_second_pitch", "one_minute_pitch", "key_points"]
    },
    "diagrams": {
      "type": "object",
      "required": ["user_flow_mermaid", "tech_stack_mermaid"],
      "properties": {
        "user_flow_mermaid": {"type": "string", "pattern": "^flowchart"}
      }
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString("blueprint.schema.json", blueprintSchema)

// Validate checks a normalized blueprint against the schema. Normalize
// output always passes; raw provider output usually does not, which is
// what makes this useful as a log-only diagnostic.
func Validate(bp Blueprint) error {
	data, err := json.Marshal(bp)
	if err != nil {
		return fmt.Errorf("marshal blueprint: %w", err)
	}
	return ValidateRaw(data)
}

// ValidateRaw checks arbitrary JSON against the blueprint schema.
func ValidateRaw(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode blueprint: %w", err)
	}
	if err := compiledSchema.Validate(v); err != nil {
		return fmt.Errorf("blueprint schema: %w", err)
	}
	return nil
}
