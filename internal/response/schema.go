package response

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kaptinlin/jsonschema"

	"github.com/MrSnakeDoc/askgrace/internal/domain"
)

// answerSchema checks the top-level shape only; references are checked one
// at a time against referenceSchema so that bad entries can be dropped.
const answerSchema = `{
	"type": "object",
	"required": ["text", "references"],
	"properties": {
		"text": {"type": "string", "pattern": "\\S"},
		"references": {"type": "array"}
	}
}`

func referenceSchema() string {
	kinds := make([]string, 0, len(domain.Kinds()))
	for _, k := range domain.Kinds() {
		kinds = append(kinds, fmt.Sprintf("%q", k))
	}
	return `{
	"type": "object",
	"required": ["type", "title", "link"],
	"properties": {
		"type": {"enum": [` + strings.Join(kinds, ", ") + `]},
		"title": {"type": "string", "pattern": "\\S"},
		"link": {"type": "string", "pattern": "\\S"},
		"description": {"type": "string", "pattern": "\\S"}
	}
}`
}

type schemas struct {
	answer    *jsonschema.Schema
	reference *jsonschema.Schema
}

func compileSchemas() (*schemas, error) {
	answer, err := jsonschema.NewCompiler().Compile([]byte(answerSchema))
	if err != nil {
		return nil, fmt.Errorf("invalid answer schema: %w", err)
	}
	reference, err := jsonschema.NewCompiler().Compile([]byte(referenceSchema()))
	if err != nil {
		return nil, fmt.Errorf("invalid reference schema: %w", err)
	}
	return &schemas{answer: answer, reference: reference}, nil
}

// violations runs schema against data and returns one message per failed
// keyword, sorted so that issue lists are stable between runs.
func violations(schema *jsonschema.Schema, data interface{}) []string {
	result := schema.Validate(data)
	if result.IsValid() {
		return nil
	}
	out := make([]string, 0, len(result.Errors))
	for keyword, err := range result.Errors {
		out = append(out, keyword+": "+err.Message)
	}
	if len(out) == 0 {
		out = append(out, "does not match schema")
	}
	sort.Strings(out)
	return out
}
