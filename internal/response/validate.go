package response

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/MrSnakeDoc/askgrace/internal/domain"
)

// Validation is a structurally valid answer plus what had to be dropped
// to get there.
type Validation struct {
	Answer   domain.Answer
	Issues   []string // every violation found, including those that were repaired
	Repaired bool     // true when invalid references were dropped
}

// Validator checks a parsed model response against the answer shape.
//
// Policy: a response with the right top-level shape keeps its valid
// references and loses only the bad ones. Escalation happens when the text
// is missing or blank, or when no reference survives.
type Validator struct {
	schemas *schemas
}

// NewValidator compiles the answer and reference schemas.
func NewValidator() (*Validator, error) {
	s, err := compileSchemas()
	if err != nil {
		return nil, err
	}
	return &Validator{schemas: s}, nil
}

// Validate decodes value into an Answer. Failures are *domain.Error values
// of kind invalid_schema or incomplete_answer carrying the issue list.
func (v *Validator) Validate(value interface{}) (Validation, error) {
	obj, ok := value.(map[string]interface{})
	if !ok {
		return Validation{}, schemaError(domain.ErrInvalidSchema, domain.MsgInvalidSchema,
			[]string{"response must be an object"})
	}

	var issues []string
	for _, msg := range violations(v.schemas.answer, obj) {
		issues = append(issues, "response: "+msg)
	}

	rawText := obj["text"]
	text, textOK := rawText.(string)
	rawRefs, refsOK := obj["references"].([]interface{})

	valid := make([]domain.Reference, 0, len(rawRefs))
	for i, raw := range rawRefs {
		refIssues := v.referenceIssues(raw)
		if len(refIssues) == 0 {
			valid = append(valid, decodeReference(raw.(map[string]interface{})))
			continue
		}
		for _, msg := range refIssues {
			issues = append(issues, fmt.Sprintf("reference %d: %s", i, msg))
		}
	}

	// An absent (or null) text is an incomplete answer; a text of the wrong
	// type is a schema violation.
	if !refsOK || (rawText != nil && !textOK) {
		return Validation{}, schemaError(domain.ErrInvalidSchema, domain.MsgInvalidSchema, issues)
	}
	if strings.TrimSpace(text) == "" || len(valid) == 0 {
		switch {
		case rawText == nil:
			issues = append(issues, "text is missing")
		case strings.TrimSpace(text) == "":
			issues = append(issues, "text is blank")
		}
		if len(valid) == 0 {
			issues = append(issues, "no valid references")
		}
		return Validation{}, schemaError(domain.ErrIncompleteAnswer, domain.MsgIncompleteAnswer, issues)
	}

	return Validation{
		Answer:   domain.Answer{Text: text, References: valid},
		Issues:   issues,
		Repaired: len(valid) < len(rawRefs),
	}, nil
}

func (v *Validator) referenceIssues(raw interface{}) []string {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return []string{"must be an object"}
	}
	issues := violations(v.schemas.reference, m)
	if link, ok := m["link"].(string); ok && strings.TrimSpace(link) != "" && !domain.IsValidURL(link) {
		issues = append(issues, fmt.Sprintf("link: %q is not a valid URL", link))
	}
	return issues
}

// decodeReference reads a reference that already passed the schema.
func decodeReference(m map[string]interface{}) domain.Reference {
	typ, _ := m["type"].(string)
	kind, _ := domain.ParseKind(typ)
	title, _ := m["title"].(string)
	link, _ := m["link"].(string)
	description, _ := m["description"].(string)
	return domain.Reference{
		Kind:        kind,
		Title:       title,
		Link:        link,
		Description: description,
	}
}

func schemaError(kind domain.ErrorKind, msg string, issues []string) error {
	var merr *multierror.Error
	for _, issue := range issues {
		merr = multierror.Append(merr, errors.New(issue))
	}
	return &domain.Error{
		Kind:    kind,
		Message: msg,
		Issues:  issues,
		Err:     merr.ErrorOrNil(),
	}
}
