package response

import (
	"regexp"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/kaptinlin/jsonrepair"

	"github.com/MrSnakeDoc/askgrace/internal/domain"
	"github.com/MrSnakeDoc/askgrace/internal/logger"
)

var (
	strictJSON = jsoniter.ConfigCompatibleWithStandardLibrary

	codeFence    = regexp.MustCompile("```(?:json|JSON)?[ \t]*")
	controlChars = regexp.MustCompile(`[\x00-\x1F]+`)

	// Fallback repairs used when the repair library itself gives up.
	bareKey       = regexp.MustCompile(`([{,]\s*)([A-Za-z_]\w*)(\s*:)`)
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)
	textValue     = regexp.MustCompile(`"text"\s*:\s*"(.*?)"\s*,\s*"references"`)
)

// repairFunc is swapped in tests to force a failed repair.
var repairFunc = repair

// Extractor turns raw model output into a parsed JSON value.
//
// Parsing is two attempts at most: a strict parse of the extracted object,
// then one strict parse of its repaired form. There is no further retry.
type Extractor struct {
	logger logger.Logger
}

// NewExtractor creates an extractor that logs repair failures to log.
func NewExtractor(log logger.Logger) *Extractor {
	if log == nil {
		log = logger.NewNop()
	}
	return &Extractor{logger: log}
}

// Extract returns a JSON object text that a strict parser accepts.
//
// Output that does not open with "{" once code fences are removed is taken
// to be the model explaining itself, and is returned verbatim as a
// ModelRefused error.
func (e *Extractor) Extract(raw string) (string, error) {
	_, text, err := e.extract(raw)
	return text, err
}

// Decode extracts and parses raw, returning the generic JSON value
// (map[string]interface{} for a well-formed answer).
func (e *Extractor) Decode(raw string) (interface{}, error) {
	v, _, err := e.extract(raw)
	return v, err
}

func (e *Extractor) extract(raw string) (interface{}, string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, "", domain.NewError(domain.ErrNoResponse, domain.MsgNoResponse)
	}

	unfenced := strings.TrimSpace(codeFence.ReplaceAllString(trimmed, ""))
	if !strings.HasPrefix(unfenced, "{") {
		return nil, "", domain.ModelRefused(trimmed)
	}

	candidate := objectSpan(controlChars.ReplaceAllString(unfenced, " "))

	var v interface{}
	firstErr := strictJSON.UnmarshalFromString(candidate, &v)
	if firstErr == nil {
		return v, candidate, nil
	}

	repaired := repairFunc(candidate)
	if err := strictJSON.UnmarshalFromString(repaired, &v); err != nil {
		e.logger.Warn("failed to parse model response",
			logger.Error(err),
			logger.String("first_error", firstErr.Error()),
			logger.String("response", raw))
		return nil, "", domain.WrapError(domain.ErrMalformedResponse, domain.MsgMalformedResponse, err)
	}
	return v, repaired, nil
}

// objectSpan keeps everything from the first "{" to the last "}".
func objectSpan(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return strings.TrimSpace(s)
	}
	return s[start : end+1]
}

// repair applies one round of syntactic fixes: bare keys are quoted, single
// quotes become double quotes, trailing commas go, and stray quotes inside
// the answer text are escaped.
func repair(s string) string {
	if fixed, err := jsonrepair.JSONRepair(s); err == nil {
		return fixed
	}
	return repairByRules(s)
}

func repairByRules(s string) string {
	s = bareKey.ReplaceAllString(s, `$1"$2"$3`)
	s = strings.ReplaceAll(s, "'", `"`)
	s = trailingComma.ReplaceAllString(s, "$1")
	return textValue.ReplaceAllStringFunc(s, func(m string) string {
		sub := textValue.FindStringSubmatch(m)
		body := strings.ReplaceAll(sub[1], `\"`, `"`)
		if !strings.Contains(body, `"`) {
			return m
		}
		body = strings.ReplaceAll(body, `"`, `\"`)
		return `"text":"` + body + `","references"`
	})
}
