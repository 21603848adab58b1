package response

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/askgrace/internal/domain"
)

type obj = map[string]interface{}

func ref(kind, title, link string) obj {
	return obj{"type": kind, "title": title, "link": link}
}

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator()
	require.NoError(t, err)
	return v
}

func requireKind(t *testing.T, err error, want domain.ErrorKind) *domain.Error {
	t.Helper()
	var de *domain.Error
	require.True(t, errors.As(err, &de), "expected *domain.Error, got %v", err)
	assert.Equal(t, want, de.Kind)
	return de
}

func TestValidateValid(t *testing.T) {
	v := newValidator(t)

	in := obj{
		"text": "Jesus loves you!",
		"references": []interface{}{
			ref("verse", "John 3:16", "https://www.biblegateway.com/passage/?search=John+3:16"),
			obj{"type": "book", "title": "Grace Walk", "link": "https://www.amazon.com/x", "description": "A book"},
		},
	}

	res, err := v.Validate(in)
	require.NoError(t, err)
	assert.False(t, res.Repaired)
	assert.Empty(t, res.Issues)
	assert.Equal(t, "Jesus loves you!", res.Answer.Text)
	require.Len(t, res.Answer.References, 2)
	assert.Equal(t, domain.KindVerse, res.Answer.References[0].Kind)
	assert.Equal(t, domain.Reference{
		Kind:        domain.KindBook,
		Title:       "Grace Walk",
		Link:        "https://www.amazon.com/x",
		Description: "A book",
	}, res.Answer.References[1])
}

func TestValidateDropsOnlyBadReferences(t *testing.T) {
	tests := []struct {
		name string
		bad  interface{}
	}{
		{name: "unknown kind", bad: ref("video", "A video", "https://videos.example")},
		{name: "invalid link", bad: ref("article", "Grace", "not a url")},
		{name: "missing title", bad: obj{"type": "article", "link": "https://www.gty.org"}},
		{name: "blank title", bad: ref("article", "   ", "https://www.gty.org")},
		{name: "non-string title", bad: obj{"type": "article", "title": float64(5), "link": "https://www.gty.org"}},
		{name: "empty description", bad: obj{"type": "book", "title": "B", "link": "https://b.example", "description": ""}},
		{name: "not an object", bad: "John 3:16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newValidator(t)
			in := obj{
				"text": "Answer",
				"references": []interface{}{
					ref("verse", "John 3:16", "https://www.biblegateway.com/passage/?search=John+3:16"),
					tt.bad,
				},
			}

			res, err := v.Validate(in)
			require.NoError(t, err)
			assert.True(t, res.Repaired)
			require.Len(t, res.Answer.References, 1)
			assert.Equal(t, "John 3:16", res.Answer.References[0].Title)
			require.NotEmpty(t, res.Issues)
			assert.True(t, hasIssuePrefix(res.Issues, "reference 1: "), "issues: %v", res.Issues)
		})
	}
}

func TestValidateInvalidSchema(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
	}{
		{name: "array", in: []interface{}{"text"}},
		{name: "string", in: "hello"},
		{name: "references not a list", in: obj{"text": "Hi", "references": "none"}},
		{name: "text not a string", in: obj{"text": float64(3), "references": []interface{}{ref("verse", "John 3:16", "https://a.example")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newValidator(t).Validate(tt.in)
			require.Error(t, err)

			de := requireKind(t, err, domain.ErrInvalidSchema)
			assert.Equal(t, domain.MsgInvalidSchema, de.Message)
			assert.NotEmpty(t, de.Issues)
		})
	}
}

func TestValidateMissingTextIsReported(t *testing.T) {
	_, err := newValidator(t).Validate(obj{"references": []interface{}{ref("verse", "John 3:16", "https://a.example")}})

	de := requireKind(t, err, domain.ErrIncompleteAnswer)
	assert.Contains(t, de.Issues, "text is missing")
}

func TestValidateIncompleteAnswer(t *testing.T) {
	tests := []struct {
		name string
		in   obj
	}{
		{
			name: "every reference invalid",
			in: obj{"text": "Hi", "references": []interface{}{
				ref("video", "x", "https://a.example"),
				ref("book", "", "https://a.example"),
			}},
		},
		{name: "no references", in: obj{"text": "Hi", "references": []interface{}{}}},
		{
			name: "blank text",
			in:   obj{"text": "  ", "references": []interface{}{ref("verse", "John 3:16", "https://a.example")}},
		},
		{
			name: "text absent",
			in:   obj{"references": []interface{}{ref("verse", "John 3:16", "https://a.example")}},
		},
		{
			name: "text null",
			in:   obj{"text": nil, "references": []interface{}{ref("verse", "John 3:16", "https://a.example")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newValidator(t).Validate(tt.in)
			require.Error(t, err)

			de := requireKind(t, err, domain.ErrIncompleteAnswer)
			assert.Equal(t, domain.MsgIncompleteAnswer, de.Message)
			assert.NotEmpty(t, de.Issues)
		})
	}
}

func TestExtractThenValidateRoundTrip(t *testing.T) {
	raw := "```json\n{text: 'Hi', references: [{type:'article', title:'Q', link:'https://www.gotquestions.org/x'}]}\n```"

	value, err := NewExtractor(nil).Decode(raw)
	require.NoError(t, err)

	res, err := newValidator(t).Validate(value)
	require.NoError(t, err)
	assert.Equal(t, "Hi", res.Answer.Text)
	assert.Equal(t, []domain.Reference{
		{Kind: domain.KindArticle, Title: "Q", Link: "https://www.gotquestions.org/x"},
	}, res.Answer.References)
}

func hasIssuePrefix(issues []string, prefix string) bool {
	for _, issue := range issues {
		if strings.HasPrefix(issue, prefix) {
			return true
		}
	}
	return false
}
