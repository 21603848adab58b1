package answer

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/askgrace/internal/domain"
	"github.com/MrSnakeDoc/askgrace/internal/logger"
	"github.com/MrSnakeDoc/askgrace/internal/response"
	"github.com/MrSnakeDoc/askgrace/internal/sources/catalog"
)

type fakeCompleter struct {
	raw      string
	err      error
	question string
}

func (f *fakeCompleter) Submit(_ context.Context, question string) (string, error) {
	f.question = question
	return f.raw, f.err
}

func newService(t *testing.T, c Completer) *Service {
	t.Helper()
	validator, err := response.NewValidator()
	require.NoError(t, err)
	return NewService(
		c,
		response.NewExtractor(logger.NewNop()),
		validator,
		domain.NewResolver(catalog.Default()),
		logger.NewNop(),
	)
}

func requireError(t *testing.T, err error, kind domain.ErrorKind) *domain.Error {
	t.Helper()
	var de *domain.Error
	require.True(t, errors.As(err, &de), "expected *domain.Error, got %v", err)
	assert.Equal(t, kind, de.Kind)
	return de
}

func TestGetAnswerRepairsFencedResponse(t *testing.T) {
	fc := &fakeCompleter{raw: "```json\n{text: 'Hi', references: [{type:'article', title:'Q', link:'https://www.gotquestions.org/x'}]}\n```"}

	ans, err := newService(t, fc).GetAnswer(context.Background(), "What is grace?")
	require.NoError(t, err)

	want := domain.Answer{
		Text: "Hi",
		References: []domain.Reference{
			{Kind: domain.KindArticle, Title: "Q", Link: "https://www.gotquestions.org/x"},
		},
	}
	if diff := cmp.Diff(want, ans); diff != "" {
		t.Errorf("GetAnswer() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "What is grace?", fc.question)
}

func TestGetAnswerResolvesAndDropsReferences(t *testing.T) {
	fc := &fakeCompleter{raw: `{
		"text": "God loves you so much!",
		"references": [
			{"type": "verse", "title": "John 3:16", "link": "https://www.biblegateway.com/passage/?search=John+3:16"},
			{"type": "book", "title": "Unknown Kids Bible Title", "link": "https://example.com/book"},
			{"type": "video", "title": "Cartoon", "link": "https://videos.example.com"},
			{"type": "devotional", "title": "grace gems", "link": "not a url"}
		]
	}`}

	ans, err := newService(t, fc).GetAnswer(context.Background(), "Does God love me?")
	require.NoError(t, err)

	want := []domain.Reference{
		{Kind: domain.KindVerse, Title: "John 3:16", Link: "https://www.biblegateway.com/passage/?search=John+3:16"},
		{
			Kind:        domain.KindBook,
			Title:       "Grace: The Power to Change",
			Link:        "https://www.amazon.com/Grace-Power-Change-James-Richards/dp/1603749896",
			Description: `Alternative reference for: "Unknown Kids Bible Title".`,
		},
	}
	if diff := cmp.Diff(want, ans.References); diff != "" {
		t.Errorf("references mismatch (-want +got):\n%s", diff)
	}
}

func TestGetAnswerErrors(t *testing.T) {
	tests := []struct {
		name    string
		fc      *fakeCompleter
		kind    domain.ErrorKind
		message string
	}{
		{
			name:    "refusal passes through verbatim",
			fc:      &fakeCompleter{raw: "I cannot answer that."},
			kind:    domain.ErrModelRefused,
			message: "I cannot answer that.",
		},
		{
			name:    "empty completion",
			fc:      &fakeCompleter{raw: "   "},
			kind:    domain.ErrNoResponse,
			message: domain.MsgNoResponse,
		},
		{
			name:    "completer error keeps its kind",
			fc:      &fakeCompleter{err: domain.NewError(domain.ErrNoResponse, domain.MsgNoResponse)},
			kind:    domain.ErrNoResponse,
			message: domain.MsgNoResponse,
		},
		{
			name:    "unknown completer error",
			fc:      &fakeCompleter{err: errors.New("dial tcp: refused")},
			kind:    domain.ErrCompletionFailed,
			message: domain.MsgCompletionFailed,
		},
		{
			name:    "wrong top-level shape",
			fc:      &fakeCompleter{raw: `{"text": "Hi", "references": "none"}`},
			kind:    domain.ErrInvalidSchema,
			message: domain.MsgInvalidSchema,
		},
		{
			name:    "no usable references",
			fc:      &fakeCompleter{raw: `{"text": "Hi", "references": [{"type": "video", "title": "x", "link": "https://x.example"}]}`},
			kind:    domain.ErrIncompleteAnswer,
			message: domain.MsgIncompleteAnswer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ans, err := newService(t, tt.fc).GetAnswer(context.Background(), "q")
			de := requireError(t, err, tt.kind)
			assert.Equal(t, tt.message, de.Message)
			assert.Empty(t, ans.Text)
			assert.Empty(t, ans.References)
		})
	}
}

// Any answer with text and at least one structurally valid reference must
// come back with references, and every non-verse link must stay inside the
// catalog.
func TestGetAnswerSurvivorshipAndClosure(t *testing.T) {
	cat := catalog.Default()
	refs := []string{
		`{"type":"book","title":"Grace","link":"https://evil.example/book"}`,
		`{"type":"article","title":"monergism","link":"https://evil.example/a"}`,
		`{"type":"article","title":"Unlisted Blog","link":"https://evil.example/b"}`,
		`{"type":"sermon","title":"A sermon by Piper","link":"https://evil.example/s"}`,
		`{"type":"sermon","title":"nobody","link":"https://evil.example/s"}`,
		`{"type":"devotional","title":"whatever","link":"https://evil.example/d"}`,
		`{"type":"commentary","title":"Barnes","link":"https://evil.example/c"}`,
		`{"type":"commentary","title":"Unknown","link":"https://evil.example/c"}`,
	}

	for _, ref := range refs {
		t.Run(ref, func(t *testing.T) {
			fc := &fakeCompleter{raw: `{"text":"Hi","references":[` + ref + `]}`}

			ans, err := newService(t, fc).GetAnswer(context.Background(), "q")
			require.NoError(t, err)
			require.NotEmpty(t, ans.References)
			for _, r := range ans.References {
				assert.True(t, cat.Allows(r.Link), "link %q escapes the catalog", r.Link)
			}
		})
	}
}
