package domain

// Kind is the closed set of citation categories a model may attach to an answer.
type Kind string

const (
	KindVerse      Kind = "verse"
	KindBook       Kind = "book"
	KindCommentary Kind = "commentary"
	KindArticle    Kind = "article"
	KindSermon     Kind = "sermon"
	KindDevotional Kind = "devotional"
)

var kinds = []Kind{KindVerse, KindBook, KindCommentary, KindArticle, KindSermon, KindDevotional}

// Kinds returns every accepted reference kind in prompt order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// ParseKind maps the wire value onto a Kind. Matching is exact: the model is
// told to use lowercase names and anything else is a schema violation.
func ParseKind(s string) (Kind, bool) {
	for _, k := range kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Reference is a citation attached to an answer.
//
// It starts life as untrusted model output; the Resolver rewrites Title, Link
// and Description so that Link always lands inside the curated catalog.
// The kind travels as "type" on the wire because that is the field name the
// model is instructed to use.
type Reference struct {
	Kind        Kind   `json:"type"`
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description,omitempty"`
}

// Answer is what the UI renders for one question.
// References keep the model's order minus anything dropped along the way.
type Answer struct {
	Text       string      `json:"text"`
	References []Reference `json:"references"`
}
