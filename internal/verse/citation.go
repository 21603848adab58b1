package verse

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Citation is a canonical reference broken into its parts.
type Citation struct {
	Book     string `parser:"@Book"`
	Chapter  int    `parser:"@Number \":\""`
	Verse    int    `parser:"@Number"`
	EndVerse *int   `parser:"( \"-\" @Number )?"`
}

var citationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Book", Pattern: `(?:[1-3]\s*)?[A-Za-z]+(?:\s+[A-Za-z]+)*`},
	{Name: "Number", Pattern: `\d+`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Dash", Pattern: `-`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var citationParser = participle.MustBuild[Citation](
	participle.Lexer(citationLexer),
	participle.Elide("Whitespace"),
)

// ParseCitation parses a reference in the exact form Normalize produces.
func ParseCitation(ref string) (*Citation, error) {
	c, err := citationParser.ParseString("", ref)
	if err != nil {
		return nil, fmt.Errorf("parse citation %q: %w", ref, err)
	}
	if c.Chapter < 1 || c.Verse < 1 {
		return nil, fmt.Errorf("parse citation %q: chapter and verse start at 1", ref)
	}
	if c.EndVerse != nil && *c.EndVerse < c.Verse {
		return nil, fmt.Errorf("parse citation %q: range ends before it starts", ref)
	}
	return c, nil
}

// String renders the citation back to "Book Chapter:Verse[-End]".
func (c *Citation) String() string {
	s := fmt.Sprintf("%s %d:%d", c.Book, c.Chapter, c.Verse)
	if c.EndVerse != nil {
		s += fmt.Sprintf("-%d", *c.EndVerse)
	}
	return s
}
