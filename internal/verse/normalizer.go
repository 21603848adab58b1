package verse

import (
	"regexp"
	"strings"

	"github.com/MrSnakeDoc/askgrace/internal/domain"
)

var (
	// referencePattern finds "<words> <chapter>:<verse>[-<end>]" anywhere in
	// the input. The book group is deliberately wide; bookOf narrows it down.
	referencePattern = regexp.MustCompile(`\b((?:[1-3]\s*)?[A-Za-z]+(?:\s+[A-Za-z]+)*)\s+(\d+):(\d+)(?:-(\d+))?\b`)

	translations   = regexp.MustCompile(`(?i)\b(?:kjv|niv|nasb|nlt|esv)\b`)
	spaces         = regexp.MustCompile(`\s+`)
	separated      = regexp.MustCompile(`(\d+)[:.]\s*(\d+)`)
	spaceSeparated = regexp.MustCompile(`(\d+)\s+(\d+)`)
	numberedToken  = regexp.MustCompile(`^[1-3]$`)
)

// Normalize turns loose user input into "Book Chapter:Verse[-End]".
//
// The input is first searched as-is. Failing that, translation tags are
// removed, whitespace is collapsed, "3.16", "3: 16" and "3 16" become "3:16"
// and the search runs once more. The book keeps the case it was typed in.
func Normalize(input string) (string, error) {
	if ref, ok := extract(input); ok {
		return ref, nil
	}

	cleaned := translations.ReplaceAllString(input, "")
	cleaned = spaces.ReplaceAllString(cleaned, " ")
	cleaned = separated.ReplaceAllString(cleaned, "$1:$2")
	cleaned = spaceSeparated.ReplaceAllString(cleaned, "$1:$2")
	cleaned = strings.TrimSpace(cleaned)

	if ref, ok := extract(cleaned); ok {
		return ref, nil
	}
	return "", domain.NewError(domain.ErrInvalidReferenceFormat, domain.MsgInvalidReferenceFormat)
}

func extract(s string) (string, bool) {
	m := referencePattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}

	ref := bookOf(m[1]) + " " + m[2] + ":" + m[3]
	if m[4] != "" {
		ref += "-" + m[4]
	}
	return ref, true
}

// bookOf picks the book name out of the words preceding the chapter.
// The longest trailing run of words naming a known book wins, so
// "read Song of Solomon" gives "Song of Solomon" and "I love john" gives
// "john". Unknown books fall back to the last word, keeping a numeric
// prefix when there is one.
func bookOf(words string) string {
	tokens := strings.Fields(words)
	for n := min(maxBookWords, len(tokens)); n > 0; n-- {
		candidate := strings.Join(tokens[len(tokens)-n:], " ")
		if IsBook(candidate) {
			return candidate
		}
	}

	last := len(tokens) - 1
	if last > 0 && numberedToken.MatchString(tokens[last-1]) {
		return tokens[last-1] + " " + tokens[last]
	}
	return tokens[last]
}
