package verse

import "strings"

// Clean flattens verse text into one display paragraph: newlines and runs
// of whitespace become a single space and the ends are trimmed.
func Clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
