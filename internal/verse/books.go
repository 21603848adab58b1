package verse

import "strings"

// books lists the protestant canon in canonical order, plus the common
// alternative spellings people type.
var books = []string{
	// Old Testament
	"Genesis", "Exodus", "Leviticus", "Numbers", "Deuteronomy",
	"Joshua", "Judges", "Ruth", "1 Samuel", "2 Samuel",
	"1 Kings", "2 Kings", "1 Chronicles", "2 Chronicles", "Ezra",
	"Nehemiah", "Esther", "Job", "Psalms", "Proverbs",
	"Ecclesiastes", "Song of Solomon", "Isaiah", "Jeremiah", "Lamentations",
	"Ezekiel", "Daniel", "Hosea", "Joel", "Amos",
	"Obadiah", "Jonah", "Micah", "Nahum", "Habakkuk",
	"Zephaniah", "Haggai", "Zechariah", "Malachi",
	// New Testament
	"Matthew", "Mark", "Luke", "John", "Acts",
	"Romans", "1 Corinthians", "2 Corinthians", "Galatians", "Ephesians",
	"Philippians", "Colossians", "1 Thessalonians", "2 Thessalonians", "1 Timothy",
	"2 Timothy", "Titus", "Philemon", "Hebrews", "James",
	"1 Peter", "2 Peter", "1 John", "2 John", "3 John",
	"Jude", "Revelation",
	// Aliases
	"Psalm", "Song of Songs", "Revelations",
}

// maxBookWords is the word count of the longest entry in books.
const maxBookWords = 3

var bookIndex = func() map[string]struct{} {
	idx := make(map[string]struct{}, len(books))
	for _, b := range books {
		idx[bookKey(b)] = struct{}{}
	}
	return idx
}()

// bookKey folds case and spacing so "1john", "1 John" and "1  JOHN" collide.
func bookKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

// IsBook reports whether name is a known book of the Bible.
func IsBook(name string) bool {
	_, ok := bookIndex[bookKey(name)]
	return ok
}
