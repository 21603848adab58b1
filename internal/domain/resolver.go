package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// sermonNoise is stripped from sermon titles before they become a search query.
var sermonNoise = regexp.MustCompile(`(?i)sermon|teaching|message`)

// Resolver rewrites model-supplied citations so that every link points into
// the curated catalog, whatever the model produced.
//
// Matching is a deliberate heuristic: a title matches a table entry when
// either one contains the other, ignoring case. Short common titles can
// therefore hit an unintended entry ("John" picks the first teacher whose
// name contains "john").
type Resolver struct {
	catalog *Catalog
}

// NewResolver creates a resolver over a loaded catalog.
func NewResolver(catalog *Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// Resolve rewrites refs in order. References that still have no valid link
// after resolution are returned in dropped instead of kept.
func (r *Resolver) Resolve(refs []Reference) (kept, dropped []Reference) {
	kept = make([]Reference, 0, len(refs))
	for _, ref := range refs {
		resolved := r.ResolveReference(ref)
		if !IsValidURL(resolved.Link) {
			dropped = append(dropped, ref)
			continue
		}
		kept = append(kept, resolved)
	}
	return kept, dropped
}

// ResolveReference applies the per-kind rule and the link post-condition to
// a single reference. The input is not modified.
func (r *Resolver) ResolveReference(ref Reference) Reference {
	switch ref.Kind {
	case KindBook:
		ref = r.resolveBook(ref)
	case KindArticle:
		ref = r.resolveArticle(ref)
	case KindSermon:
		ref = r.resolveSermon(ref)
	case KindDevotional:
		ref = r.resolveNamed(ref, r.catalog.devotionals, r.catalog.defaultDevotional,
			"From %s.", "Alternative devotional for: %s.")
	case KindCommentary:
		ref = r.resolveNamed(ref, r.catalog.commentaries, r.catalog.defaultCommentary,
			"Commentary by %s.", "Alternative commentary source for: %s.")
	case KindVerse:
		// Verses are looked up on demand through the verse pipeline.
	}

	if !IsValidURL(ref.Link) {
		ref.Link = r.catalog.fallbackURL
		ref.Description = annotate("Original source unavailable.", ref.Description)
	}
	return ref
}

func (r *Resolver) resolveBook(ref Reference) Reference {
	if book, ok := findEntry(r.catalog.books, ref.Title); ok {
		ref.Title = book.Name
		ref.Link = book.URL
		return ref
	}
	original := ref.Title
	ref.Title = r.catalog.defaultBook.Name
	ref.Link = r.catalog.defaultBook.URL
	ref.Description = annotate("Alternative reference for: "+quote(original)+".", ref.Description)
	return ref
}

func (r *Resolver) resolveArticle(ref Reference) Reference {
	for _, source := range r.catalog.sources {
		if WithinPrefix(ref.Link, source) {
			return ref
		}
	}

	source := r.catalog.defaultSource
	for _, candidate := range r.catalog.sources {
		if containsEither(ref.Title, lastPathSegment(candidate)) {
			source = candidate
			break
		}
	}
	ref.Link = source + "/search?q=" + encodeQueryComponent(ref.Title)
	ref.Description = annotate("Alternative source for: "+quote(ref.Title)+".", ref.Description)
	return ref
}

func (r *Resolver) resolveSermon(ref Reference) Reference {
	query := encodeQueryComponent(strings.TrimSpace(sermonNoise.ReplaceAllString(ref.Title, "")))

	if teacher, ok := findEntry(r.catalog.sermonTeachers, ref.Title); ok {
		ref.Link = appendQuery(teacher.URL, query)
		ref.Description = annotate("Sermon by "+teacher.Name+".", ref.Description)
		return ref
	}
	ref.Link = appendQuery(r.catalog.sermonSearchURL, query)
	ref.Description = annotate("Alternative sermon resource for: "+quote(ref.Title)+".", ref.Description)
	return ref
}

// resolveNamed covers the kinds whose match simply pins the link to the
// table URL: devotionals and commentaries.
func (r *Resolver) resolveNamed(ref Reference, table []Entry, fallback Entry, matched, missed string) Reference {
	if e, ok := findEntry(table, ref.Title); ok {
		ref.Link = e.URL
		ref.Description = annotate(fmt.Sprintf(matched, e.Name), ref.Description)
		return ref
	}
	ref.Link = fallback.URL
	ref.Description = annotate(fmt.Sprintf(missed, quote(ref.Title)), ref.Description)
	return ref
}

// findEntry returns the first entry whose name contains title or is
// contained by it, ignoring case.
func findEntry(entries []Entry, title string) (Entry, bool) {
	for _, e := range entries {
		if containsEither(title, e.Name) {
			return e, true
		}
	}
	return Entry{}, false
}

func containsEither(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// lastPathSegment mirrors splitting a URL on "/" and keeping the tail,
// which for a bare origin is the host name.
func lastPathSegment(u string) string {
	if i := strings.LastIndex(u, "/"); i >= 0 {
		return u[i+1:]
	}
	return u
}

func appendQuery(base, query string) string {
	if strings.Contains(base, "?") {
		return base + "&q=" + query
	}
	return base + "?q=" + query
}

// annotate prefixes note to an existing description.
func annotate(note, existing string) string {
	return strings.TrimSpace(note + " " + existing)
}

func quote(s string) string {
	return `"` + s + `"`
}
