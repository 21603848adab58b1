package domain

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Entry is one curated name/URL pair.
type Entry struct {
	Name string
	URL  string
}

// CatalogTables is the raw material for a Catalog. Order matters: lookups
// return the first matching entry.
type CatalogTables struct {
	Books          []Entry
	Sources        []string // article URL prefixes
	SermonTeachers []Entry
	Devotionals    []Entry
	Commentaries   []Entry

	DefaultBook       string // name of an entry in Books
	DefaultSource     string // member of Sources
	SermonSearchURL   string // search endpoint used when no teacher matches
	DefaultDevotional string // name of an entry in Devotionals
	DefaultCommentary string // name of an entry in Commentaries
	FallbackURL       string // last-resort link for anything that is still invalid
}

// Catalog is the read-only allow-list consulted by the Resolver.
// It is built once at startup and never mutated afterwards, so it is safe
// to share between goroutines without locking.
type Catalog struct {
	books          []Entry
	sources        []string
	sermonTeachers []Entry
	devotionals    []Entry
	commentaries   []Entry

	defaultBook       Entry
	defaultSource     string
	sermonSearchURL   string
	defaultDevotional Entry
	defaultCommentary Entry
	fallbackURL       string
}

// CatalogSizes summarizes a catalog for status endpoints.
type CatalogSizes struct {
	Books          int `json:"books"`
	Sources        int `json:"sources"`
	SermonTeachers int `json:"sermon_teachers"`
	Devotionals    int `json:"devotionals"`
	Commentaries   int `json:"commentaries"`
}

// NewCatalog validates t and copies it into an immutable Catalog.
// Every URL must be absolute and every default must name an existing entry.
func NewCatalog(t CatalogTables) (*Catalog, error) {
	var errs *multierror.Error

	checkEntries := func(table string, entries []Entry) {
		if len(entries) == 0 {
			errs = multierror.Append(errs, fmt.Errorf("%s: table is empty", table))
		}
		for i, e := range entries {
			if strings.TrimSpace(e.Name) == "" {
				errs = multierror.Append(errs, fmt.Errorf("%s[%d]: empty name", table, i))
			}
			if !IsValidURL(e.URL) {
				errs = multierror.Append(errs, fmt.Errorf("%s[%d]: invalid url %q", table, i, e.URL))
			}
		}
	}
	checkEntries("books", t.Books)
	checkEntries("sermon_teachers", t.SermonTeachers)
	checkEntries("devotionals", t.Devotionals)
	checkEntries("commentaries", t.Commentaries)

	if len(t.Sources) == 0 {
		errs = multierror.Append(errs, fmt.Errorf("sources: table is empty"))
	}
	sources := make([]string, 0, len(t.Sources))
	for i, s := range t.Sources {
		s = strings.TrimRight(s, "/")
		if !IsValidURL(s) {
			errs = multierror.Append(errs, fmt.Errorf("sources[%d]: invalid url %q", i, s))
		}
		sources = append(sources, s)
	}

	c := &Catalog{
		books:           cloneEntries(t.Books),
		sources:         sources,
		sermonTeachers:  cloneEntries(t.SermonTeachers),
		devotionals:     cloneEntries(t.Devotionals),
		commentaries:    cloneEntries(t.Commentaries),
		defaultSource:   strings.TrimRight(t.DefaultSource, "/"),
		sermonSearchURL: t.SermonSearchURL,
		fallbackURL:     t.FallbackURL,
	}

	var ok bool
	if c.defaultBook, ok = entryByName(c.books, t.DefaultBook); !ok {
		errs = multierror.Append(errs, fmt.Errorf("default book %q is not in books", t.DefaultBook))
	}
	if c.defaultDevotional, ok = entryByName(c.devotionals, t.DefaultDevotional); !ok {
		errs = multierror.Append(errs, fmt.Errorf("default devotional %q is not in devotionals", t.DefaultDevotional))
	}
	if c.defaultCommentary, ok = entryByName(c.commentaries, t.DefaultCommentary); !ok {
		errs = multierror.Append(errs, fmt.Errorf("default commentary %q is not in commentaries", t.DefaultCommentary))
	}
	if !containsString(c.sources, c.defaultSource) {
		errs = multierror.Append(errs, fmt.Errorf("default source %q is not in sources", t.DefaultSource))
	}
	if !IsValidURL(c.sermonSearchURL) {
		errs = multierror.Append(errs, fmt.Errorf("invalid sermon search url %q", t.SermonSearchURL))
	}
	if !IsValidURL(c.fallbackURL) {
		errs = multierror.Append(errs, fmt.Errorf("invalid fallback url %q", t.FallbackURL))
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) Books() []Entry          { return cloneEntries(c.books) }
func (c *Catalog) Sources() []string       { return append([]string(nil), c.sources...) }
func (c *Catalog) SermonTeachers() []Entry { return cloneEntries(c.sermonTeachers) }
func (c *Catalog) Devotionals() []Entry    { return cloneEntries(c.devotionals) }
func (c *Catalog) Commentaries() []Entry   { return cloneEntries(c.commentaries) }
func (c *Catalog) FallbackURL() string     { return c.fallbackURL }

func (c *Catalog) Sizes() CatalogSizes {
	return CatalogSizes{
		Books:          len(c.books),
		Sources:        len(c.sources),
		SermonTeachers: len(c.sermonTeachers),
		Devotionals:    len(c.devotionals),
		Commentaries:   len(c.commentaries),
	}
}

// Allows reports whether link points into the catalog: under an article
// source, under any curated table URL or the sermon search endpoint, or
// exactly the fallback URL.
func (c *Catalog) Allows(link string) bool {
	if link == c.fallbackURL {
		return true
	}
	for _, s := range c.sources {
		if WithinPrefix(link, s) {
			return true
		}
	}
	for _, table := range [][]Entry{c.books, c.sermonTeachers, c.devotionals, c.commentaries} {
		for _, e := range table {
			if WithinPrefix(link, e.URL) {
				return true
			}
		}
	}
	return WithinPrefix(link, c.sermonSearchURL)
}

func cloneEntries(in []Entry) []Entry {
	return append([]Entry(nil), in...)
}

func entryByName(entries []Entry, name string) (Entry, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
