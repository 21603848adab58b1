package catalog

import (
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/askgrace/internal/domain"
)

// Map converts a parsed catalog file into the immutable domain catalog.
func Map(config Config) (*domain.Catalog, error) {
	c, err := domain.NewCatalog(domain.CatalogTables{
		Books:             mapEntries(config.Books),
		Sources:           trimAll(config.Sources),
		SermonTeachers:    mapEntries(config.SermonTeachers),
		Devotionals:       mapEntries(config.Devotionals),
		Commentaries:      mapEntries(config.Commentaries),
		DefaultBook:       strings.TrimSpace(config.Defaults.Book),
		DefaultSource:     strings.TrimSpace(config.Defaults.Source),
		SermonSearchURL:   strings.TrimSpace(config.Defaults.SermonSearch),
		DefaultDevotional: strings.TrimSpace(config.Defaults.Devotional),
		DefaultCommentary: strings.TrimSpace(config.Defaults.Commentary),
		FallbackURL:       strings.TrimSpace(config.Defaults.FallbackURL),
	})
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return c, nil
}

// Load reads and validates the catalog at path, or the embedded one when
// path is empty.
func Load(path string) (*domain.Catalog, error) {
	config, err := NewLoader(path).Load()
	if err != nil {
		return nil, err
	}
	return Map(config)
}

// Default returns the embedded catalog. It panics if the embedded file is
// broken, which only a bad build can cause.
func Default() *domain.Catalog {
	c, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

func mapEntries(props []EntryProps) []domain.Entry {
	entries := make([]domain.Entry, 0, len(props))
	for _, p := range props {
		entries = append(entries, domain.Entry{
			Name: strings.TrimSpace(p.Name),
			URL:  strings.TrimSpace(p.URL),
		})
	}
	return entries
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.TrimSpace(s))
	}
	return out
}
