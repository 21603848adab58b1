package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
books:
  - name: Only Book
    url: https://books.example/only
sources:
  - https://articles.example/
sermon_teachers:
  - name: Only Teacher
    url: https://sermons.example/library
devotionals:
  - name: Only Devotional
    url: https://devotionals.example
commentaries:
  - name: Only Commentary
    url: https://commentaries.example/only
defaults:
  book: Only Book
  source: https://articles.example
  sermon_search: https://sermons.example/search
  devotional: Only Devotional
  commentary: Only Commentary
  fallback_url: https://articles.example
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoaderLoadEmbedded(t *testing.T) {
	loader := NewLoader("")
	assert.Equal(t, "embedded", loader.Source())

	config, err := loader.Load()
	require.NoError(t, err)

	assert.Len(t, config.Books, 8)
	assert.Len(t, config.Sources, 11)
	assert.Len(t, config.SermonTeachers, 5)
	assert.Len(t, config.Devotionals, 3)
	assert.Len(t, config.Commentaries, 5)
	assert.Equal(t, "Grace: The Power to Change", config.Books[0].Name, "order is preserved")
	assert.Equal(t, "Grace Gems", config.Defaults.Devotional)
}

func TestLoaderLoadFile(t *testing.T) {
	path := writeCatalog(t, minimalYAML)

	config, err := NewLoader(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "Only Book", config.Books[0].Name)

	c, err := Map(config)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://articles.example"}, c.Sources(), "trailing slash trimmed")
}

func TestLoaderLoadFileNotFound(t *testing.T) {
	_, err := NewLoader("/nonexistent/path/catalog.yaml").Load()
	assert.Error(t, err)
}

func TestLoaderRejectsUnknownKeys(t *testing.T) {
	path := writeCatalog(t, minimalYAML+"sermons:\n  - name: typo\n")

	_, err := NewLoader(path).Load()
	assert.Error(t, err)
}

func TestLoaderRejectsEmptyFile(t *testing.T) {
	path := writeCatalog(t, "")

	_, err := NewLoader(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestMapValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:    "default book missing from table",
			mutate:  func(c *Config) { c.Defaults.Book = "Unknown" },
			wantErr: "default book",
		},
		{
			name:    "relative url",
			mutate:  func(c *Config) { c.Devotionals[0].URL = "/devotionals" },
			wantErr: "devotionals[0]",
		},
		{
			name:    "empty table",
			mutate:  func(c *Config) { c.Commentaries = nil },
			wantErr: "commentaries",
		},
		{
			name:    "default source not allow-listed",
			mutate:  func(c *Config) { c.Defaults.Source = "https://elsewhere.example" },
			wantErr: "default source",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := parse([]byte(minimalYAML))
			require.NoError(t, err)
			tt.mutate(&config)

			_, err = Map(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefault(t *testing.T) {
	c := Default()

	sizes := c.Sizes()
	assert.Equal(t, 8, sizes.Books)
	assert.Equal(t, 11, sizes.Sources)
	assert.Equal(t, "https://www.gotquestions.org", c.FallbackURL())
}
