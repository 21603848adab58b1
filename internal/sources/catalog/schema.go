package catalog

// Config is the YAML layout of a curated catalog file.
// Tables are sequences rather than maps so that lookup order survives parsing.
type Config struct {
	Books          []EntryProps `yaml:"books"`
	Sources        []string     `yaml:"sources"`
	SermonTeachers []EntryProps `yaml:"sermon_teachers"`
	Devotionals    []EntryProps `yaml:"devotionals"`
	Commentaries   []EntryProps `yaml:"commentaries"`
	Defaults       Defaults     `yaml:"defaults"`
}

// EntryProps is one named link in a table.
type EntryProps struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Defaults names the entries used when nothing in a table matches.
type Defaults struct {
	Book         string `yaml:"book"`
	Source       string `yaml:"source"`
	SermonSearch string `yaml:"sermon_search"`
	Devotional   string `yaml:"devotional"`
	Commentary   string `yaml:"commentary"`
	FallbackURL  string `yaml:"fallback_url"`
}
