package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed curated.yaml
var embedded []byte

// Loader reads a curated catalog, either from a file or from the copy
// compiled into the binary.
type Loader struct {
	filePath string
}

// NewLoader creates a loader. An empty filePath selects the embedded catalog.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Source describes where Load reads from, for startup logs.
func (l *Loader) Source() string {
	if l.filePath == "" {
		return "embedded"
	}
	return l.filePath
}

// Load reads and parses the catalog YAML. Unknown keys are rejected so that
// a typo in an override file fails at startup instead of silently emptying
// a table.
func (l *Loader) Load() (Config, error) {
	data := embedded
	if l.filePath != "" {
		var err error
		data, err = os.ReadFile(l.filePath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read catalog file: %w", err)
		}
	}
	return parse(data)
}

func parse(data []byte) (Config, error) {
	var config Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("catalog yaml is empty")
		}
		return Config{}, fmt.Errorf("failed to parse catalog yaml: %w", err)
	}
	return config, nil
}
