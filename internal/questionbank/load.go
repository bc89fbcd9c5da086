package questionbank

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.json
var defaultCatalog []byte

// Format is the serialization of a catalog file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Default returns the bank built from the embedded catalog.
func Default() (*Bank, error) {
	return Parse(defaultCatalog, FormatJSON)
}

// Load reads a catalog file. The format follows the extension: .yaml and
// .yml are YAML, anything else JSON. An empty path loads the embedded catalog.
func Load(path string) (*Bank, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	format := FormatJSON
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FormatYAML
	}
	b, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return b, nil
}

// Parse decodes, schema-checks and structurally validates a catalog.
func Parse(data []byte, format Format) (*Bank, error) {
	raw := data
	if format == FormatYAML {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		var err error
		raw, err = json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("normalize yaml: %w", err)
		}
	}

	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	var subjects []Subject
	if err := json.Unmarshal(raw, &subjects); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(subjects)
}
