package rewrite

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// LoadCatalog parses a YAML catalog into a tree, resolving matcher and
// rule names against the registry.
func LoadCatalog(data []byte, reg *Registry) (*Tree, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return FromMap("", raw, reg)
}

// LoadCatalogFile reads a YAML catalog from disk.
func LoadCatalogFile(path string, reg *Registry) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return LoadCatalog(data, reg)
}

// DefaultCatalog builds the built-in catalog over the default registry.
func DefaultCatalog() (*Tree, error) {
	return LoadCatalog(defaultCatalogYAML, DefaultRegistry())
}
