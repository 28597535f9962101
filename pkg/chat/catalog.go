package chat

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Catalog is the fixed set of models the operator can select from.
type Catalog struct {
	Default string   `yaml:"default" json:"default"`
	Models  []string `yaml:"models" json:"models"`
}

// DefaultCatalog returns the compiled-in model list, used when no catalog
// file is deployed next to the binary.
func DefaultCatalog() Catalog {
	return Catalog{
		Default: DefaultModel,
		Models: []string{
			"gemini-2.0-flash",
			"gemini-2.5-flash",
			"gemini-2.0-pro",
			"gemini-2.5-pro",
		},
	}
}

// LoadCatalog reads a YAML model catalog from the given path.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to read model catalog %s: %w", path, err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return Catalog{}, fmt.Errorf("failed to parse model catalog %s: %w", path, err)
	}

	if len(catalog.Models) == 0 {
		return Catalog{}, fmt.Errorf("model catalog %s lists no models", path)
	}
	if catalog.Default == "" {
		catalog.Default = catalog.Models[0]
	}
	if !catalog.Contains(catalog.Default) {
		return Catalog{}, fmt.Errorf("model catalog %s: default %q is not in the model list", path, catalog.Default)
	}
	return catalog, nil
}

// LoadCatalogWithFallback reads the catalog file and falls back to the
// compiled-in list when the file is missing or invalid.
func LoadCatalogWithFallback(path string) Catalog {
	if catalog, err := LoadCatalog(path); err == nil {
		return catalog
	}
	return DefaultCatalog()
}

// Contains reports whether the given model is selectable.
func (c Catalog) Contains(model string) bool {
	return slices.Contains(c.Models, model)
}
