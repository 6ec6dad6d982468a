// Package catalog holds the static registry of companies and industries the
// digest tracks.
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

//go:embed default.yaml
var defaultCatalog []byte

// ErrEmptyCatalog is returned when a catalog declares no companies.
var ErrEmptyCatalog = errors.New("catalog declares no companies")

// Company is a tracked company. Its match patterns are Name plus Aliases.
type Company struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

// Patterns returns the name followed by the aliases.
func (c Company) Patterns() []string {
	patterns := make([]string, 0, len(c.Aliases)+1)
	patterns = append(patterns, c.Name)
	return append(patterns, c.Aliases...)
}

// Industry matches an article when a keyword hits and no negative keyword does.
type Industry struct {
	Name             string   `yaml:"name"`
	Keywords         []string `yaml:"keywords"`
	NegativeKeywords []string `yaml:"negativeKeywords"`
}

// Catalog is loaded once per run and treated as immutable. Declaration order
// of companies and industries is significant.
type Catalog struct {
	Companies  []Company  `yaml:"companies"`
	Industries []Industry `yaml:"industries"`
}

// Company looks a company up by its exact name.
func (c Catalog) Company(name string) (Company, bool) {
	for _, company := range c.Companies {
		if company.Name == name {
			return company, true
		}
	}
	return Company{}, false
}

// Load reads a catalog from a YAML file.
func Load(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog %s: %w", path, err)
	}

	cat, err := Parse(raw)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}

// Parse decodes a YAML catalog. Unknown keys are rejected.
func Parse(raw []byte) (Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var cat Catalog
	if err := dec.Decode(&cat); err != nil {
		if errors.Is(err, io.EOF) {
			return Catalog{}, ErrEmptyCatalog
		}
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}

	if len(cat.Companies) == 0 {
		return Catalog{}, ErrEmptyCatalog
	}
	return cat, nil
}

// Default returns the built-in catalog.
func Default() Catalog {
	cat, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return cat
}
