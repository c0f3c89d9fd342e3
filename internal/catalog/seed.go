package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pharmacare/showcase/internal/model"
)

//go:embed seed.yaml
var embeddedSeed []byte

// ErrInvalidSeed wraps every seed validation failure.
var ErrInvalidSeed = errors.New("invalid catalog seed")

// Seed is the on-disk catalog description.
type Seed struct {
	Categories []string        `yaml:"categories"`
	Products   []model.Product `yaml:"products"`
}

// LoadSeed reads a seed file. An empty path loads the built-in catalog.
func LoadSeed(path string) (Seed, error) {
	data := embeddedSeed
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Seed{}, fmt.Errorf("reading seed %s: %w", path, err)
		}
		data = b
	}
	return ParseSeed(data)
}

// ParseSeed decodes and validates seed YAML.
func ParseSeed(data []byte) (Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Seed{}, fmt.Errorf("decoding seed: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Seed{}, err
	}
	return s, nil
}

// Validate checks product IDs, names, prices and categories.
func (s Seed) Validate() error {
	known := make(map[string]bool, len(s.Categories)+1)
	known[model.CategoryAll] = true
	for _, c := range s.Categories {
		if strings.TrimSpace(c) == "" {
			return fmt.Errorf("%w: empty category name", ErrInvalidSeed)
		}
		known[c] = true
	}

	seen := make(map[int]bool, len(s.Products))
	for i, p := range s.Products {
		switch {
		case p.ID <= 0:
			return fmt.Errorf("%w: product #%d has no id", ErrInvalidSeed, i)
		case seen[p.ID]:
			return fmt.Errorf("%w: duplicate product id %d", ErrInvalidSeed, p.ID)
		case strings.TrimSpace(p.Name) == "":
			return fmt.Errorf("%w: product %d has no name", ErrInvalidSeed, p.ID)
		case p.Price <= 0:
			return fmt.Errorf("%w: product %d price must be positive", ErrInvalidSeed, p.ID)
		case p.OriginalPrice != 0 && p.OriginalPrice < p.Price:
			return fmt.Errorf("%w: product %d original price below price", ErrInvalidSeed, p.ID)
		case !known[p.Category]:
			return fmt.Errorf("%w: product %d has unknown category %q", ErrInvalidSeed, p.ID, p.Category)
		}
		seen[p.ID] = true
	}
	return nil
}
