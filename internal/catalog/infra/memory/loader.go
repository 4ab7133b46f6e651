package memory

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mimartz/storefront/internal/catalog/domain"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Products []productRecord `yaml:"products"`
}

type productRecord struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Price       int64    `yaml:"price"`
	Description string   `yaml:"description"`
	Category    string   `yaml:"category"`
	Gender      string   `yaml:"gender"`
	Image       string   `yaml:"image"`
	Images      []string `yaml:"images"`
}

// LoadDefault returns the catalog compiled into the binary.
func LoadDefault() ([]domain.Product, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

func LoadFile(path string) ([]domain.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a YAML catalog and validates every entry. The primary image is
// always first in Images: a record with only `image` gets Images=[image], and
// an `image` missing from a non-empty list is prepended.
func Load(r io.Reader) ([]domain.Product, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	out := make([]domain.Product, 0, len(file.Products))
	seen := make(map[string]struct{}, len(file.Products))
	for i, rec := range file.Products {
		p, err := rec.toDomain()
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("catalog entry %d: %w: duplicate id %q", i, domain.ErrInvalidProduct, p.ID)
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}

func (rec productRecord) toDomain() (domain.Product, error) {
	images := make([]string, 0, len(rec.Images)+1)
	for _, img := range rec.Images {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}
	if primary := strings.TrimSpace(rec.Image); primary != "" && !contains(images, primary) {
		images = append([]string{primary}, images...)
	}

	p := domain.Product{
		ID:          strings.TrimSpace(rec.ID),
		Name:        strings.TrimSpace(rec.Name),
		Price:       rec.Price,
		Description: strings.TrimSpace(rec.Description),
		Category:    strings.TrimSpace(rec.Category),
		Images:      images,
	}
	if g, ok := domain.ParseGender(rec.Gender); ok {
		p.Gender = g
	} else {
		p.Gender = domain.Gender(rec.Gender)
	}
	return p, p.Validate()
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
