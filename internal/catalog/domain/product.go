package domain

import (
	"errors"
	"fmt"
	"strings"
)

type Gender string

const (
	GenderMen   Gender = "Men"
	GenderWomen Gender = "Women"
)

func ParseGender(s string) (Gender, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "men":
		return GenderMen, true
	case "women":
		return GenderWomen, true
	}
	return "", false
}

type Product struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Price       int64    `json:"price" yaml:"price"`
	Description string   `json:"description" yaml:"description"`
	Category    string   `json:"category" yaml:"category"`
	Gender      Gender   `json:"gender" yaml:"gender"`
	Images      []string `json:"images" yaml:"images"`
}

// PrimaryImage is the image shown in listings and used as fallback.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// MaxPrice bounds a single product price so that bag and order totals stay
// well inside int64.
const MaxPrice = 10_000_000

var ErrInvalidProduct = errors.New("invalid product")

func (p Product) Validate() error {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return fmt.Errorf("%w: missing id", ErrInvalidProduct)
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: product %s: missing name", ErrInvalidProduct, p.ID)
	case p.Price < 0:
		return fmt.Errorf("%w: product %s: negative price %d", ErrInvalidProduct, p.ID, p.Price)
	case p.Price > MaxPrice:
		return fmt.Errorf("%w: product %s: price %d above %d", ErrInvalidProduct, p.ID, p.Price, MaxPrice)
	case p.Gender != GenderMen && p.Gender != GenderWomen:
		return fmt.Errorf("%w: product %s: unknown gender %q", ErrInvalidProduct, p.ID, p.Gender)
	case len(p.Images) == 0:
		return fmt.Errorf("%w: product %s: no images", ErrInvalidProduct, p.ID)
	}
	return nil
}
