package embedded

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/mimartz/storefront/internal/content/domain"
	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var contentYAML []byte

// Load decodes the embedded storefront pages.
func Load() (domain.Pages, error) {
	var p domain.Pages
	dec := yaml.NewDecoder(bytes.NewReader(contentYAML))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return domain.Pages{}, fmt.Errorf("decode content: %w", err)
	}
	if len(p.SizeGuide.Rows) == 0 || len(p.Care.Items) == 0 || len(p.Shipping.Options) == 0 {
		return domain.Pages{}, fmt.Errorf("decode content: incomplete pages")
	}
	return p, nil
}
