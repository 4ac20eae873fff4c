// Package catalog provides the fixed in-memory product catalog: filtered
// listing plus best-effort resolution of spoken phrases to items.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/ashureev/voicebooth/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var catalogYAML []byte

// categorySynonyms normalizes spoken category words to canonical categories.
var categorySynonyms = map[string]string{
	"phone":      "mobile",
	"phones":     "mobile",
	"smartphone": "mobile",
	"cellphone":  "mobile",
	"mobiles":    "mobile",
	"mugs":       "mug",
	"cup":        "mug",
	"cups":       "mug",
	"tee":        "tshirt",
	"tees":       "tshirt",
	"shirt":      "tshirt",
	"shirts":     "tshirt",
	"tshirts":    "tshirt",
	"t-shirt":    "tshirt",
	"t-shirts":   "tshirt",
	"shoe":       "shoes",
	"sneaker":    "shoes",
	"sneakers":   "shoes",
	"trainers":   "shoes",
	"headphone":  "headphones",
	"earbuds":    "headphones",
	"earphones":  "headphones",
	"bottles":    "bottle",
}

// Catalog is the immutable product list, loaded once at startup.
type Catalog struct {
	products []domain.Product
	byID     map[string]int
}

// Load parses the embedded catalog data.
func Load() (*Catalog, error) {
	var doc struct {
		Products []domain.Product `yaml:"products"`
	}
	if err := yaml.Unmarshal(catalogYAML, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(doc.Products) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	byID := make(map[string]int, len(doc.Products))
	for i, p := range doc.Products {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog entry %d has no id", i)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog id %q", p.ID)
		}
		byID[p.ID] = i
	}
	return &Catalog{products: doc.Products, byID: byID}, nil
}

// Products returns all catalog entries in their original order.
func (c *Catalog) Products() []domain.Product {
	return c.products
}

// ByID looks up a product by its exact id.
func (c *Catalog) ByID(id string) (domain.Product, bool) {
	i, ok := c.byID[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// NormalizeCategory maps a spoken category word to its canonical form.
// Unknown words pass through lowercased.
func NormalizeCategory(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if canonical, ok := categorySynonyms[s]; ok {
		return canonical
	}
	return s
}

// Filter holds independent listing predicates. Zero values mean "no
// constraint"; price bounds use pointers so zero prices stay expressible.
type Filter struct {
	Category string
	Color    string
	Size     string
	Query    string
	MinPrice *float64
	MaxPrice *float64
}

// List applies the filter predicates case-insensitively over the catalog and
// returns matches in original catalog order.
func (c *Catalog) List(f Filter) []domain.Product {
	category := NormalizeCategory(f.Category)
	color := strings.ToLower(strings.TrimSpace(f.Color))
	query := strings.ToLower(strings.TrimSpace(f.Query))

	var matches []domain.Product
	for _, p := range c.products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if color != "" && !strings.EqualFold(p.Color, color) {
			continue
		}
		if f.Size != "" && !p.HasSize(f.Size) {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		if query != "" {
			haystack := strings.ToLower(p.Name + " " + p.Description)
			if !strings.Contains(haystack, query) {
				continue
			}
		}
		matches = append(matches, p)
	}
	return matches
}
