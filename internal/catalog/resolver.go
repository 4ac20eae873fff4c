package catalog

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/ashureev/voicebooth/internal/domain"
)

// ordinalWords covers the spoken positions the resolver understands.
var ordinalWords = map[string]int{
	"first":  1,
	"second": 2,
	"third":  3,
	"fourth": 4,
}

// stopwords are filler tokens that carry no product information.
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "of": true, "to": true,
	"in": true, "for": true, "that": true, "this": true, "it": true,
	"me": true, "my": true, "i": true, "please": true, "want": true,
	"get": true, "buy": true, "add": true, "show": true, "one": true,
	"item": true, "product": true, "number": true,
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
}

// FindByReference resolves a spoken phrase to a single catalog item using an
// ordered fallback chain; the first rule that matches wins and there is no
// scoring:
//
//  1. exact id match
//  2. ordinal word within the category-filtered subset
//  3. every meaningful token appears in a product name
//  4. any meaningful token appears in a product name
//  5. numeric position in the full list
//  6. ordinal word over the full list
func (c *Catalog) FindByReference(text string) (domain.Product, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(text))
	if trimmed == "" {
		return domain.Product{}, false
	}

	if p, ok := c.ByID(trimmed); ok {
		return p, true
	}

	tokens := tokenize(trimmed)

	var ordinal, position int
	var category string
	for _, tok := range tokens {
		if n, ok := ordinalWords[tok]; ok && ordinal == 0 {
			ordinal = n
		}
		if category == "" {
			if canonical := NormalizeCategory(tok); c.hasCategory(canonical) {
				category = canonical
			}
		}
		if position == 0 {
			if n, err := strconv.Atoi(tok); err == nil && n > 0 {
				position = n
			}
		}
	}

	if ordinal > 0 && category != "" {
		subset := c.List(Filter{Category: category})
		if ordinal <= len(subset) {
			return subset[ordinal-1], true
		}
	}

	var meaningful []string
	for _, tok := range tokens {
		if stopwords[tok] {
			continue
		}
		if _, isOrdinal := ordinalWords[tok]; isOrdinal {
			continue
		}
		if _, err := strconv.Atoi(tok); err == nil {
			continue
		}
		meaningful = append(meaningful, tok)
	}

	if len(meaningful) > 0 {
		for _, p := range c.products {
			name := strings.ToLower(p.Name)
			all := true
			for _, tok := range meaningful {
				if !strings.Contains(name, tok) {
					all = false
					break
				}
			}
			if all {
				return p, true
			}
		}
		for _, p := range c.products {
			name := strings.ToLower(p.Name)
			for _, tok := range meaningful {
				if strings.Contains(name, tok) {
					return p, true
				}
			}
		}
	}

	if position > 0 && position <= len(c.products) {
		return c.products[position-1], true
	}
	if ordinal > 0 && ordinal <= len(c.products) {
		return c.products[ordinal-1], true
	}

	return domain.Product{}, false
}

func (c *Catalog) hasCategory(category string) bool {
	for _, p := range c.products {
		if strings.EqualFold(p.Category, category) {
			return true
		}
	}
	return false
}
