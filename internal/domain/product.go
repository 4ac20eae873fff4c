// Package domain contains core domain types for the Voicebooth agents.
package domain

import (
	"fmt"
	"strings"
)

// Product represents an immutable catalog entry.
type Product struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Price       float64  `json:"price" yaml:"price"`
	Currency    string   `json:"currency" yaml:"currency"`
	Category    string   `json:"category" yaml:"category"`
	Color       string   `json:"color,omitempty" yaml:"color,omitempty"`
	Sizes       []string `json:"sizes,omitempty" yaml:"sizes,omitempty"`
}

// PriceLabel returns a speakable price string, e.g. "24.99 USD".
func (p *Product) PriceLabel() string {
	return fmt.Sprintf("%.2f %s", p.Price, p.Currency)
}

// HasSize returns true if the product is offered in the given size.
func (p *Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if strings.EqualFold(s, size) {
			return true
		}
	}
	return false
}
