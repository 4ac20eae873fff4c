// Package orders provides persistence for placed orders.
package orders

import (
	"context"

	"github.com/ashureev/voicebooth/internal/domain"
)

// Store defines the interface for the append-only order list.
type Store interface {
	// Append adds one order to the persisted list.
	Append(ctx context.Context, order domain.Order) error

	// List returns all persisted orders in append order.
	List(ctx context.Context) ([]domain.Order, error)

	// Close releases any underlying resources.
	Close() error
}
