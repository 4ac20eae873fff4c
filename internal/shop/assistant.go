// Package shop implements the e-commerce shopping assistant: catalog
// answers, cart management, and order placement, all returned as speakable
// text.
package shop

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ashureev/voicebooth/internal/catalog"
	"github.com/ashureev/voicebooth/internal/domain"
	"github.com/ashureev/voicebooth/internal/orders"
	"github.com/google/uuid"
)

// Assistant answers catalog, cart and order requests. One Assistant serves
// many sessions; per-session state (cart, order history) is passed in by the
// caller.
type Assistant struct {
	catalog *catalog.Catalog
	store   orders.Store
	now     func() time.Time

	mu     sync.Mutex // guards issued
	issued map[string]bool
}

// NewAssistant creates a shopping assistant over the given catalog and order
// store.
func NewAssistant(c *catalog.Catalog, store orders.Store) *Assistant {
	return &Assistant{
		catalog: c,
		store:   store,
		now:     time.Now,
		issued:  make(map[string]bool),
	}
}

// newOrderID issues a short random order id, unique within this process.
func (a *Assistant) newOrderID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	for {
		id := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
		if !a.issued[id] {
			a.issued[id] = true
			return id
		}
	}
}

// ListProducts describes the catalog entries matching the filter. Positions
// in the spoken list line up with catalog order, so "the second one" works
// as a follow-up reference.
func (a *Assistant) ListProducts(f catalog.Filter) string {
	matches := a.catalog.List(f)
	if len(matches) == 0 {
		return "I couldn't find any products matching that. Try a different category or price range."
	}

	lines := []string{fmt.Sprintf("I found %d product%s:", len(matches), plural(len(matches)))}
	for i, p := range matches {
		lines = append(lines, fmt.Sprintf("%d. %s, %s.", i+1, p.Name, p.PriceLabel()))
	}
	lines = append(lines, "Which one would you like to hear more about?")
	return strings.Join(lines, " ")
}

// ProductDetails resolves a spoken reference and describes the product.
func (a *Assistant) ProductDetails(reference string) string {
	p, ok := a.catalog.FindByReference(reference)
	if !ok {
		return unknownProductMessage(reference)
	}

	details := fmt.Sprintf("%s: %s It costs %s.", p.Name, p.Description, p.PriceLabel())
	if p.Color != "" {
		details += fmt.Sprintf(" Color: %s.", p.Color)
	}
	if len(p.Sizes) > 0 {
		details += fmt.Sprintf(" Available sizes: %s.", strings.Join(p.Sizes, ", "))
	}
	return details
}

// AddToCart resolves the reference and merges the quantity into the cart.
// Quantity is recorded as given; zero and negative values are not rejected.
func (a *Assistant) AddToCart(cart *domain.Cart, reference string, qty int) string {
	p, ok := a.catalog.FindByReference(reference)
	if !ok {
		return unknownProductMessage(reference)
	}

	cart.Add(p.ID, qty)
	return fmt.Sprintf("Added %d x %s to your cart. Anything else?", qty, p.Name)
}

// ViewCart describes the cart contents.
func (a *Assistant) ViewCart(cart *domain.Cart) string {
	if cart.IsEmpty() {
		return "Your cart is empty."
	}

	var lines []string
	var total float64
	for _, line := range cart.Items {
		if p, ok := a.catalog.ByID(line.ProductID); ok {
			lines = append(lines, fmt.Sprintf("%d x %s (%s each)", line.Quantity, p.Name, p.PriceLabel()))
			total += float64(line.Quantity) * p.Price
		} else {
			lines = append(lines, fmt.Sprintf("%d x %s", line.Quantity, line.ProductID))
		}
	}
	return fmt.Sprintf("In your cart: %s. That comes to %.2f USD.", strings.Join(lines, ", "), total)
}

// ClearCart empties the cart.
func (a *Assistant) ClearCart(cart *domain.Cart) string {
	cart.Clear()
	return "Done, your cart is empty now."
}

// PlaceOrder snapshots the cart into a new order, persists it, mirrors it
// into the session history, and empties the cart. An empty cart or a store
// failure degrades to a polite message and leaves the cart untouched.
func (a *Assistant) PlaceOrder(ctx context.Context, cart *domain.Cart, history *[]domain.Order) string {
	if cart.IsEmpty() {
		return "Your cart is empty — add something before placing an order."
	}

	order := domain.OrderFromCart(a.newOrderID(), a.now().UTC().Format(time.RFC3339), cart)
	if err := a.store.Append(ctx, order); err != nil {
		slog.Error("Failed to persist order", "order_id", order.OrderID, "error", err)
		return "Sorry, I couldn't save your order just now. Please try again in a moment."
	}

	*history = append(*history, order)
	cart.Clear()
	return fmt.Sprintf("Order %s placed! It covers %d item%s. Thanks for shopping with us!",
		order.OrderID, totalItems(order), plural(totalItems(order)))
}

// OrderHistory describes the orders placed in this session.
func (a *Assistant) OrderHistory(history []domain.Order) string {
	if len(history) == 0 {
		return "You haven't placed any orders in this session."
	}

	lines := make([]string, 0, len(history))
	for _, o := range history {
		lines = append(lines, fmt.Sprintf("order %s with %d item%s", o.OrderID, totalItems(o), plural(totalItems(o))))
	}
	return fmt.Sprintf("You've placed %d order%s this session: %s.",
		len(history), plural(len(history)), strings.Join(lines, ", "))
}

func totalItems(o domain.Order) int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func unknownProductMessage(reference string) string {
	return fmt.Sprintf("I couldn't find a product matching %q. Could you describe it differently?",
		strings.TrimSpace(reference))
}
