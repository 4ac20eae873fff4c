package domain

// CartItem is a single cart line: one product and its quantity.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Cart holds the ordered cart lines for one session. Lines are unique by
// product id; adding an id that is already present merges quantities.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Add merges qty into an existing line for productID or appends a new line.
// Quantity is deliberately not validated; callers may pass zero or negative
// values and the cart records them as-is.
func (c *Cart) Add(productID string, qty int) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += qty
			return
		}
	}
	c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: qty})
}

// Clear removes all lines from the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// IsEmpty returns true if the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalQuantity returns the sum of all line quantities.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}
