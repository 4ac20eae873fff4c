package domain

// OrderItem is one line of a placed order.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Order is an immutable snapshot of a cart at checkout time.
type Order struct {
	OrderID   string      `json:"order_id"`
	Timestamp string      `json:"timestamp"`
	Items     []OrderItem `json:"items"`
}

// OrderFromCart snapshots the cart's lines into a new order.
func OrderFromCart(orderID, timestamp string, cart *Cart) Order {
	items := make([]OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, OrderItem{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	return Order{OrderID: orderID, Timestamp: timestamp, Items: items}
}
