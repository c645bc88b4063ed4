package domain

import "time"

// CartItem is a single line in a shopping cart
type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

// Cart is the session's shopping cart. Checkout consumes it elsewhere.
type Cart struct {
	ID        string     `json:"id"`
	SessionID string     `json:"sessionId"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Total returns the sum of all line totals
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

// AddToCartRequest is the payload forwarded from the comparison matrix
type AddToCartRequest struct {
	Quantity int `json:"quantity"`
}
