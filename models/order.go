package models

import "time"

type Order struct {
	ID        string      `json:"id"`
	TokenID   string      `json:"token_id"`
	UserID    string      `json:"user_id"`
	Side      OrderSide   `json:"side"`     // "buy" or "sell"
	Quantity  int         `json:"quantity"` // whole token units
	Price     float64     `json:"price"`    // limit price per unit
	Status    OrderStatus `json:"status"`   // "open", "filled", "cancelled"
	CreatedAt time.Time   `json:"created_at"`
}

// IsOpen reports whether the order can still participate in a match
// or be cancelled.
func (o *Order) IsOpen() bool {
	return o.Status == OrderStatusOpen
}
