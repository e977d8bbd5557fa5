package models

type PlaceOrderResponse struct {
	Order   *Order       `json:"order"`
	Trade   *Transaction `json:"trade,omitempty"`
	Matched bool         `json:"matched"`
	Message string       `json:"message,omitempty"`
}

type CancelOrderResponse struct {
	OrderID string `json:"order_id"`
	Message string `json:"message"`
}

type OrderBookEntry struct {
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type OrderBookResponse struct {
	TokenID string           `json:"token_id"`
	Bids    []OrderBookEntry `json:"bids"`
	Asks    []OrderBookEntry `json:"asks"`
}

type MintTokenResponse struct {
	Token       *Token       `json:"token"`
	Transaction *Transaction `json:"transaction"`
}

type TransferTokenResponse struct {
	Transaction *Transaction `json:"transaction"`
	Message     string       `json:"message,omitempty"`
}
