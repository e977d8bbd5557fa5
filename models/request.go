package models

type PlaceOrderRequest struct {
	TokenID  string  `json:"token_id" validate:"required"`
	UserID   string  `json:"user_id" validate:"required"`
	Side     string  `json:"side" validate:"required,oneof=buy sell"`
	Quantity int     `json:"quantity" validate:"required,gt=0"`
	Price    float64 `json:"price" validate:"required,gt=0"`
}

type MintTokenRequest struct {
	Name        string `json:"name" validate:"required"`
	Symbol      string `json:"symbol" validate:"required"`
	Standard    string `json:"standard" validate:"required,oneof=ERC-20 ERC-721"`
	TotalSupply int    `json:"total_supply" validate:"required,gt=0"`
	Owner       string `json:"owner" validate:"required"`
	Description string `json:"description"`
	AssetType   string `json:"asset_type"`
}

type TransferTokenRequest struct {
	From   string `json:"from" validate:"required"`
	To     string `json:"to" validate:"required"`
	Amount int    `json:"amount" validate:"required,gt=0"`
}
