package service

import (
	"context"

	"github.com/FabriBott/asset-token-nexus-platform/models"
)

// OrderFilter narrows an open-order query. Zero values match anything,
// so an empty filter returns every open order.
type OrderFilter struct {
	TokenID string
	Side    models.OrderSide
}

// OrderStore is the authoritative order collection. OpenOrders must
// return orders in creation order; the matching engine depends on it
// for its first-qualifying selection.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id string) (*models.Order, error)
	OpenOrders(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error
}

// TradeStore is the append-only transaction log. SettleTrade marks both
// matched orders filled and appends the trade as one atomic operation.
type TradeStore interface {
	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	ListTransactions(ctx context.Context, tokenID string, txType models.TxType) ([]models.Transaction, error)
	SettleTrade(ctx context.Context, trade *models.Transaction, buyOrderID, sellOrderID string) error
}

// TokenStore is the registry of tradable tokens.
type TokenStore interface {
	CreateToken(ctx context.Context, token *models.Token) error
	GetTokenByID(ctx context.Context, id string) (*models.Token, error)
	ListTokens(ctx context.Context) ([]models.Token, error)
}

// RefProvider hands out opaque unique references. Only uniqueness is
// required; tests inject deterministic sequences.
type RefProvider interface {
	OrderID() string
	TokenID() string
	TransactionID() string
	TxHash() string
	ContractAddress() string
}
