package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/FabriBott/asset-token-nexus-platform/models"
)

// MarketService owns the order lifecycle: submission, the synchronous
// match attempt, cancellation, and book queries. Submission and
// matching for one token's book run under that book's lock, so two
// concurrent submissions can never fill the same resting order twice.
// Books for different tokens proceed independently.
type MarketService struct {
	Orders OrderStore
	Trades TradeStore
	Tokens TokenStore
	Engine *MatchingEngine

	// OnTrade, when set, is invoked after a trade is durably settled.
	OnTrade func(models.Transaction)

	mu    sync.Mutex
	books map[string]*sync.Mutex
}

func NewMarketService(orders OrderStore, trades TradeStore, tokens TokenStore, refs RefProvider) *MarketService {
	return &MarketService{
		Orders: orders,
		Trades: trades,
		Tokens: tokens,
		Engine: NewMatchingEngine(refs),
		books:  make(map[string]*sync.Mutex),
	}
}

func (s *MarketService) bookLock(tokenID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.books[tokenID]
	if !ok {
		lock = &sync.Mutex{}
		s.books[tokenID] = lock
	}
	return lock
}

// PlaceOrder validates the request, inserts the order as open, and
// attempts one match against the resting counter side. When no
// qualifying counter-order exists the order simply rests; that is not
// an error.
func (s *MarketService) PlaceOrder(ctx context.Context, req *models.PlaceOrderRequest) (*models.PlaceOrderResponse, error) {
	side := models.OrderSide(req.Side)
	if side != models.SideBuy && side != models.SideSell {
		return nil, ErrInvalidSide
	}
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if !validPrice(req.Price) {
		return nil, ErrInvalidPrice
	}
	if _, err := s.Tokens.GetTokenByID(ctx, req.TokenID); err != nil {
		return nil, err
	}

	lock := s.bookLock(req.TokenID)
	lock.Lock()
	defer lock.Unlock()

	order := &models.Order{
		ID:        s.Engine.Refs.OrderID(),
		TokenID:   req.TokenID,
		UserID:    req.UserID,
		Side:      side,
		Quantity:  req.Quantity,
		Price:     req.Price,
		Status:    models.OrderStatusOpen,
		CreatedAt: time.Now(),
	}
	if err := s.Orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	candidates, err := s.Orders.OpenOrders(ctx, OrderFilter{TokenID: req.TokenID, Side: side.Opposite()})
	if err != nil {
		return nil, fmt.Errorf("load counter orders: %w", err)
	}

	result := s.Engine.Match(order, candidates)
	if result == nil {
		log.Debug().
			Str("order_id", order.ID).
			Str("token_id", order.TokenID).
			Str("side", string(order.Side)).
			Msg("order resting, no match")
		return &models.PlaceOrderResponse{Order: order, Message: "order is resting in the book"}, nil
	}

	buyOrderID, sellOrderID := order.ID, result.Resting.ID
	if order.Side == models.SideSell {
		buyOrderID, sellOrderID = result.Resting.ID, order.ID
	}
	if err := s.Trades.SettleTrade(ctx, &result.Trade, buyOrderID, sellOrderID); err != nil {
		// the store keeps both orders open; the book is unchanged
		return nil, fmt.Errorf("settle trade: %w", err)
	}

	log.Info().
		Str("trade_id", result.Trade.ID).
		Str("token_id", result.Trade.TokenID).
		Str("buy_order_id", buyOrderID).
		Str("sell_order_id", sellOrderID).
		Int("quantity", result.Trade.Amount).
		Msg("trade executed")

	if s.OnTrade != nil {
		s.OnTrade(result.Trade)
	}

	return &models.PlaceOrderResponse{Order: order, Trade: &result.Trade, Matched: true}, nil
}

// CancelOrder transitions an open order to cancelled. Filled and
// already-cancelled orders are rejected.
func (s *MarketService) CancelOrder(ctx context.Context, orderID string) (*models.CancelOrderResponse, error) {
	order, err := s.Orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	lock := s.bookLock(order.TokenID)
	lock.Lock()
	defer lock.Unlock()

	// re-read under the book lock: a concurrent submission may have
	// filled the order between the first read and here
	order, err = s.Orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsOpen() {
		return nil, ErrOrderNotOpen
	}
	if err := s.Orders.UpdateOrderStatus(ctx, orderID, models.OrderStatusCancelled); err != nil {
		return nil, fmt.Errorf("cancel order: %w", err)
	}

	log.Info().Str("order_id", orderID).Msg("order cancelled")
	return &models.CancelOrderResponse{OrderID: orderID, Message: "order cancelled"}, nil
}

func (s *MarketService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	return s.Orders.GetOrderByID(ctx, orderID)
}

// OpenOrders returns the current open orders, optionally narrowed by
// token and side. The result is recomputed per call from the
// authoritative order set, in creation order.
func (s *MarketService) OpenOrders(ctx context.Context, tokenID string, side models.OrderSide) ([]models.Order, error) {
	return s.Orders.OpenOrders(ctx, OrderFilter{TokenID: tokenID, Side: side})
}

// GetOrderBook aggregates the open orders of one token into per-price
// levels, bids sorted descending and asks ascending for display.
func (s *MarketService) GetOrderBook(ctx context.Context, tokenID string) (*models.OrderBookResponse, error) {
	if _, err := s.Tokens.GetTokenByID(ctx, tokenID); err != nil {
		return nil, err
	}

	open, err := s.Orders.OpenOrders(ctx, OrderFilter{TokenID: tokenID})
	if err != nil {
		return nil, err
	}

	bidLevels := make(map[float64]int)
	askLevels := make(map[float64]int)
	for _, o := range open {
		if o.Side == models.SideBuy {
			bidLevels[o.Price] += o.Quantity
		} else {
			askLevels[o.Price] += o.Quantity
		}
	}

	return &models.OrderBookResponse{
		TokenID: tokenID,
		Bids:    flattenLevels(bidLevels, true),
		Asks:    flattenLevels(askLevels, false),
	}, nil
}

// ListTrades returns the trade-typed transactions for one token.
func (s *MarketService) ListTrades(ctx context.Context, tokenID string) ([]models.Transaction, error) {
	if _, err := s.Tokens.GetTokenByID(ctx, tokenID); err != nil {
		return nil, err
	}
	return s.Trades.ListTransactions(ctx, tokenID, models.TxTypeBuy)
}

// validPrice enforces a positive price with at most the currency's
// minor-unit precision (two decimal places).
func validPrice(price float64) bool {
	if price <= 0 {
		return false
	}
	cents := price * 100
	return math.Abs(cents-math.Round(cents)) < 1e-9
}

func flattenLevels(levels map[float64]int, desc bool) []models.OrderBookEntry {
	prices := make([]float64, 0, len(levels))
	for price := range levels {
		prices = append(prices, price)
	}

	if desc {
		sort.Sort(sort.Reverse(sort.Float64Slice(prices)))
	} else {
		sort.Float64s(prices)
	}

	entries := make([]models.OrderBookEntry, 0, len(prices))
	for _, price := range prices {
		entries = append(entries, models.OrderBookEntry{Price: price, Quantity: levels[price]})
	}
	return entries
}
