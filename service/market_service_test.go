package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FabriBott/asset-token-nexus-platform/models"
	"github.com/FabriBott/asset-token-nexus-platform/repository/memstore"
	"github.com/FabriBott/asset-token-nexus-platform/service"
)

type marketFixture struct {
	market  *service.MarketService
	tokens  *service.TokenService
	store   *memstore.Store
	tokenID string
}

func newMarketFixture(t *testing.T) *marketFixture {
	t.Helper()
	store := memstore.New()
	refs := &seqRefs{}
	market := service.NewMarketService(store, store, store, refs)
	tokens := service.NewTokenService(store, store, refs)

	minted, err := tokens.MintToken(context.Background(), &models.MintTokenRequest{
		Name:        "Solar Farm Andalucia",
		Symbol:      "SOLAR",
		Standard:    "ERC-20",
		TotalSupply: 1000,
		Owner:       "wallet_owner",
		AssetType:   "real-estate",
	})
	require.NoError(t, err)

	return &marketFixture{market: market, tokens: tokens, store: store, tokenID: minted.Token.ID}
}

func (f *marketFixture) place(t *testing.T, userID string, side string, qty int, price float64) *models.PlaceOrderResponse {
	t.Helper()
	resp, err := f.market.PlaceOrder(context.Background(), &models.PlaceOrderRequest{
		TokenID:  f.tokenID,
		UserID:   userID,
		Side:     side,
		Quantity: qty,
		Price:    price,
	})
	require.NoError(t, err)
	return resp
}

func TestPlaceOrderValidation(t *testing.T) {
	f := newMarketFixture(t)

	tests := []struct {
		name    string
		request models.PlaceOrderRequest
		wantErr error
	}{
		{
			name:    "unknown token",
			request: models.PlaceOrderRequest{TokenID: "token_missing", UserID: "alice", Side: "buy", Quantity: 1, Price: 1.00},
			wantErr: service.ErrTokenNotFound,
		},
		{
			name:    "invalid side",
			request: models.PlaceOrderRequest{TokenID: f.tokenID, UserID: "alice", Side: "hold", Quantity: 1, Price: 1.00},
			wantErr: service.ErrInvalidSide,
		},
		{
			name:    "zero quantity",
			request: models.PlaceOrderRequest{TokenID: f.tokenID, UserID: "alice", Side: "buy", Quantity: 0, Price: 1.00},
			wantErr: service.ErrInvalidQuantity,
		},
		{
			name:    "negative quantity",
			request: models.PlaceOrderRequest{TokenID: f.tokenID, UserID: "alice", Side: "buy", Quantity: -3, Price: 1.00},
			wantErr: service.ErrInvalidQuantity,
		},
		{
			name:    "zero price",
			request: models.PlaceOrderRequest{TokenID: f.tokenID, UserID: "alice", Side: "buy", Quantity: 1, Price: 0},
			wantErr: service.ErrInvalidPrice,
		},
		{
			name:    "sub-cent price precision",
			request: models.PlaceOrderRequest{TokenID: f.tokenID, UserID: "alice", Side: "buy", Quantity: 1, Price: 1.005},
			wantErr: service.ErrInvalidPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.market.PlaceOrder(context.Background(), &tt.request)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// nothing was inserted by the rejected submissions
	open, err := f.market.OpenOrders(context.Background(), f.tokenID, "")
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestSubmitThenMatchFullFill(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	var notified []models.Transaction
	f.market.OnTrade = func(trade models.Transaction) { notified = append(notified, trade) }

	sell := f.place(t, "bob", "sell", 10, 5.00)
	assert.False(t, sell.Matched)
	assert.Nil(t, sell.Trade)

	open, err := f.market.OpenOrders(ctx, f.tokenID, models.SideSell)
	require.NoError(t, err)
	require.Len(t, open, 1)

	buy := f.place(t, "alice", "buy", 10, 5.00)
	require.True(t, buy.Matched)
	require.NotNil(t, buy.Trade)
	assert.Equal(t, 10, buy.Trade.Amount)
	assert.Equal(t, "bob", buy.Trade.From)
	assert.Equal(t, "alice", buy.Trade.To)

	// both orders are filled in the store
	for _, id := range []string{sell.Order.ID, buy.Order.ID} {
		order, err := f.market.GetOrder(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusFilled, order.Status)
	}

	// exactly one trade was recorded and broadcast
	trades, err := f.market.ListTrades(ctx, f.tokenID)
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, buy.Trade.ID, trades[0].ID)
	require.Len(t, notified, 1)
	assert.Equal(t, buy.Trade.ID, notified[0].ID)

	open, err = f.market.OpenOrders(ctx, f.tokenID, "")
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestIncompatiblePricesBothRest(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	buy := f.place(t, "alice", "buy", 10, 4.00)
	sell := f.place(t, "bob", "sell", 10, 5.00)
	assert.False(t, buy.Matched)
	assert.False(t, sell.Matched)

	open, err := f.market.OpenOrders(ctx, f.tokenID, "")
	require.NoError(t, err)
	assert.Len(t, open, 2)

	trades, err := f.market.ListTrades(ctx, f.tokenID)
	require.NoError(t, err)
	assert.Empty(t, trades)
}

func TestQuantityMismatchAllOrNothing(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	sell := f.place(t, "bob", "sell", 10, 5.00)
	buy := f.place(t, "alice", "buy", 4, 6.00)

	require.True(t, buy.Matched)
	assert.Equal(t, 4, buy.Trade.Amount)

	// the sell order's surplus of 6 units is abandoned as filled
	order, err := f.market.GetOrder(ctx, sell.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusFilled, order.Status)

	open, err := f.market.OpenOrders(ctx, f.tokenID, "")
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestSameSubmitterNeverMatches(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	buy := f.place(t, "alice", "buy", 10, 5.00)
	counter := f.place(t, "alice", "sell", 10, 5.00)

	assert.False(t, buy.Matched)
	assert.False(t, counter.Matched)

	open, err := f.market.OpenOrders(ctx, f.tokenID, "")
	require.NoError(t, err)
	assert.Len(t, open, 2)
}

func TestOpenOrdersQueryIsIdempotent(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	f.place(t, "alice", "buy", 10, 4.00)
	f.place(t, "bob", "sell", 5, 9.00)

	first, err := f.market.OpenOrders(ctx, f.tokenID, "")
	require.NoError(t, err)
	second, err := f.market.OpenOrders(ctx, f.tokenID, "")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCancelOrderLifecycle(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	placed := f.place(t, "alice", "buy", 10, 4.00)
	resp, err := f.market.CancelOrder(ctx, placed.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.Order.ID, resp.OrderID)

	order, err := f.market.GetOrder(ctx, placed.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, order.Status)

	// cancelled orders leave the book and cannot be cancelled again
	open, err := f.market.OpenOrders(ctx, f.tokenID, "")
	require.NoError(t, err)
	assert.Empty(t, open)
	_, err = f.market.CancelOrder(ctx, placed.Order.ID)
	assert.ErrorIs(t, err, service.ErrOrderNotOpen)

	_, err = f.market.CancelOrder(ctx, "order_missing")
	assert.ErrorIs(t, err, service.ErrOrderNotFound)
}

func TestCancelledOrderDoesNotMatch(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	sell := f.place(t, "bob", "sell", 10, 5.00)
	_, err := f.market.CancelOrder(ctx, sell.Order.ID)
	require.NoError(t, err)

	buy := f.place(t, "alice", "buy", 10, 5.00)
	assert.False(t, buy.Matched)
}

func TestGetOrderBookAggregatesPriceLevels(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	f.place(t, "alice", "buy", 10, 4.00)
	f.place(t, "carol", "buy", 5, 4.00)
	f.place(t, "dave", "buy", 3, 4.50)
	f.place(t, "bob", "sell", 7, 9.00)
	f.place(t, "erin", "sell", 2, 8.00)

	book, err := f.market.GetOrderBook(ctx, f.tokenID)
	require.NoError(t, err)

	// bids descending, quantities aggregated per level
	require.Len(t, book.Bids, 2)
	assert.Equal(t, models.OrderBookEntry{Price: 4.50, Quantity: 3}, book.Bids[0])
	assert.Equal(t, models.OrderBookEntry{Price: 4.00, Quantity: 15}, book.Bids[1])

	// asks ascending
	require.Len(t, book.Asks, 2)
	assert.Equal(t, models.OrderBookEntry{Price: 8.00, Quantity: 2}, book.Asks[0])
	assert.Equal(t, models.OrderBookEntry{Price: 9.00, Quantity: 7}, book.Asks[1])

	_, err = f.market.GetOrderBook(ctx, "token_missing")
	assert.ErrorIs(t, err, service.ErrTokenNotFound)
}

func TestConcurrentSubmissionsNoDoubleFill(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	f.place(t, "seller", "sell", 10, 5.00)

	// ten concurrent compatible buys race for the single resting sell;
	// the book lock must let exactly one of them fill it
	const buyers = 10
	var wg sync.WaitGroup
	matched := make(chan string, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := f.market.PlaceOrder(ctx, &models.PlaceOrderRequest{
				TokenID:  f.tokenID,
				UserID:   fmt.Sprintf("buyer_%d", i),
				Side:     "buy",
				Quantity: 10,
				Price:    5.00,
			})
			if !assert.NoError(t, err) {
				return
			}
			if resp.Matched {
				matched <- resp.Order.ID
			}
		}(i)
	}
	wg.Wait()
	close(matched)

	var winners []string
	for id := range matched {
		winners = append(winners, id)
	}
	require.Len(t, winners, 1)

	trades, err := f.market.ListTrades(ctx, f.tokenID)
	require.NoError(t, err)
	assert.Len(t, trades, 1)

	open, err := f.market.OpenOrders(ctx, f.tokenID, models.SideBuy)
	require.NoError(t, err)
	assert.Len(t, open, buyers-1)
}

func TestMatchingIsScopedToOneBook(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	other, err := f.tokens.MintToken(ctx, &models.MintTokenRequest{
		Name:        "Vintage Wine Cellar",
		Symbol:      "WINE",
		Standard:    "ERC-721",
		TotalSupply: 50,
		Owner:       "wallet_owner",
	})
	require.NoError(t, err)

	f.place(t, "bob", "sell", 10, 5.00)

	// a compatible buy on a different token must not touch that sell
	resp, err := f.market.PlaceOrder(ctx, &models.PlaceOrderRequest{
		TokenID:  other.Token.ID,
		UserID:   "alice",
		Side:     "buy",
		Quantity: 10,
		Price:    5.00,
	})
	require.NoError(t, err)
	assert.False(t, resp.Matched)

	open, err := f.market.OpenOrders(ctx, f.tokenID, models.SideSell)
	require.NoError(t, err)
	assert.Len(t, open, 1)
}
