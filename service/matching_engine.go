package service

import (
	"time"

	"github.com/FabriBott/asset-token-nexus-platform/models"
)

// MatchingEngine pairs a newly submitted order against resting orders
// of the opposite side. Selection is first-qualifying in the candidate
// slice's order, which callers supply in creation order. Fills are
// all-or-nothing: both orders are marked filled even when their
// quantities differ, and the trade carries the smaller quantity.
type MatchingEngine struct {
	Refs RefProvider
}

func NewMatchingEngine(refs RefProvider) *MatchingEngine {
	return &MatchingEngine{Refs: refs}
}

// MatchResult holds the trade and the resting order it consumed. The
// incoming order is mutated in place by Match.
type MatchResult struct {
	Trade   models.Transaction
	Resting models.Order
}

// Match scans candidates for the first order that is open, on the
// opposite side of the same token, from a different submitter, and
// price-compatible with incoming. On a match both orders transition to
// filled and a trade record is built; nil means the order rests.
func (e *MatchingEngine) Match(incoming *models.Order, candidates []models.Order) *MatchResult {
	for i := range candidates {
		resting := &candidates[i]

		if resting.TokenID != incoming.TokenID || resting.Side != incoming.Side.Opposite() {
			continue
		}
		if !resting.IsOpen() {
			continue
		}
		if resting.UserID == incoming.UserID {
			// self-trades are disallowed
			continue
		}
		if !priceCompatible(incoming, resting) {
			continue
		}

		incoming.Status = models.OrderStatusFilled
		resting.Status = models.OrderStatusFilled

		buyer, seller := incoming, resting
		if incoming.Side == models.SideSell {
			buyer, seller = resting, incoming
		}

		trade := models.Transaction{
			ID:        e.Refs.TransactionID(),
			TokenID:   incoming.TokenID,
			From:      seller.UserID,
			To:        buyer.UserID,
			Amount:    min(incoming.Quantity, resting.Quantity),
			Type:      models.TxTypeBuy,
			Status:    models.TxStatusCompleted,
			TxHash:    e.Refs.TxHash(),
			CreatedAt: time.Now(),
		}

		return &MatchResult{Trade: trade, Resting: *resting}
	}

	return nil
}

// priceCompatible applies the limit rules: a buyer's limit is an upper
// bound on acceptable asks, a seller's limit a lower bound on bids.
func priceCompatible(incoming, resting *models.Order) bool {
	if incoming.Side == models.SideBuy {
		return resting.Price <= incoming.Price
	}
	return resting.Price >= incoming.Price
}
