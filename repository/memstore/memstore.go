// Package memstore keeps the whole marketplace state in process
// memory: slices in insertion order behind one lock. It backs the unit
// tests and the MEMORY storage backend used for demos without a
// database.
package memstore

import (
	"context"
	"sync"

	"github.com/FabriBott/asset-token-nexus-platform/models"
	"github.com/FabriBott/asset-token-nexus-platform/service"
)

// Store implements service.OrderStore, service.TradeStore, and
// service.TokenStore over in-memory slices.
type Store struct {
	mu           sync.RWMutex
	orders       []models.Order
	transactions []models.Transaction
	tokens       []models.Token
}

func New() *Store {
	return &Store{}
}

func (s *Store) CreateOrder(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, *order)
	return nil
}

func (s *Store) GetOrderByID(_ context.Context, id string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			o := s.orders[i]
			return &o, nil
		}
	}
	return nil, service.ErrOrderNotFound
}

func (s *Store) OpenOrders(_ context.Context, filter service.OrderFilter) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Order
	for _, o := range s.orders {
		if o.Status != models.OrderStatusOpen {
			continue
		}
		if filter.TokenID != "" && o.TokenID != filter.TokenID {
			continue
		}
		if filter.Side != "" && o.Side != filter.Side {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (s *Store) UpdateOrderStatus(_ context.Context, id string, status models.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setStatusLocked(id, status)
}

func (s *Store) setStatusLocked(id string, status models.OrderStatus) error {
	for i := range s.orders {
		if s.orders[i].ID != id {
			continue
		}
		if s.orders[i].Status != models.OrderStatusOpen {
			return service.ErrOrderNotOpen
		}
		s.orders[i].Status = status
		return nil
	}
	return service.ErrOrderNotFound
}

func (s *Store) CreateTransaction(_ context.Context, tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, *tx)
	return nil
}

func (s *Store) ListTransactions(_ context.Context, tokenID string, txType models.TxType) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Transaction
	for _, t := range s.transactions {
		if tokenID != "" && t.TokenID != tokenID {
			continue
		}
		if txType != "" && t.Type != txType {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// SettleTrade fills both orders and appends the trade under one lock
// hold, so no reader ever observes a half-settled pair.
func (s *Store) SettleTrade(_ context.Context, trade *models.Transaction, buyOrderID, sellOrderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.setStatusLocked(buyOrderID, models.OrderStatusFilled); err != nil {
		return err
	}
	if err := s.setStatusLocked(sellOrderID, models.OrderStatusFilled); err != nil {
		// undo the first fill so the book stays consistent
		for i := range s.orders {
			if s.orders[i].ID == buyOrderID {
				s.orders[i].Status = models.OrderStatusOpen
			}
		}
		return err
	}

	s.transactions = append(s.transactions, *trade)
	return nil
}

func (s *Store) CreateToken(_ context.Context, token *models.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = append(s.tokens, *token)
	return nil
}

func (s *Store) GetTokenByID(_ context.Context, id string) (*models.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.tokens {
		if s.tokens[i].ID == id {
			t := s.tokens[i]
			return &t, nil
		}
	}
	return nil, service.ErrTokenNotFound
}

func (s *Store) ListTokens(_ context.Context) ([]models.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Token, len(s.tokens))
	copy(out, s.tokens)
	return out, nil
}
