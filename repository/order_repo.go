package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/FabriBott/asset-token-nexus-platform/db/postgres/providers"
	"github.com/FabriBott/asset-token-nexus-platform/models"
	"github.com/FabriBott/asset-token-nexus-platform/service"
)

type OrderRepository struct {
	DBHelper *providers.DBHelper
}

func NewOrderRepository(db *providers.DBHelper) *OrderRepository {
	return &OrderRepository{DBHelper: db}
}

// CreateOrder appends a new order to the authoritative collection.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (id, token_id, user_id, side, quantity, price, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DBHelper.PostgresClient.ExecContext(ctx, query,
		order.ID, order.TokenID, order.UserID, order.Side,
		order.Quantity, order.Price, order.Status, order.CreatedAt,
	)
	return err
}

// GetOrderByID fetches one order by its identifier.
func (r *OrderRepository) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	query := `
		SELECT id, token_id, user_id, side, quantity, price, status, created_at
		FROM orders WHERE id = $1`

	var o models.Order
	err := r.DBHelper.PostgresClient.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.TokenID, &o.UserID, &o.Side, &o.Quantity, &o.Price, &o.Status, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, service.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	return &o, nil
}

// OpenOrders fetches open orders, optionally filtered by token and
// side, in creation order. The seq column preserves insertion order
// even when rows share a timestamp.
func (r *OrderRepository) OpenOrders(ctx context.Context, filter service.OrderFilter) ([]models.Order, error) {
	query := `
		SELECT id, token_id, user_id, side, quantity, price, status, created_at
		FROM orders
		WHERE status = 'open'`
	var args []any
	if filter.TokenID != "" {
		args = append(args, filter.TokenID)
		query += fmt.Sprintf(" AND token_id = $%d", len(args))
	}
	if filter.Side != "" {
		args = append(args, filter.Side)
		query += fmt.Sprintf(" AND side = $%d", len(args))
	}
	query += " ORDER BY seq ASC"

	rows, err := r.DBHelper.PostgresClient.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.TokenID, &o.UserID, &o.Side, &o.Quantity, &o.Price, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// UpdateOrderStatus flips the status of an open order. Transitions away
// from filled or cancelled never happen, so the guard is in the query.
func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	query := `UPDATE orders SET status = $1 WHERE id = $2 AND status = 'open'`
	res, err := r.DBHelper.PostgresClient.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return service.ErrOrderNotOpen
	}
	return nil
}
