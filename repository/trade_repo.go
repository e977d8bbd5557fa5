package repository

import (
	"context"
	"fmt"

	"github.com/FabriBott/asset-token-nexus-platform/db/postgres/providers"
	"github.com/FabriBott/asset-token-nexus-platform/models"
	"github.com/FabriBott/asset-token-nexus-platform/service"
)

type TradeRepository struct {
	DBHelper *providers.DBHelper
}

func NewTradeRepository(db *providers.DBHelper) *TradeRepository {
	return &TradeRepository{DBHelper: db}
}

const insertTransaction = `
	INSERT INTO transactions (id, token_id, from_ref, to_ref, amount, type, status, tx_hash, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// CreateTransaction appends a transaction record.
func (r *TradeRepository) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	_, err := r.DBHelper.PostgresClient.ExecContext(ctx, insertTransaction,
		tx.ID, tx.TokenID, tx.From, tx.To, tx.Amount, tx.Type, tx.Status, tx.TxHash, tx.CreatedAt,
	)
	return err
}

// ListTransactions fetches the transaction log in creation order,
// optionally narrowed by token and transaction type.
func (r *TradeRepository) ListTransactions(ctx context.Context, tokenID string, txType models.TxType) ([]models.Transaction, error) {
	query := `
		SELECT id, token_id, from_ref, to_ref, amount, type, status, tx_hash, created_at
		FROM transactions
		WHERE 1 = 1`
	var args []any
	if tokenID != "" {
		args = append(args, tokenID)
		query += fmt.Sprintf(" AND token_id = $%d", len(args))
	}
	if txType != "" {
		args = append(args, txType)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	query += " ORDER BY seq ASC"

	rows, err := r.DBHelper.PostgresClient.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.TokenID, &t.From, &t.To, &t.Amount, &t.Type, &t.Status, &t.TxHash, &t.CreatedAt); err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// SettleTrade marks both matched orders filled and appends the trade in
// one database transaction. If either order is no longer open the whole
// settlement rolls back and the book is left untouched.
func (r *TradeRepository) SettleTrade(ctx context.Context, trade *models.Transaction, buyOrderID, sellOrderID string) error {
	tx, err := r.DBHelper.PostgresClient.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	fill := `UPDATE orders SET status = 'filled' WHERE id = $1 AND status = 'open'`
	for _, orderID := range []string{buyOrderID, sellOrderID} {
		res, err := tx.ExecContext(ctx, fill, orderID)
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
	}

	if _, err := tx.ExecContext(ctx, insertTransaction,
		trade.ID, trade.TokenID, trade.From, trade.To, trade.Amount,
		trade.Type, trade.Status, trade.TxHash, trade.CreatedAt,
	); err != nil {
		return err
	}

	return tx.Commit()
}
