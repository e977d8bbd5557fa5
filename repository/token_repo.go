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

type TokenRepository struct {
	DBHelper *providers.DBHelper
}

func NewTokenRepository(db *providers.DBHelper) *TokenRepository {
	return &TokenRepository{DBHelper: db}
}

func (r *TokenRepository) CreateToken(ctx context.Context, token *models.Token) error {
	query := `
		INSERT INTO tokens (id, name, symbol, standard, total_supply, current_supply,
			owner, contract_address, description, asset_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.DBHelper.PostgresClient.ExecContext(ctx, query,
		token.ID, token.Name, token.Symbol, token.Standard, token.TotalSupply,
		token.CurrentSupply, token.Owner, token.ContractAddress,
		token.Description, token.AssetType, token.CreatedAt,
	)
	return err
}

func (r *TokenRepository) GetTokenByID(ctx context.Context, id string) (*models.Token, error) {
	query := `
		SELECT id, name, symbol, standard, total_supply, current_supply,
			owner, contract_address, description, asset_type, created_at
		FROM tokens WHERE id = $1`

	var t models.Token
	err := r.DBHelper.PostgresClient.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Symbol, &t.Standard, &t.TotalSupply, &t.CurrentSupply,
		&t.Owner, &t.ContractAddress, &t.Description, &t.AssetType, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, service.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get token %s: %w", id, err)
	}
	return &t, nil
}

func (r *TokenRepository) ListTokens(ctx context.Context) ([]models.Token, error) {
	query := `
		SELECT id, name, symbol, standard, total_supply, current_supply,
			owner, contract_address, description, asset_type, created_at
		FROM tokens ORDER BY created_at ASC`

	rows, err := r.DBHelper.PostgresClient.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []models.Token
	for rows.Next() {
		var t models.Token
		if err := rows.Scan(&t.ID, &t.Name, &t.Symbol, &t.Standard, &t.TotalSupply, &t.CurrentSupply,
			&t.Owner, &t.ContractAddress, &t.Description, &t.AssetType, &t.CreatedAt); err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}
