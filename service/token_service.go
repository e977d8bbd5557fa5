package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/FabriBott/asset-token-nexus-platform/models"
)

// TokenService covers the registry around the marketplace: minting new
// tokens, direct transfers between wallets, and the transaction log.
// Minting and transfers settle immediately; the tx hash is an opaque
// reference, not a real on-chain receipt.
type TokenService struct {
	Tokens TokenStore
	Trades TradeStore
	Refs   RefProvider
}

func NewTokenService(tokens TokenStore, trades TradeStore, refs RefProvider) *TokenService {
	return &TokenService{Tokens: tokens, Trades: trades, Refs: refs}
}

// MintToken registers a token with its full supply available and
// records the mint as a completed transaction to the owner's wallet.
func (s *TokenService) MintToken(ctx context.Context, req *models.MintTokenRequest) (*models.MintTokenResponse, error) {
	if req.TotalSupply <= 0 {
		return nil, ErrInvalidQuantity
	}

	token := &models.Token{
		ID:              s.Refs.TokenID(),
		Name:            req.Name,
		Symbol:          req.Symbol,
		Standard:        models.TokenStandard(req.Standard),
		TotalSupply:     req.TotalSupply,
		CurrentSupply:   req.TotalSupply,
		Owner:           req.Owner,
		ContractAddress: s.Refs.ContractAddress(),
		Description:     req.Description,
		AssetType:       req.AssetType,
		CreatedAt:       time.Now(),
	}
	if err := s.Tokens.CreateToken(ctx, token); err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}

	mint := &models.Transaction{
		ID:        s.Refs.TransactionID(),
		TokenID:   token.ID,
		From:      token.ContractAddress,
		To:        token.Owner,
		Amount:    token.TotalSupply,
		Type:      models.TxTypeMint,
		Status:    models.TxStatusCompleted,
		TxHash:    s.Refs.TxHash(),
		CreatedAt: time.Now(),
	}
	if err := s.Trades.CreateTransaction(ctx, mint); err != nil {
		return nil, fmt.Errorf("record mint: %w", err)
	}

	log.Info().
		Str("token_id", token.ID).
		Str("symbol", token.Symbol).
		Int("supply", token.TotalSupply).
		Msg("token minted")

	return &models.MintTokenResponse{Token: token, Transaction: mint}, nil
}

func (s *TokenService) GetToken(ctx context.Context, tokenID string) (*models.Token, error) {
	return s.Tokens.GetTokenByID(ctx, tokenID)
}

func (s *TokenService) ListTokens(ctx context.Context) ([]models.Token, error) {
	return s.Tokens.ListTokens(ctx)
}

// TransferToken records a wallet-to-wallet transfer of an existing
// token. The amount is bounded by the token's current supply.
func (s *TokenService) TransferToken(ctx context.Context, tokenID string, req *models.TransferTokenRequest) (*models.TransferTokenResponse, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidQuantity
	}
	token, err := s.Tokens.GetTokenByID(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	if req.Amount > token.CurrentSupply {
		return nil, ErrInsufficientSupply
	}

	transfer := &models.Transaction{
		ID:        s.Refs.TransactionID(),
		TokenID:   tokenID,
		From:      req.From,
		To:        req.To,
		Amount:    req.Amount,
		Type:      models.TxTypeTransfer,
		Status:    models.TxStatusCompleted,
		TxHash:    s.Refs.TxHash(),
		CreatedAt: time.Now(),
	}
	if err := s.Trades.CreateTransaction(ctx, transfer); err != nil {
		return nil, fmt.Errorf("record transfer: %w", err)
	}

	log.Info().
		Str("token_id", tokenID).
		Str("from", req.From).
		Str("to", req.To).
		Int("amount", req.Amount).
		Msg("tokens transferred")

	return &models.TransferTokenResponse{Transaction: transfer}, nil
}

// ListTransactions returns the transaction history, all types,
// optionally filtered by token.
func (s *TokenService) ListTransactions(ctx context.Context, tokenID string) ([]models.Transaction, error) {
	return s.Trades.ListTransactions(ctx, tokenID, "")
}
