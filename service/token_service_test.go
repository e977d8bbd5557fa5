package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FabriBott/asset-token-nexus-platform/models"
	"github.com/FabriBott/asset-token-nexus-platform/service"
)

func TestMintTokenRecordsMintTransaction(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	token, err := f.tokens.GetToken(ctx, f.tokenID)
	require.NoError(t, err)
	assert.Equal(t, token.TotalSupply, token.CurrentSupply)
	assert.NotEmpty(t, token.ContractAddress)

	txs, err := f.tokens.ListTransactions(ctx, f.tokenID)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, models.TxTypeMint, txs[0].Type)
	assert.Equal(t, models.TxStatusCompleted, txs[0].Status)
	assert.Equal(t, token.ContractAddress, txs[0].From)
	assert.Equal(t, token.Owner, txs[0].To)
	assert.Equal(t, token.TotalSupply, txs[0].Amount)
}

func TestTransferToken(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	resp, err := f.tokens.TransferToken(ctx, f.tokenID, &models.TransferTokenRequest{
		From:   "wallet_owner",
		To:     "wallet_buyer",
		Amount: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, models.TxTypeTransfer, resp.Transaction.Type)
	assert.Equal(t, models.TxStatusCompleted, resp.Transaction.Status)
	assert.NotEmpty(t, resp.Transaction.TxHash)

	txs, err := f.tokens.ListTransactions(ctx, f.tokenID)
	require.NoError(t, err)
	assert.Len(t, txs, 2) // mint + transfer
}

func TestTransferTokenValidation(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	_, err := f.tokens.TransferToken(ctx, "token_missing", &models.TransferTokenRequest{
		From: "a", To: "b", Amount: 1,
	})
	assert.ErrorIs(t, err, service.ErrTokenNotFound)

	_, err = f.tokens.TransferToken(ctx, f.tokenID, &models.TransferTokenRequest{
		From: "a", To: "b", Amount: 0,
	})
	assert.ErrorIs(t, err, service.ErrInvalidQuantity)

	// fixture token has supply 1000
	_, err = f.tokens.TransferToken(ctx, f.tokenID, &models.TransferTokenRequest{
		From: "a", To: "b", Amount: 1001,
	})
	assert.ErrorIs(t, err, service.ErrInsufficientSupply)
}

func TestListTransactionsIncludesTrades(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	f.place(t, "bob", "sell", 10, 5.00)
	f.place(t, "alice", "buy", 10, 5.00)

	txs, err := f.tokens.ListTransactions(ctx, f.tokenID)
	require.NoError(t, err)
	require.Len(t, txs, 2) // mint + trade

	types := []models.TxType{txs[0].Type, txs[1].Type}
	assert.Contains(t, types, models.TxTypeMint)
	assert.Contains(t, types, models.TxTypeBuy)
}
