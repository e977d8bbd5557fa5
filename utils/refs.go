package utils

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// RefGenerator produces the opaque references the platform hands out:
// prefixed UUIDs for entities and hex strings standing in for contract
// addresses and settlement hashes. Nothing here carries cryptographic
// meaning; only uniqueness matters.
type RefGenerator struct{}

func NewRefGenerator() *RefGenerator {
	return &RefGenerator{}
}

func (g *RefGenerator) OrderID() string {
	return "order_" + uuid.NewString()
}

func (g *RefGenerator) TokenID() string {
	return "token_" + uuid.NewString()
}

func (g *RefGenerator) TransactionID() string {
	return "tx_" + uuid.NewString()
}

// TxHash mimics a 32-byte transaction hash.
func (g *RefGenerator) TxHash() string {
	return "0x" + randomHex(32)
}

// ContractAddress mimics a 20-byte contract address.
func (g *RefGenerator) ContractAddress() string {
	return "0x" + randomHex(20)
}

func randomHex(n int) string {
	buf := make([]byte, n)
	// rand.Read never fails on supported platforms
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
