package models

import "time"

// Transaction records a settled movement of tokens: a mint, a wallet
// transfer, or a trade produced by the matching engine. Trades carry
// type "buy" with From set to the seller and To set to the buyer.
type Transaction struct {
	ID        string    `json:"id"`
	TokenID   string    `json:"token_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Amount    int       `json:"amount"`
	Type      TxType    `json:"type"`   // "mint", "transfer", "buy", "sell"
	Status    TxStatus  `json:"status"` // "pending", "completed", "failed"
	TxHash    string    `json:"tx_hash"`
	CreatedAt time.Time `json:"created_at"`
}
