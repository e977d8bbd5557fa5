package models

import "time"

type Token struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Symbol          string        `json:"symbol"`
	Standard        TokenStandard `json:"standard"` // "ERC-20" or "ERC-721"
	TotalSupply     int           `json:"total_supply"`
	CurrentSupply   int           `json:"current_supply"`
	Owner           string        `json:"owner"`
	ContractAddress string        `json:"contract_address"`
	Description     string        `json:"description"`
	AssetType       string        `json:"asset_type"`
	CreatedAt       time.Time     `json:"created_at"`
}
