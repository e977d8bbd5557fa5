package models

type OrderSide string
type OrderStatus string
type TxType string
type TxStatus string
type TokenStandard string

const (
	SideBuy  OrderSide = "buy"
	SideSell OrderSide = "sell"

	OrderStatusOpen      OrderStatus = "open"
	OrderStatusFilled    OrderStatus = "filled"
	OrderStatusCancelled OrderStatus = "cancelled"

	TxTypeMint     TxType = "mint"
	TxTypeTransfer TxType = "transfer"
	TxTypeBuy      TxType = "buy"
	TxTypeSell     TxType = "sell"

	TxStatusPending   TxStatus = "pending"
	TxStatusCompleted TxStatus = "completed"
	TxStatusFailed    TxStatus = "failed"

	StandardERC20  TokenStandard = "ERC-20"
	StandardERC721 TokenStandard = "ERC-721"
)

// Opposite returns the counter side used to build a match candidate set.
func (s OrderSide) Opposite() OrderSide {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}
