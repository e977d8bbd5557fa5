package service

import "errors"

var (
	ErrTokenNotFound      = errors.New("token not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidSide        = errors.New("invalid order side")
	ErrInvalidQuantity    = errors.New("quantity must be a positive integer")
	ErrInvalidPrice       = errors.New("price must be positive with at most two decimal places")
	ErrOrderNotOpen       = errors.New("order is not open")
	ErrInsufficientSupply = errors.New("transfer amount exceeds current supply")
)
