package domain

import "errors"

var (
	ErrNetwork         = errors.New("network error")
	ErrDecode          = errors.New("decode error")
	ErrWalletNotFound  = errors.New("wallet not found")
	ErrInvalidAmount   = errors.New("amount must be a positive number")
	ErrInvalidCategory = errors.New("category not supported")
)
