package domain

import "errors"

// Business errors (no external dependencies).
var (
	ErrValidation        = errors.New("invalid or missing input")
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidTransition = errors.New("status transition not permitted")
	ErrAlreadyConverted  = errors.New("document already converted")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrOverPayment       = errors.New("payment exceeds outstanding balance")
	ErrInsufficientStock = errors.New("insufficient stock")
)
