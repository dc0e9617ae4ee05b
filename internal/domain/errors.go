package domain

import "errors"

var (
	ErrDuplicateEmail      = errors.New("user already exists")
	ErrInvalidParty        = errors.New("invalid sender or receiver")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrForbidden           = errors.New("only admins can modify transactions")
	ErrNotFound            = errors.New("transaction not found")
	ErrInvalidType         = errors.New("invalid transaction type, must be one of: transfer, payment, withdrawal, deposit")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrAccountNotFound     = errors.New("account not found")
	ErrImportNotFound      = errors.New("import not found")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrTokenRevoked        = errors.New("token has been revoked")
)
