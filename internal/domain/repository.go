package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type LedgerRepository interface {
	// Accounts
	CreateAccount(ctx context.Context, name, email, passwordHash string, role Role, balance decimal.Decimal) (int64, error)
	GetAccount(ctx context.Context, id int64) (*Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)

	// Transactions
	ImportBatch(ctx context.Context, candidates []Candidate) (int, error)
	Transfer(ctx context.Context, senderID, receiverID int64, amount decimal.Decimal, txType TransactionType) (int64, error)
	GetAll(ctx context.Context) ([]Transaction, error)
	GetByID(ctx context.Context, id int64) (*Transaction, error)
	GetByIDIndexed(ctx context.Context, id int64) (*Transaction, error)
	GetByPrincipal(ctx context.Context) ([]Transaction, error)
	UpdateType(ctx context.Context, id int64, txType TransactionType) (*Transaction, error)
	Delete(ctx context.Context, id int64) (*Transaction, error)
}

type ImportRepository interface {
	CreateImport(ctx context.Context, importID string) error
	GetImport(ctx context.Context, importID string) (*Import, error)
	CompleteImport(ctx context.Context, importID string, stats ImportStats) error
	FailImport(ctx context.Context, importID string, reason string) error

	// Idempotency tracking
	IsEventProcessed(ctx context.Context, eventID string) (bool, error)
	MarkEventProcessed(ctx context.Context, eventID string) error
}

type TokenRepository interface {
	RevokeToken(ctx context.Context, token string) error
	IsTokenRevoked(ctx context.Context, token string) (bool, error)
}
