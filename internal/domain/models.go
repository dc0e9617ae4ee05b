package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SelfLabel marks the acting principal on records built from SMS messages.
const SelfLabel = "Me"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type TransactionType string

const (
	TransactionTypeTransfer    TransactionType = "transfer"
	TransactionTypePayment     TransactionType = "payment"
	TransactionTypeWithdrawal  TransactionType = "withdrawal"
	TransactionTypeDeposit     TransactionType = "deposit"
	TransactionTypeReceived    TransactionType = "received"
	TransactionTypeAirtime     TransactionType = "airtime"
	TransactionTypeCashPower   TransactionType = "cash_power"
	TransactionTypeDirectDebit TransactionType = "direct_debit"
	TransactionTypeUnknown     TransactionType = "unknown"
)

// UpdatableTypes is the closed vocabulary accepted when a transaction's type
// is changed explicitly. Imported records may carry other types.
var UpdatableTypes = []TransactionType{
	TransactionTypeTransfer,
	TransactionTypePayment,
	TransactionTypeWithdrawal,
	TransactionTypeDeposit,
}

func (t TransactionType) IsUpdatable() bool {
	for _, allowed := range UpdatableTypes {
		if t == allowed {
			return true
		}
	}
	return false
}

type Account struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"-"`
	Role         Role            `json:"role"`
	Balance      decimal.Decimal `json:"balance"`
}

// Transaction is a stored ledger record. Sender and Receiver hold either a
// numeric account id or a free-text label such as "Bank Deposit" or SelfLabel.
type Transaction struct {
	ID        int64           `json:"id"`
	Sender    string          `json:"sender"`
	Receiver  string          `json:"receiver"`
	Amount    decimal.Decimal `json:"amount"`
	Type      TransactionType `json:"type"`
	CreatedAt string          `json:"created_at"`
}

// Candidate is what the interpreter extracts from one message. ID is nil
// when the message carried no provider transaction id.
type Candidate struct {
	ID        *int64          `json:"id"`
	Sender    string          `json:"sender"`
	Receiver  string          `json:"receiver"`
	Amount    decimal.Decimal `json:"amount"`
	Type      TransactionType `json:"type"`
	CreatedAt string          `json:"created_at"`
}

// Principal is the authenticated caller.
type Principal struct {
	ID   int64
	Role Role
	Name string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

type ImportStatus string

const (
	ImportStatusProcessing ImportStatus = "processing"
	ImportStatusCompleted  ImportStatus = "completed"
	ImportStatusFailed     ImportStatus = "failed"
)

type ImportStats struct {
	Messages   int `json:"messages"`
	Candidates int `json:"candidates"`
	Stored     int `json:"stored"`
}

type Import struct {
	ID          string       `json:"id"`
	Status      ImportStatus `json:"status"`
	Stats       ImportStats  `json:"stats"`
	Error       string       `json:"error,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}
