package storage

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/grachmannico95/momo-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

// LedgerStore keeps accounts and transactions in memory. Transactions are
// indexed twice, by insertion order and by id; both indexes point at the same
// records and are only changed together under mu.
type LedgerStore struct {
	accounts      map[int64]*domain.Account
	transactions  []*domain.Transaction
	byID          map[int64]*domain.Transaction
	nextAccountID int64
	nextTxID      int64
	mu            sync.RWMutex
}

func NewLedgerStore() *LedgerStore {
	s := &LedgerStore{}
	s.Reset()
	return s
}

// Reset drops all accounts and transactions and rewinds both counters to 1.
func (s *LedgerStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = make(map[int64]*domain.Account)
	s.transactions = nil
	s.byID = make(map[int64]*domain.Transaction)
	s.nextAccountID = 1
	s.nextTxID = 1
}

func (s *LedgerStore) CreateAccount(ctx context.Context, name, email, passwordHash string, role domain.Role, balance decimal.Decimal) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, acc := range s.accounts {
		if acc.Email == email {
			return 0, domain.ErrDuplicateEmail
		}
	}

	if role == "" {
		role = domain.RoleUser
	}

	id := s.nextAccountID
	s.nextAccountID++

	s.accounts[id] = &domain.Account{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		Balance:      balance,
	}

	return id, nil
}

func (s *LedgerStore) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, exists := s.accounts[id]
	if !exists {
		return nil, domain.ErrAccountNotFound
	}

	cp := *acc
	return &cp, nil
}

func (s *LedgerStore) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, acc := range s.accounts {
		if acc.Email == email {
			cp := *acc
			return &cp, nil
		}
	}

	return nil, domain.ErrAccountNotFound
}

// ImportBatch stores interpreted candidates in order. Embedded ids are kept
// verbatim; candidates without one get the next value of a batch-local
// counter starting at 1, which afterwards becomes the ledger's next id. The
// two numberings are not reconciled: a colliding id replaces the earlier
// record in the id index.
func (s *LedgerStore) ImportBatch(ctx context.Context, candidates []domain.Candidate) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	autoID := int64(1)
	count := 0

	for _, c := range candidates {
		if !c.Amount.IsPositive() {
			continue
		}

		var id int64
		if c.ID != nil {
			id = *c.ID
		} else {
			id = autoID
			autoID++
		}

		s.insert(&domain.Transaction{
			ID:        id,
			Sender:    c.Sender,
			Receiver:  c.Receiver,
			Amount:    c.Amount,
			Type:      c.Type,
			CreatedAt: c.CreatedAt,
		})
		count++
	}

	s.nextTxID = autoID

	return count, nil
}

// Transfer moves amount between two accounts and records the transaction.
func (s *LedgerStore) Transfer(ctx context.Context, senderID, receiverID int64, amount decimal.Decimal, txType domain.TransactionType) (int64, error) {
	if !amount.IsPositive() {
		return 0, domain.ErrInvalidAmount
	}
	if txType == "" {
		txType = domain.TransactionTypeTransfer
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sender, senderOK := s.accounts[senderID]
	receiver, receiverOK := s.accounts[receiverID]
	if !senderOK || !receiverOK {
		return 0, domain.ErrInvalidParty
	}

	if sender.Balance.LessThan(amount) {
		return 0, domain.ErrInsufficientBalance
	}

	sender.Balance = sender.Balance.Sub(amount)
	receiver.Balance = receiver.Balance.Add(amount)

	id := s.nextTxID
	s.nextTxID++

	s.insert(&domain.Transaction{
		ID:        id,
		Sender:    strconv.FormatInt(senderID, 10),
		Receiver:  strconv.FormatInt(receiverID, 10),
		Amount:    amount,
		Type:      txType,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})

	return id, nil
}

func (s *LedgerStore) GetAll(ctx context.Context) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Transaction, 0, len(s.transactions))
	for _, tx := range s.transactions {
		out = append(out, *tx)
	}

	return out, nil
}

// GetByID scans the sequence newest first so that it resolves colliding ids
// to the same record as GetByIDIndexed.
func (s *LedgerStore) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.lastIndexOf(id)
	if i == -1 {
		return nil, domain.ErrNotFound
	}

	cp := *s.transactions[i]
	return &cp, nil
}

func (s *LedgerStore) GetByIDIndexed(ctx context.Context, id int64) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, exists := s.byID[id]
	if !exists {
		return nil, domain.ErrNotFound
	}

	cp := *tx
	return &cp, nil
}

// GetByPrincipal returns transactions where either party is domain.SelfLabel.
func (s *LedgerStore) GetByPrincipal(ctx context.Context) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Transaction{}
	for _, tx := range s.transactions {
		if tx.Sender == domain.SelfLabel || tx.Receiver == domain.SelfLabel {
			out = append(out, *tx)
		}
	}

	return out, nil
}

func (s *LedgerStore) UpdateType(ctx context.Context, id int64, txType domain.TransactionType) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, exists := s.byID[id]
	if !exists {
		return nil, domain.ErrNotFound
	}

	if !txType.IsUpdatable() {
		return nil, domain.ErrInvalidType
	}

	tx.Type = txType

	cp := *tx
	return &cp, nil
}

func (s *LedgerStore) Delete(ctx context.Context, id int64) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.lastIndexOf(id)
	if i == -1 {
		return nil, domain.ErrNotFound
	}

	removed := s.transactions[i]
	s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)

	// An older record sharing the id becomes visible again.
	if prev := s.lastIndexOf(id); prev != -1 {
		s.byID[id] = s.transactions[prev]
	} else {
		delete(s.byID, id)
	}

	return removed, nil
}

func (s *LedgerStore) insert(tx *domain.Transaction) {
	s.transactions = append(s.transactions, tx)
	s.byID[tx.ID] = tx
}

func (s *LedgerStore) lastIndexOf(id int64) int {
	for i := len(s.transactions) - 1; i >= 0; i-- {
		if s.transactions[i].ID == id {
			return i
		}
	}
	return -1
}
