package service

import (
	"context"

	"github.com/grachmannico95/momo-ledger/internal/domain"
	"github.com/grachmannico95/momo-ledger/internal/metrics"
	"github.com/grachmannico95/momo-ledger/pkg/logger"
	"github.com/shopspring/decimal"
)

type TransferInput struct {
	SenderID   int64
	ReceiverID int64
	Amount     decimal.Decimal
	Type       domain.TransactionType
}

// TransactionService applies capability checks in front of the ledger and
// presents records from the caller's point of view.
type TransactionService interface {
	Transfer(ctx context.Context, p domain.Principal, in TransferInput) (int64, error)
	List(ctx context.Context, p domain.Principal) ([]domain.Transaction, error)
	ListMine(ctx context.Context, p domain.Principal) ([]domain.Transaction, error)
	Get(ctx context.Context, p domain.Principal, id int64) (*domain.Transaction, error)
	GetIndexed(ctx context.Context, p domain.Principal, id int64) (*domain.Transaction, error)
	UpdateType(ctx context.Context, p domain.Principal, id int64, txType domain.TransactionType) (*domain.Transaction, error)
	Delete(ctx context.Context, p domain.Principal, id int64) (*domain.Transaction, error)
}

type transactionService struct {
	ledger  domain.LedgerRepository
	metrics *metrics.Metrics
	logger  *logger.Logger
}

func NewTransactionService(ledger domain.LedgerRepository, m *metrics.Metrics, log *logger.Logger) TransactionService {
	return &transactionService{
		ledger:  ledger,
		metrics: m,
		logger:  log,
	}
}

func (s *transactionService) Transfer(ctx context.Context, p domain.Principal, in TransferInput) (int64, error) {
	ctx = logger.WithAccountID(ctx, p.ID)

	id, err := s.ledger.Transfer(ctx, in.SenderID, in.ReceiverID, in.Amount, in.Type)
	s.metrics.ObserveTransfer(err)
	if err != nil {
		s.logger.Warn(ctx, "Transfer rejected",
			"sender_id", in.SenderID,
			"receiver_id", in.ReceiverID,
			"amount", in.Amount.String(),
			"error", err,
		)
		return 0, err
	}

	s.logger.Info(ctx, "Transfer recorded",
		"transaction_id", id,
		"sender_id", in.SenderID,
		"receiver_id", in.ReceiverID,
		"amount", in.Amount.String(),
	)

	return id, nil
}

func (s *transactionService) List(ctx context.Context, p domain.Principal) ([]domain.Transaction, error) {
	txs, err := s.ledger.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return presentAll(txs, p), nil
}

func (s *transactionService) ListMine(ctx context.Context, p domain.Principal) ([]domain.Transaction, error) {
	txs, err := s.ledger.GetByPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	return presentAll(txs, p), nil
}

func (s *transactionService) Get(ctx context.Context, p domain.Principal, id int64) (*domain.Transaction, error) {
	tx, err := s.ledger.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return present(tx, p), nil
}

func (s *transactionService) GetIndexed(ctx context.Context, p domain.Principal, id int64) (*domain.Transaction, error) {
	tx, err := s.ledger.GetByIDIndexed(ctx, id)
	if err != nil {
		return nil, err
	}
	return present(tx, p), nil
}

func (s *transactionService) UpdateType(ctx context.Context, p domain.Principal, id int64, txType domain.TransactionType) (*domain.Transaction, error) {
	ctx = logger.WithAccountID(ctx, p.ID)

	if !p.IsAdmin() {
		s.logger.Warn(ctx, "Update denied",
			"transaction_id", id,
			"role", p.Role,
		)
		return nil, domain.ErrForbidden
	}

	tx, err := s.ledger.UpdateType(ctx, id, txType)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "Transaction type updated",
		"transaction_id", id,
		"type", txType,
	)

	return present(tx, p), nil
}

func (s *transactionService) Delete(ctx context.Context, p domain.Principal, id int64) (*domain.Transaction, error) {
	ctx = logger.WithAccountID(ctx, p.ID)

	if !p.IsAdmin() {
		s.logger.Warn(ctx, "Delete denied",
			"transaction_id", id,
			"role", p.Role,
		)
		return nil, domain.ErrForbidden
	}

	tx, err := s.ledger.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "Transaction deleted",
		"transaction_id", id,
	)

	return present(tx, p), nil
}

// present rewrites the SelfLabel sentinel to the caller's display name on a
// copy of tx.
func present(tx *domain.Transaction, p domain.Principal) *domain.Transaction {
	out := *tx
	if out.Sender == domain.SelfLabel {
		out.Sender = p.Name
	}
	if out.Receiver == domain.SelfLabel {
		out.Receiver = p.Name
	}
	return &out
}

func presentAll(txs []domain.Transaction, p domain.Principal) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txs))
	for i := range txs {
		out = append(out, *present(&txs[i], p))
	}
	return out
}
