package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/grachmannico95/momo-ledger/internal/domain"
	"github.com/grachmannico95/momo-ledger/internal/middleware"
	"github.com/grachmannico95/momo-ledger/internal/service"
	"github.com/grachmannico95/momo-ledger/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type TransferRequest struct {
	SenderID   int64           `json:"senderId" validate:"required"`
	ReceiverID int64           `json:"receiverId" validate:"required"`
	Amount     decimal.Decimal `json:"amount"`
	Type       string          `json:"type"`
}

// UpdateTransactionRequest carries no validation tags: the role check runs
// before the type is looked at.
type UpdateTransactionRequest struct {
	Type string `json:"type"`
}

type TransactionHandler struct {
	service service.TransactionService
	logger  *logger.Logger
}

func NewTransactionHandler(service service.TransactionService, log *logger.Logger) *TransactionHandler {
	return &TransactionHandler{
		service: service,
		logger:  log,
	}
}

func (h *TransactionHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	p, _ := middleware.PrincipalFrom(c)

	var req TransferRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	id, err := h.service.Transfer(ctx, p, service.TransferInput{
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Amount:     req.Amount,
		Type:       domain.TransactionType(req.Type),
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"id":      id,
		"message": "Transaction successful",
	})
}

func (h *TransactionHandler) List(c echo.Context) error {
	p, _ := middleware.PrincipalFrom(c)

	txs, err := h.service.List(c.Request().Context(), p)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, txs)
}

func (h *TransactionHandler) ListMine(c echo.Context) error {
	p, _ := middleware.PrincipalFrom(c)

	txs, err := h.service.ListMine(c.Request().Context(), p)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, txs)
}

func (h *TransactionHandler) Get(c echo.Context) error {
	return h.get(c, h.service.Get)
}

func (h *TransactionHandler) GetIndexed(c echo.Context) error {
	return h.get(c, h.service.GetIndexed)
}

func (h *TransactionHandler) get(c echo.Context, lookup func(ctx context.Context, p domain.Principal, id int64) (*domain.Transaction, error)) error {
	id, ok := transactionID(c)
	if !ok {
		return writeError(c, domain.ErrNotFound)
	}

	p, _ := middleware.PrincipalFrom(c)

	tx, err := lookup(c.Request().Context(), p, id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, tx)
}

func (h *TransactionHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, ok := transactionID(c)
	if !ok {
		return writeError(c, domain.ErrNotFound)
	}

	var req UpdateTransactionRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	p, _ := middleware.PrincipalFrom(c)

	tx, err := h.service.UpdateType(ctx, p, id, domain.TransactionType(req.Type))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     "Transaction updated",
		"transaction": tx,
	})
}

func (h *TransactionHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, ok := transactionID(c)
	if !ok {
		return writeError(c, domain.ErrNotFound)
	}

	p, _ := middleware.PrincipalFrom(c)

	tx, err := h.service.Delete(ctx, p, id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     "Transaction deleted",
		"transaction": tx,
	})
}

func transactionID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil
}
