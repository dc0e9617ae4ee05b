package handler

import (
	"net/http"

	"github.com/grachmannico95/momo-ledger/internal/domain"
	"github.com/grachmannico95/momo-ledger/internal/middleware"
	"github.com/grachmannico95/momo-ledger/internal/service"
	"github.com/grachmannico95/momo-ledger/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Name     string          `json:"name" validate:"required"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required"`
	Role     string          `json:"role" validate:"omitempty,oneof=USER ADMIN"`
	Balance  decimal.Decimal `json:"balance"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthHandler struct {
	service service.AuthService
	logger  *logger.Logger
}

func NewAuthHandler(service service.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  log,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req RegisterRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	acc, err := h.service.Register(ctx, service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
		Balance:  req.Balance,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, acc)
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	token, err := h.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"access_token": token,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.service.Logout(ctx, middleware.TokenFrom(c)); err != nil {
		h.logger.Error(ctx, "Failed to revoke token",
			"error", err,
		)
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Logged out successfully",
	})
}
