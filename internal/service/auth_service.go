package service

import (
	"context"
	"errors"

	"github.com/grachmannico95/momo-ledger/internal/auth"
	"github.com/grachmannico95/momo-ledger/internal/domain"
	"github.com/grachmannico95/momo-ledger/pkg/logger"
	"github.com/shopspring/decimal"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
	Balance  decimal.Decimal
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*domain.Principal, error)
}

type authService struct {
	ledger domain.LedgerRepository
	tokens domain.TokenRepository
	issuer *auth.TokenIssuer
	logger *logger.Logger
}

func NewAuthService(ledger domain.LedgerRepository, tokens domain.TokenRepository, issuer *auth.TokenIssuer, log *logger.Logger) AuthService {
	return &authService{
		ledger: ledger,
		tokens: tokens,
		issuer: issuer,
		logger: log,
	}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*domain.Account, error) {
	if in.Role == "" {
		in.Role = domain.RoleUser
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		s.logger.Error(ctx, "Failed to hash password",
			"error", err,
		)
		return nil, err
	}

	id, err := s.ledger.CreateAccount(ctx, in.Name, in.Email, hash, in.Role, in.Balance)
	if err != nil {
		s.logger.Warn(ctx, "Failed to create account",
			"email", in.Email,
			"error", err,
		)
		return nil, err
	}

	ctx = logger.WithAccountID(ctx, id)
	s.logger.Info(ctx, "Account registered",
		"role", in.Role,
	)

	return s.ledger.GetAccount(ctx, id)
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	acc, err := s.ledger.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !auth.CheckPassword(password, acc.PasswordHash) {
		s.logger.Warn(logger.WithAccountID(ctx, acc.ID), "Login failed")
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(acc.ID, acc.Role)
	if err != nil {
		s.logger.Error(ctx, "Failed to issue token",
			"error", err,
		)
		return "", err
	}

	s.logger.Info(logger.WithAccountID(ctx, acc.ID), "Login succeeded")

	return token, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.tokens.RevokeToken(ctx, token)
}

// Authenticate resolves a bearer token to the calling principal. The display
// name falls back to domain.SelfLabel when the account no longer exists.
func (s *authService) Authenticate(ctx context.Context, token string) (*domain.Principal, error) {
	revoked, err := s.tokens.IsTokenRevoked(ctx, token)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}

	claims, err := s.issuer.Parse(token)
	if err != nil {
		return nil, err
	}

	principal := &domain.Principal{
		ID:   claims.UserID,
		Role: claims.Role,
		Name: domain.SelfLabel,
	}

	acc, err := s.ledger.GetAccount(ctx, claims.UserID)
	switch {
	case err == nil:
		principal.Name = acc.Name
	case !errors.Is(err, domain.ErrAccountNotFound):
		return nil, err
	}

	return principal, nil
}
