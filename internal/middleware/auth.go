package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/grachmannico95/momo-ledger/internal/domain"
	"github.com/grachmannico95/momo-ledger/pkg/logger"
	"github.com/labstack/echo/v4"
)

const (
	contextKeyPrincipal = "principal"
	contextKeyToken     = "token"
)

// Authenticator resolves a bearer token to a principal.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Principal, error)
}

// Auth rejects requests without a valid bearer token and stores the caller
// on the echo context.
func Auth(authenticator Authenticator, log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "authentication token is missing",
				})
			}

			principal, err := authenticator.Authenticate(ctx, token)
			if err != nil {
				log.Warn(ctx, "Authentication failed",
					"error", err,
				)

				msg := domain.ErrInvalidToken.Error()
				if errors.Is(err, domain.ErrTokenRevoked) {
					msg = err.Error()
				}
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": msg,
				})
			}

			ctx = logger.WithAccountID(ctx, principal.ID)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set(contextKeyPrincipal, *principal)
			c.Set(contextKeyToken, token)

			return next(c)
		}
	}
}

// PrincipalFrom returns the caller stored by Auth.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(contextKeyPrincipal).(domain.Principal)
	return p, ok
}

// TokenFrom returns the raw bearer token stored by Auth.
func TokenFrom(c echo.Context) string {
	token, _ := c.Get(contextKeyToken).(string)
	return token
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
