package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/grachmannico95/momo-ledger/internal/domain"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// Validator adapts go-playground/validator to echo.Validator.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// bindAndValidate decodes the request body into req and runs struct
// validation. It writes the error response itself and returns false on
// failure.
func bindAndValidate(c echo.Context, req interface{}) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	if err := c.Validate(req); err != nil {
		resp := ErrorResponse{Error: "validation failed"}

		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			resp.Details = make(map[string]string, len(verrs))
			for _, fe := range verrs {
				resp.Details[fe.Field()] = fmt.Sprintf("failed on '%s' tag", fe.Tag())
			}
		}

		return false, c.JSON(http.StatusBadRequest, resp)
	}

	return true, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrImportNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrTokenRevoked):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidParty),
		errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrInvalidType),
		errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders a domain error. Unexpected errors are not echoed back.
func writeError(c echo.Context, err error) error {
	status := statusFor(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}

	return c.JSON(status, ErrorResponse{Error: msg})
}
