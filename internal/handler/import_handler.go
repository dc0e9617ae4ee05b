package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/grachmannico95/momo-ledger/internal/domain"
	"github.com/grachmannico95/momo-ledger/internal/middleware"
	"github.com/grachmannico95/momo-ledger/internal/service"
	"github.com/grachmannico95/momo-ledger/pkg/logger"
	"github.com/labstack/echo/v4"
)

type ImportHandler struct {
	service service.ImportService
	logger  *logger.Logger
}

func NewImportHandler(service service.ImportService, log *logger.Logger) *ImportHandler {
	return &ImportHandler{
		service: service,
		logger:  log,
	}
}

// Upload accepts an SMS backup either as the "file" field of a multipart
// form or as the raw request body.
func (h *ImportHandler) Upload(c echo.Context) error {
	ctx := c.Request().Context()

	p, _ := middleware.PrincipalFrom(c)
	if !p.IsAdmin() {
		return writeError(c, domain.ErrForbidden)
	}

	h.logger.Info(ctx, "Handling import request")

	var src io.Reader = c.Request().Body
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		file, err := c.FormFile("file")
		if err != nil {
			h.logger.Error(ctx, "Failed to get file from request",
				"error", err,
			)
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file is required"})
		}

		f, err := file.Open()
		if err != nil {
			h.logger.Error(ctx, "Failed to open file",
				"error", err,
			)
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to open file"})
		}
		defer f.Close()

		src = f
	}

	importID, err := h.service.UploadMessages(ctx, src)
	if err != nil {
		h.logger.Error(ctx, "Failed to start import",
			"error", err,
		)
		return writeError(c, err)
	}

	return c.JSON(http.StatusAccepted, map[string]string{
		"import_id": importID,
		"status":    string(domain.ImportStatusProcessing),
	})
}

func (h *ImportHandler) Get(c echo.Context) error {
	imp, err := h.service.GetImport(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, imp)
}
