package service

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/grachmannico95/momo-ledger/internal/domain"
	"github.com/grachmannico95/momo-ledger/pkg/logger"
)

type ImportService interface {
	UploadMessages(ctx context.Context, reader io.Reader) (string, error)
	ImportSync(ctx context.Context, reader io.Reader) (string, domain.ImportStats, error)
	GetImport(ctx context.Context, importID string) (*domain.Import, error)
}

type importService struct {
	repo         domain.ImportRepository
	xmlProcessor XMLProcessorInterface
	logger       *logger.Logger
}

func NewImportService(repo domain.ImportRepository, xmlProcessor XMLProcessorInterface, log *logger.Logger) ImportService {
	return &importService{
		repo:         repo,
		xmlProcessor: xmlProcessor,
		logger:       log,
	}
}

// UploadMessages registers an import and processes it in the background.
// The payload is read fully before returning so the caller may close it.
func (s *importService) UploadMessages(ctx context.Context, reader io.Reader) (string, error) {
	payload, err := io.ReadAll(reader)
	if err != nil {
		s.logger.Error(ctx, "Failed to read upload",
			"error", err,
		)
		return "", fmt.Errorf("read upload: %w", err)
	}

	importID, err := s.createImport(ctx)
	if err != nil {
		return "", err
	}

	go func() {
		processCtx := logger.WithImportID(context.Background(), importID)

		s.logger.Info(processCtx, "Starting async SMS processing")

		if _, err := s.xmlProcessor.ProcessStream(processCtx, importID, bytes.NewReader(payload)); err != nil {
			s.logger.Error(processCtx, "SMS processing failed",
				"error", err,
			)
		}
	}()

	s.logger.Info(logger.WithImportID(ctx, importID), "Import created, processing started",
		"bytes", len(payload),
	)

	return importID, nil
}

// ImportSync runs an import to completion on the calling goroutine.
func (s *importService) ImportSync(ctx context.Context, reader io.Reader) (string, domain.ImportStats, error) {
	importID, err := s.createImport(ctx)
	if err != nil {
		return "", domain.ImportStats{}, err
	}

	stats, err := s.xmlProcessor.ProcessStream(ctx, importID, reader)
	return importID, stats, err
}

func (s *importService) GetImport(ctx context.Context, importID string) (*domain.Import, error) {
	ctx = logger.WithImportID(ctx, importID)

	s.logger.Debug(ctx, "Getting import status")

	imp, err := s.repo.GetImport(ctx, importID)
	if err != nil {
		s.logger.Warn(ctx, "Failed to get import",
			"error", err,
		)
		return nil, err
	}

	return imp, nil
}

func (s *importService) createImport(ctx context.Context) (string, error) {
	importID := uuid.New().String()
	ctx = logger.WithImportID(ctx, importID)

	s.logger.Info(ctx, "Creating import record")

	if err := s.repo.CreateImport(ctx, importID); err != nil {
		s.logger.Error(ctx, "Failed to create import",
			"error", err,
		)
		return "", err
	}

	return importID, nil
}
