package eventbus

import (
	"context"
	"fmt"

	"github.com/grachmannico95/momo-ledger/internal/domain"
	"github.com/grachmannico95/momo-ledger/pkg/logger"
)

// ImportConsumer marks an import run completed once its batch has been
// written to the ledger.
type ImportConsumer struct {
	repo        domain.ImportRepository
	logger      *logger.Logger
	workerCount int
}

func NewImportConsumer(repo domain.ImportRepository, log *logger.Logger, workerCount int) *ImportConsumer {
	if workerCount < 1 {
		workerCount = 1
	}

	return &ImportConsumer{
		repo:        repo,
		logger:      log,
		workerCount: workerCount,
	}
}

func (ic *ImportConsumer) Consume(ctx context.Context, event Event) error {
	// Check idempotency
	processed, err := ic.repo.IsEventProcessed(ctx, event.ID)
	if err != nil {
		ic.logger.Error(ctx, "Failed to check event processed status",
			"event_id", event.ID,
			"error", err,
		)
		return err
	}

	if processed {
		ic.logger.Debug(ctx, "Event already processed, skipping",
			"event_id", event.ID,
		)
		return nil
	}

	payload, ok := event.Payload.(ImportCompletedEvent)
	if !ok {
		ic.logger.Error(ctx, "Invalid payload type for import event",
			"event_id", event.ID,
		)
		return fmt.Errorf("invalid payload type")
	}

	ctx = logger.WithImportID(ctx, payload.ImportID)

	err = ic.repo.CompleteImport(ctx, payload.ImportID, payload.Stats)
	if err != nil {
		ic.logger.Error(ctx, "Failed to complete import",
			"event_id", event.ID,
			"error", err,
		)
		return err
	}

	err = ic.repo.MarkEventProcessed(ctx, event.ID)
	if err != nil {
		ic.logger.Error(ctx, "Failed to mark event as processed",
			"event_id", event.ID,
			"error", err,
		)
		return err
	}

	ic.logger.Info(ctx, "Import completed",
		"messages", payload.Stats.Messages,
		"candidates", payload.Stats.Candidates,
		"stored", payload.Stats.Stored,
	)

	return nil
}

func (ic *ImportConsumer) GetWorkerCount() int {
	return ic.workerCount
}
