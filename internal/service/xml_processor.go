package service

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/grachmannico95/momo-ledger/internal/domain"
	"github.com/grachmannico95/momo-ledger/internal/eventbus"
	"github.com/grachmannico95/momo-ledger/internal/interpreter"
	"github.com/grachmannico95/momo-ledger/internal/metrics"
	"github.com/grachmannico95/momo-ledger/pkg/logger"
)

type XMLProcessorInterface interface {
	ProcessStream(ctx context.Context, importID string, reader io.Reader) (domain.ImportStats, error)
}

type XMLProcessor struct {
	eventBus   eventbus.EventBus
	ledger     domain.LedgerRepository
	importRepo domain.ImportRepository
	metrics    *metrics.Metrics
	logger     *logger.Logger
}

func NewXMLProcessor(
	eventBus eventbus.EventBus,
	ledger domain.LedgerRepository,
	importRepo domain.ImportRepository,
	m *metrics.Metrics,
	log *logger.Logger,
) *XMLProcessor {
	return &XMLProcessor{
		eventBus:   eventBus,
		ledger:     ledger,
		importRepo: importRepo,
		metrics:    m,
		logger:     log,
	}
}

// ProcessStream reads an SMS backup document, interprets every top-level
// <sms> body in document order and stores the resulting batch. Nothing is
// stored when the document cannot be decoded.
func (p *XMLProcessor) ProcessStream(ctx context.Context, importID string, reader io.Reader) (domain.ImportStats, error) {
	ctx = logger.WithImportID(ctx, importID)

	p.logger.Info(ctx, "Starting SMS backup processing")

	var stats domain.ImportStats

	bodies, err := readBodies(reader)
	if err != nil {
		p.logger.Error(ctx, "Failed to decode SMS backup",
			"error", err,
		)
		p.fail(ctx, importID, err)
		return stats, err
	}

	stats.Messages = len(bodies)
	candidates := make([]domain.Candidate, 0, len(bodies))

	for i, body := range bodies {
		candidate, outcome := interpreter.Interpret(body)
		p.metrics.ObserveMessage(string(outcome))

		if candidate == nil {
			p.logger.Debug(ctx, "Message skipped",
				"position", i+1,
				"outcome", outcome,
			)
			continue
		}

		candidates = append(candidates, *candidate)
	}
	stats.Candidates = len(candidates)

	stored, err := p.ledger.ImportBatch(ctx, candidates)
	if err != nil {
		p.logger.Error(ctx, "Failed to store import batch",
			"error", err,
		)
		p.fail(ctx, importID, err)
		return stats, err
	}
	stats.Stored = stored
	p.metrics.ObserveImported(stored)

	event := eventbus.Event{
		ID:   fmt.Sprintf("%s-completed", importID),
		Type: eventbus.EventTypeImportCompleted,
		Payload: eventbus.ImportCompletedEvent{
			ImportID: importID,
			Stats:    stats,
		},
		Timestamp: time.Now(),
	}

	if err := p.eventBus.Publish(ctx, event); err != nil {
		p.logger.Error(ctx, "Failed to publish event",
			"event_id", event.ID,
			"error", err,
		)
		p.fail(ctx, importID, err)
		return stats, err
	}

	p.logger.Info(ctx, "SMS backup processing completed",
		"messages", stats.Messages,
		"candidates", stats.Candidates,
		"stored", stats.Stored,
	)

	return stats, nil
}

func (p *XMLProcessor) fail(ctx context.Context, importID string, cause error) {
	if err := p.importRepo.FailImport(ctx, importID, cause.Error()); err != nil {
		p.logger.Error(ctx, "Failed to update import status to failed",
			"error", err,
		)
	}
}

// readBodies returns the body attribute of each <sms> child of the root
// element. A missing attribute reads as an empty body.
func readBodies(reader io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(reader)

	var bodies []string
	depth := 0
	sawRoot := false

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid sms backup: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 1 {
				sawRoot = true
			}
			if depth == 2 && el.Name.Local == "sms" {
				bodies = append(bodies, attr(el, "body"))
			}
		case xml.EndElement:
			depth--
		}
	}

	if !sawRoot {
		return nil, errors.New("invalid sms backup: no root element")
	}

	return bodies, nil
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
