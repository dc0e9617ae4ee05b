package eventbus

import (
	"time"

	"github.com/grachmannico95/momo-ledger/internal/domain"
)

type EventType string

const (
	EventTypeImportCompleted EventType = "import.completed"
)

type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
	Retries   int         `json:"retries"`
}

type ImportCompletedEvent struct {
	ImportID string             `json:"import_id"`
	Stats    domain.ImportStats `json:"stats"`
}
