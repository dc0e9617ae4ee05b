package eventbus

import "context"

// Consumer handles events of one type. Consume may be called concurrently
// from GetWorkerCount workers and is retried on error, so it must be
// idempotent.
type Consumer interface {
	Consume(ctx context.Context, event Event) error
	GetWorkerCount() int
}
