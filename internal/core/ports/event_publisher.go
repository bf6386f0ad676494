package ports

import (
	"context"

	"github.com/vulpemventures/coinpurse/internal/core/domain"
)

// EventPublisher is the abstraction for any kind of broker client intended
// to forward spend records to external consumers.
type EventPublisher interface {
	PublishSpendRecord(ctx context.Context, record *domain.SpendRecord) error
	Close() error
}
