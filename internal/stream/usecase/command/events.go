package command

import (
	"context"

	"github.com/tair/market/kafka"
)

// EventPublisher publishes domain events after a command commits
type EventPublisher interface {
	Publish(ctx context.Context, event kafka.Event) error
}
