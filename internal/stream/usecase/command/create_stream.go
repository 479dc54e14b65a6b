package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/market/internal/stream/domain"
	"github.com/tair/market/kafka"
	"github.com/tair/market/pkg/logger"
)

// CreateStreamCommand represents the command to open a stream listing
type CreateStreamCommand struct {
	UserID      uint
	Name        string
	Price       float64
	Description string
}

// CreateStreamHandler handles stream creation command
type CreateStreamHandler struct {
	repo      domain.StreamRepository
	publisher EventPublisher
}

// NewCreateStreamHandler creates a new create stream handler
func NewCreateStreamHandler(repo domain.StreamRepository, publisher EventPublisher) *CreateStreamHandler {
	return &CreateStreamHandler{repo: repo, publisher: publisher}
}

// Handle executes the create stream command
func (h *CreateStreamHandler) Handle(ctx context.Context, cmd CreateStreamCommand) (*domain.Stream, error) {
	name := strings.TrimSpace(cmd.Name)
	description := strings.TrimSpace(cmd.Description)

	if cmd.UserID == 0 {
		return nil, fmt.Errorf("%w: owner is required", domain.ErrInvalidInput)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", domain.ErrInvalidInput)
	}
	if cmd.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", domain.ErrInvalidInput)
	}

	stream := &domain.Stream{
		Name:        name,
		Price:       cmd.Price,
		Description: description,
		UserID:      cmd.UserID,
	}

	if err := h.repo.Create(ctx, stream); err != nil {
		return nil, err
	}

	event := kafka.StreamCreatedEvent{
		StreamID: stream.ID,
		UserID:   stream.UserID,
		Name:     stream.Name,
		Price:    stream.Price,
	}
	if err := h.publisher.Publish(ctx, event); err != nil {
		logger.Warn(ctx).Err(err).Uint("stream_id", stream.ID).Msg("Failed to publish stream event")
	}

	return stream, nil
}
