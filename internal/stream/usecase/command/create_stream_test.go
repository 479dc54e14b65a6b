package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/market/internal/stream/domain"
	"github.com/tair/market/internal/stream/repository"
	"github.com/tair/market/internal/testdb"
	"github.com/tair/market/kafka"
)

type capturePublisher struct {
	events []kafka.Event
}

func (p *capturePublisher) Publish(_ context.Context, event kafka.Event) error {
	p.events = append(p.events, event)
	return nil
}

func TestCreateStream(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewGormStreamRepository(testdb.Open(t, &domain.Stream{}))
	pub := &capturePublisher{}
	h := NewCreateStreamHandler(repo, pub)

	stream, err := h.Handle(ctx, CreateStreamCommand{UserID: 3, Name: " Evening sale ", Price: 0, Description: "vintage"})
	require.NoError(t, err)
	assert.NotZero(t, stream.ID)
	assert.Equal(t, "Evening sale", stream.Name)

	require.Len(t, pub.events, 1)
	assert.Equal(t, kafka.StreamCreatedEvent{StreamID: stream.ID, UserID: 3, Name: "Evening sale"}, pub.events[0])

	tests := []struct {
		name string
		cmd  CreateStreamCommand
	}{
		{"anonymous", CreateStreamCommand{Name: "a", Description: "b"}},
		{"no name", CreateStreamCommand{UserID: 1, Description: "b"}},
		{"no description", CreateStreamCommand{UserID: 1, Name: "a"}},
		{"negative price", CreateStreamCommand{UserID: 1, Name: "a", Description: "b", Price: -3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Handle(ctx, tt.cmd)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Len(t, pub.events, 1)
}
