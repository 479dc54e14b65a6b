package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishEnvelope(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != TopicProductFavorited {
			return errors.New("unexpected topic " + msg.Topic)
		}
		key, _ := msg.Key.Encode()
		if string(key) != "product_9" {
			return errors.New("unexpected key " + string(key))
		}

		value, _ := msg.Value.Encode()
		var envelope struct {
			EventID   string                `json:"event_id"`
			EventType string                `json:"event_type"`
			Payload   ProductFavoritedEvent `json:"payload"`
		}
		if err := json.Unmarshal(value, &envelope); err != nil {
			return err
		}
		if envelope.EventType != EventTypeProductFavorited || !envelope.Payload.Liked || envelope.EventID == "" {
			return errors.New("unexpected envelope")
		}
		return nil
	})

	p := NewPublisherWithProducer(producer, []string{"mock:9092"})
	err := p.Publish(context.Background(), ProductFavoritedEvent{ProductID: 9, UserID: 1, Liked: true})
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestPublishFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewPublisherWithProducer(producer, nil)
	err := p.Publish(context.Background(), StreamCreatedEvent{StreamID: 1})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}
