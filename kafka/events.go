package kafka

import "time"

// Event types
const (
	EventTypeProductPurchased = "product.purchased"
	EventTypeProductFavorited = "product.favorited"
	EventTypeStreamCreated    = "stream.created"
)

// Kafka topics
const (
	TopicProductPurchased = "product-purchased"
	TopicProductFavorited = "product-favorited"
	TopicStreamCreated    = "stream-created"
)

// Event is a domain event that can be published
type Event interface {
	Topic() string
	Type() string
	// Key selects the partition; events for one product stay ordered
	Key() string
}

// Envelope is the JSON body written to Kafka
type Envelope struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	Payload   Event     `json:"payload"`
}

// ProductPurchasedEvent is emitted after a purchase is recorded
type ProductPurchasedEvent struct {
	PurchaseID uint    `json:"purchase_id"`
	ProductID  uint    `json:"product_id"`
	UserID     uint    `json:"user_id"`
	Amount     float64 `json:"amount"`
}

func (ProductPurchasedEvent) Topic() string { return TopicProductPurchased }
func (ProductPurchasedEvent) Type() string  { return EventTypeProductPurchased }
func (e ProductPurchasedEvent) Key() string { return productKey(e.ProductID) }

// ProductFavoritedEvent is emitted after a favorite toggle; Liked is the new state
type ProductFavoritedEvent struct {
	ProductID uint `json:"product_id"`
	UserID    uint `json:"user_id"`
	Liked     bool `json:"liked"`
}

func (ProductFavoritedEvent) Topic() string { return TopicProductFavorited }
func (ProductFavoritedEvent) Type() string  { return EventTypeProductFavorited }
func (e ProductFavoritedEvent) Key() string { return productKey(e.ProductID) }

// StreamCreatedEvent is emitted when a seller goes live
type StreamCreatedEvent struct {
	StreamID uint    `json:"stream_id"`
	UserID   uint    `json:"user_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
}

func (StreamCreatedEvent) Topic() string { return TopicStreamCreated }
func (StreamCreatedEvent) Type() string  { return EventTypeStreamCreated }
func (e StreamCreatedEvent) Key() string { return "stream_" + uintString(e.StreamID) }
