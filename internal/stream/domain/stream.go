package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrStreamNotFound = errors.New("stream not found")
	ErrInvalidInput   = errors.New("invalid input")
)

// Stream is a live-selling listing created by a user
type Stream struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Price       float64   `json:"price" gorm:"not null;default:0"`
	Description string    `json:"description" gorm:"not null"`
	UserID      uint      `json:"userId" gorm:"not null;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName specifies the table name
func (Stream) TableName() string {
	return "streams"
}

// StreamRepository defines the contract for stream data access
type StreamRepository interface {
	Create(ctx context.Context, stream *Stream) error
	FindByID(ctx context.Context, id uint) (*Stream, error)
	FindPage(ctx context.Context, offset, limit int) ([]Stream, error)
	Count(ctx context.Context) (int64, error)
}
