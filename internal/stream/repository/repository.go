package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/market/internal/stream/domain"
)

type GormStreamRepository struct {
	db *gorm.DB
}

func NewGormStreamRepository(db *gorm.DB) *GormStreamRepository {
	return &GormStreamRepository{db: db}
}

func (r *GormStreamRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Stream{})
}

func (r *GormStreamRepository) Create(ctx context.Context, stream *domain.Stream) error {
	if err := r.db.WithContext(ctx).Create(stream).Error; err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}
	return nil
}

func (r *GormStreamRepository) FindByID(ctx context.Context, id uint) (*domain.Stream, error) {
	var stream domain.Stream
	if err := r.db.WithContext(ctx).First(&stream, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStreamNotFound
		}
		return nil, fmt.Errorf("failed to find stream: %w", err)
	}
	return &stream, nil
}

func (r *GormStreamRepository) FindPage(ctx context.Context, offset, limit int) ([]domain.Stream, error) {
	streams := make([]domain.Stream, 0, limit)
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&streams).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list streams: %w", err)
	}
	return streams, nil
}

func (r *GormStreamRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Stream{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count streams: %w", err)
	}
	return count, nil
}
