package repository

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/market/internal/product/domain"
)

var tracer = otel.Tracer("product-repository")

// TracingProductRepository wraps a ProductRepository with spans
type TracingProductRepository struct {
	next domain.ProductRepository
}

func NewTracingProductRepository(next domain.ProductRepository) *TracingProductRepository {
	return &TracingProductRepository{next: next}
}

func (r *TracingProductRepository) Create(ctx context.Context, product *domain.Product) error {
	ctx, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.String("product.name", product.Name),
			attribute.Float64("product.price", product.Price),
			attribute.Int("product.user_id", int(product.UserID)),
		),
	)
	defer span.End()

	if err := r.next.Create(ctx, product); err != nil {
		recordError(span, err)
		return err
	}

	span.SetAttributes(attribute.Int("product.id", int(product.ID)))
	return nil
}

func (r *TracingProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(attribute.Int("product.id", int(id))),
	)
	defer span.End()

	product, err := r.next.FindByID(ctx, id)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int64("product.fav_count", product.FavCount))
	return product, nil
}

func (r *TracingProductRepository) FindPage(ctx context.Context, offset, limit int) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindPage",
		trace.WithAttributes(
			attribute.Int("query.offset", offset),
			attribute.Int("query.limit", limit),
		),
	)
	defer span.End()

	products, err := r.next.FindPage(ctx, offset, limit)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(products)))
	return products, nil
}

func (r *TracingProductRepository) FindRelated(ctx context.Context, product *domain.Product, limit int) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindRelated",
		trace.WithAttributes(
			attribute.Int("product.id", int(product.ID)),
			attribute.Int("query.limit", limit),
		),
	)
	defer span.End()

	related, err := r.next.FindRelated(ctx, product, limit)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(related)))
	return related, nil
}

func (r *TracingProductRepository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.Count")
	defer span.End()

	count, err := r.next.Count(ctx)
	if err != nil {
		recordError(span, err)
		return 0, err
	}

	span.SetAttributes(attribute.Int64("result.count", count))
	return count, nil
}

func (r *TracingProductRepository) IsLiked(ctx context.Context, productID, userID uint) (bool, error) {
	ctx, span := tracer.Start(ctx, "repository.IsLiked",
		trace.WithAttributes(
			attribute.Int("product.id", int(productID)),
			attribute.Int("user.id", int(userID)),
		),
	)
	defer span.End()

	liked, err := r.next.IsLiked(ctx, productID, userID)
	if err != nil {
		recordError(span, err)
		return false, err
	}
	return liked, nil
}

func (r *TracingProductRepository) ToggleFav(ctx context.Context, productID, userID uint) (bool, error) {
	ctx, span := tracer.Start(ctx, "repository.ToggleFav",
		trace.WithAttributes(
			attribute.Int("product.id", int(productID)),
			attribute.Int("user.id", int(userID)),
		),
	)
	defer span.End()

	liked, err := r.next.ToggleFav(ctx, productID, userID)
	if err != nil {
		recordError(span, err)
		return false, err
	}

	span.SetAttributes(attribute.Bool("fav.liked", liked))
	return liked, nil
}

func (r *TracingProductRepository) CreatePurchase(ctx context.Context, purchase *domain.Purchase) error {
	ctx, span := tracer.Start(ctx, "repository.CreatePurchase",
		trace.WithAttributes(
			attribute.Int("product.id", int(purchase.ProductID)),
			attribute.Int("user.id", int(purchase.UserID)),
		),
	)
	defer span.End()

	if err := r.next.CreatePurchase(ctx, purchase); err != nil {
		recordError(span, err)
		return err
	}

	span.SetAttributes(attribute.Int("purchase.id", int(purchase.ID)))
	return nil
}

func (r *TracingProductRepository) ListRecords(ctx context.Context, kind domain.RecordKind, userID uint) ([]domain.Record, error) {
	ctx, span := tracer.Start(ctx, "repository.ListRecords",
		trace.WithAttributes(
			attribute.String("record.kind", string(kind)),
			attribute.Int("user.id", int(userID)),
		),
	)
	defer span.End()

	records, err := r.next.ListRecords(ctx, kind, userID)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(records)))
	return records, nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	if errors.Is(err, domain.ErrProductNotFound) {
		return
	}
	span.SetStatus(codes.Error, err.Error())
}
