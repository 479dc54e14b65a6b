package repository

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/market/internal/stream/domain"
)

var tracer = otel.Tracer("stream-repository")

// TracingStreamRepository wraps a StreamRepository with spans
type TracingStreamRepository struct {
	next domain.StreamRepository
}

func NewTracingStreamRepository(next domain.StreamRepository) *TracingStreamRepository {
	return &TracingStreamRepository{next: next}
}

func (r *TracingStreamRepository) Create(ctx context.Context, stream *domain.Stream) error {
	ctx, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.String("stream.name", stream.Name),
			attribute.Int("stream.user_id", int(stream.UserID)),
		),
	)
	defer span.End()

	if err := r.next.Create(ctx, stream); err != nil {
		recordError(span, err)
		return err
	}

	span.SetAttributes(attribute.Int("stream.id", int(stream.ID)))
	return nil
}

func (r *TracingStreamRepository) FindByID(ctx context.Context, id uint) (*domain.Stream, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(attribute.Int("stream.id", int(id))),
	)
	defer span.End()

	stream, err := r.next.FindByID(ctx, id)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	return stream, nil
}

func (r *TracingStreamRepository) FindPage(ctx context.Context, offset, limit int) ([]domain.Stream, error) {
	ctx, span := tracer.Start(ctx, "repository.FindPage",
		trace.WithAttributes(
			attribute.Int("query.offset", offset),
			attribute.Int("query.limit", limit),
		),
	)
	defer span.End()

	streams, err := r.next.FindPage(ctx, offset, limit)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(streams)))
	return streams, nil
}

func (r *TracingStreamRepository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.Count")
	defer span.End()

	count, err := r.next.Count(ctx)
	if err != nil {
		recordError(span, err)
		return 0, err
	}
	return count, nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	if errors.Is(err, domain.ErrStreamNotFound) {
		return
	}
	span.SetStatus(codes.Error, err.Error())
}
