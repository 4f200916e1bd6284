// Package repository adapts store accessors to the store.DbRepository
// capability. Every call runs inside its own trace span.
package repository

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/phrazzld/worldbench/internal/domain"
	"github.com/phrazzld/worldbench/internal/platform/logger"
	"github.com/phrazzld/worldbench/internal/store"
)

// TracerName identifies spans created by this package.
const TracerName = "github.com/phrazzld/worldbench/internal/repository"

// Span names, one per operation.
const (
	SpanGetWorld    = "DbRepository.GetWorld"
	SpanUpdateWorld = "DbRepository.UpdateWorld"
	SpanFortunes    = "DbRepository.Fortunes"
)

// Repository implements store.DbRepository by delegating to a world accessor
// and a fortune accessor. It holds no mutable state after construction.
type Repository struct {
	worlds   store.WorldAccessor
	fortunes store.FortuneAccessor
	tracer   trace.Tracer
	logger   *slog.Logger
}

// Ensure Repository implements store.DbRepository.
var _ store.DbRepository = (*Repository)(nil)

// Option configures a Repository.
type Option func(*Repository)

// WithTracer sets the tracer used for operation spans. The default is the
// global provider's tracer.
func WithTracer(t trace.Tracer) Option {
	return func(r *Repository) {
		if t != nil {
			r.tracer = t
		}
	}
}

// WithLogger sets the fallback logger used when the request context carries none.
func WithLogger(l *slog.Logger) Option {
	return func(r *Repository) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a Repository. It panics if either accessor is nil.
func New(worlds store.WorldAccessor, fortunes store.FortuneAccessor, opts ...Option) *Repository {
	if worlds == nil {
		panic("world accessor cannot be nil")
	}
	if fortunes == nil {
		panic("fortune accessor cannot be nil")
	}

	r := &Repository{
		worlds:   worlds,
		fortunes: fortunes,
		tracer:   otel.Tracer(TracerName),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(slog.String("component", "db_repository"))

	return r
}

// GetWorld returns the world with the given id, or nil without error when
// the accessor reports it missing.
func (r *Repository) GetWorld(ctx context.Context, id int32) (*domain.World, error) {
	ctx, span := r.tracer.Start(ctx, SpanGetWorld,
		trace.WithAttributes(attribute.Int("world.id", int(id))))
	defer span.End()

	w, err := r.worlds.FindByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			logger.FromContextOrDefault(ctx, r.logger).Debug("world not found",
				slog.Int("world_id", int(id)))
			span.SetAttributes(attribute.Bool("world.found", false))
			return nil, nil
		}
		fail(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Bool("world.found", true))
	return w, nil
}

// UpdateWorld sets w.RandomNumber and saves w by primary key.
func (r *Repository) UpdateWorld(
	ctx context.Context,
	w *domain.World,
	randomNumber int32,
) (*domain.World, error) {
	ctx, span := r.tracer.Start(ctx, SpanUpdateWorld,
		trace.WithAttributes(
			attribute.Int("world.id", int(w.ID)),
			attribute.Int("world.random_number", int(randomNumber)),
		))
	defer span.End()

	w.RandomNumber = randomNumber

	saved, err := r.worlds.Save(ctx, w)
	if err != nil {
		fail(span, err)
		return nil, err
	}
	return saved, nil
}

// Fortunes returns every fortune in accessor order.
func (r *Repository) Fortunes(ctx context.Context) ([]*domain.Fortune, error) {
	ctx, span := r.tracer.Start(ctx, SpanFortunes)
	defer span.End()

	fortunes, err := r.fortunes.FindAll(ctx)
	if err != nil {
		fail(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("fortune.count", len(fortunes)))
	return fortunes, nil
}

func fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
