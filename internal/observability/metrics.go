package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BuildMetrics holds custom metrics for the resource build pass
type BuildMetrics struct {
	resourcesResolved  metric.Int64Counter
	operationsResolved metric.Int64Counter
	nameCollisions     metric.Int64Counter
	buildDuration      metric.Float64Histogram
}

// InitBuildMetrics initializes build-pass metrics
func InitBuildMetrics() (*BuildMetrics, error) {
	meter := otel.Meter("apiops")

	resourcesResolved, err := meter.Int64Counter(
		"build.resources.total",
		metric.WithDescription("Total number of resources resolved"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resources counter: %w", err)
	}

	operationsResolved, err := meter.Int64Counter(
		"build.operations.total",
		metric.WithDescription("Total number of operations resolved, by kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operations counter: %w", err)
	}

	nameCollisions, err := meter.Int64Counter(
		"build.name_collisions.total",
		metric.WithDescription("Total number of operation name collisions resolved by regeneration"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create collision counter: %w", err)
	}

	buildDuration, err := meter.Float64Histogram(
		"build.duration",
		metric.WithDescription("Duration of resource build passes in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create build duration histogram: %w", err)
	}

	return &BuildMetrics{
		resourcesResolved:  resourcesResolved,
		operationsResolved: operationsResolved,
		nameCollisions:     nameCollisions,
		buildDuration:      buildDuration,
	}, nil
}

// RecordResource records one resolved resource
func (m *BuildMetrics) RecordResource(ctx context.Context, class string) {
	if m == nil {
		return
	}
	m.resourcesResolved.Add(ctx, 1, metric.WithAttributes(
		attribute.String("resource.class", class),
	))
}

// RecordOperation records one resolved operation of the given kind
// ("http" or "graphql")
func (m *BuildMetrics) RecordOperation(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.operationsResolved.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation.kind", kind),
	))
}

// RecordNameCollision records one name collision resolved by regeneration
func (m *BuildMetrics) RecordNameCollision(ctx context.Context, class string) {
	if m == nil {
		return
	}
	m.nameCollisions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("resource.class", class),
	))
}

// RecordBuildDuration records the duration of one build pass
func (m *BuildMetrics) RecordBuildDuration(ctx context.Context, d time.Duration) {
	if m == nil {
		return
	}
	m.buildDuration.Record(ctx, float64(d.Milliseconds()))
}
