// Package registry runs the resource build pass: it feeds each declared
// resource through the defaulting engine and collects the fully-resolved
// operation mappings that routing and schema building consume.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"apiops/internal/defaults"
	"apiops/internal/logging"
	"apiops/internal/metadata"
	"apiops/internal/observability"
)

// Declaration is the static input for one resource: the class identifier,
// the resource-level attributes, and the optional explicit operations. When
// no explicit operations of a family are declared, the canonical default
// set for that family is synthesized instead.
type Declaration struct {
	Class          string
	Resource       metadata.Resource
	HTTPOperations []metadata.HTTPOperation
}

// Builder resolves declarations into resources with fully-populated
// operation mappings. It holds no mutable state across calls and may be
// used concurrently.
type Builder struct {
	resolver *defaults.Resolver
	logger   *logging.Logger
	metrics  *observability.BuildMetrics
}

// NewBuilder creates a Builder. Logger may be nil; metrics is optional.
func NewBuilder(resolver *defaults.Resolver, logger *logging.Logger, metrics *observability.BuildMetrics) *Builder {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	return &Builder{
		resolver: resolver,
		logger:   logger,
		metrics:  metrics,
	}
}

// Build resolves every declaration, preserving input order. A fatal
// resolution error aborts the whole pass.
func (b *Builder) Build(ctx context.Context, decls []Declaration) ([]metadata.Resource, error) {
	start := time.Now()
	resources := make([]metadata.Resource, 0, len(decls))
	for _, decl := range decls {
		res, err := b.BuildResource(ctx, decl)
		if err != nil {
			return nil, err
		}
		resources = append(resources, res)
	}
	b.metrics.RecordBuildDuration(ctx, time.Since(start))

	b.logger.Info("resource build pass complete",
		slog.Int("resources", len(resources)),
		slog.Duration("duration", time.Since(start)),
	)
	return resources, nil
}

// BuildResource resolves a single declaration: resource-level defaulting,
// then HTTP and GraphQL operation synthesis with every candidate passed
// through the operation resolver.
func (b *Builder) BuildResource(ctx context.Context, decl Declaration) (metadata.Resource, error) {
	res := b.resolver.ResourceWithDefaults(decl.Class, metadata.SimpleName(decl.Class), decl.Resource)

	res, err := b.resolveHTTPOperations(ctx, res, decl.HTTPOperations)
	if err != nil {
		return metadata.Resource{}, fmt.Errorf("failed to resolve HTTP operations: %w", err)
	}

	res, err = b.resolveGraphQLOperations(ctx, res)
	if err != nil {
		return metadata.Resource{}, fmt.Errorf("failed to resolve GraphQL operations: %w", err)
	}

	b.metrics.RecordResource(ctx, res.Class)
	b.logger.Debug("resource resolved",
		slog.String("class", res.Class),
		slog.String("short_name", res.ShortName),
		slog.Int("http_operations", len(res.Operations)),
		slog.Int("graphql_operations", len(res.GraphQLOperations)),
	)
	return res, nil
}

func (b *Builder) resolveHTTPOperations(ctx context.Context, res metadata.Resource, declared []metadata.HTTPOperation) (metadata.Resource, error) {
	ops := declared
	generated := false
	if len(ops) == 0 {
		ops = b.resolver.DefaultHTTPOperations(res)
		generated = true
	}

	for _, op := range ops {
		name, resolved, err := b.resolver.OperationWithDefaults(res, op, generated)
		if err != nil {
			return metadata.Resource{}, err
		}
		res = res.WithOperation(name, resolved.(metadata.HTTPOperation))
		b.metrics.RecordOperation(ctx, "http")
	}
	return res, nil
}

func (b *Builder) resolveGraphQLOperations(ctx context.Context, res metadata.Resource) (metadata.Resource, error) {
	var err error
	if len(res.GraphQLOperations) == 0 {
		res, err = b.resolver.WithDefaultGraphQLOperations(res)
		if err != nil {
			return metadata.Resource{}, err
		}
	} else {
		res, err = b.resolveDeclaredGraphQLOperations(res)
		if err != nil {
			return metadata.Resource{}, err
		}
	}

	res, err = b.resolver.CompleteGraphQLOperations(res)
	if err != nil {
		return metadata.Resource{}, err
	}

	for range res.GraphQLOperations {
		b.metrics.RecordOperation(ctx, "graphql")
	}
	return res, nil
}

// resolveDeclaredGraphQLOperations re-keys the declared mapping by resolved
// name, resolving entries in sorted key order for determinism. The mapping
// key supplies the operation name when the operation itself declares none.
func (b *Builder) resolveDeclaredGraphQLOperations(res metadata.Resource) (metadata.Resource, error) {
	names := make([]string, 0, len(res.GraphQLOperations))
	for name := range res.GraphQLOperations {
		names = append(names, name)
	}
	sort.Strings(names)

	resolved := make(map[string]metadata.GraphQLOperation, len(names))
	for _, name := range names {
		op := res.GraphQLOperations[name]
		if op.Name == "" {
			op.Name = name
		}
		resolvedName, resolvedOp, err := b.resolver.OperationWithDefaults(res, op, false)
		if err != nil {
			return metadata.Resource{}, err
		}
		resolved[resolvedName] = resolvedOp.(metadata.GraphQLOperation)
	}

	out := res.Clone()
	out.GraphQLOperations = resolved
	return out, nil
}
