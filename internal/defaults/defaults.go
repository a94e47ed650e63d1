// Package defaults implements the operation defaulting engine: it expands a
// declared resource into a fully-resolved set of named HTTP and GraphQL
// operations, inheriting unset attributes from the resource, applying
// process-wide configured defaults, generating deterministic names and
// resolving collisions.
//
// The engine is a pure, terminating computation over its inputs. The only
// side effect is the warning written to the logger (and the optional
// metrics counter) when an explicitly-named operation collides with an
// already-registered one.
package defaults

import (
	"errors"
	"sort"

	"apiops/internal/logging"
	"apiops/internal/metadata"
	"apiops/internal/naming"
	"apiops/internal/observability"
)

// Fatal resolution errors. Both signal programmer or integration mistakes
// in whatever produced the operation, not expected runtime conditions; they
// abort the resource's build pass.
var (
	// ErrMissingOperationName is returned when a GraphQL operation
	// reaches resolution without a name.
	ErrMissingOperationName = errors.New("no GraphQL operation name")

	// ErrUnknownOperationKind is returned when an operation is neither an
	// HTTP nor a GraphQL operation.
	ErrUnknownOperationKind = errors.New("unknown operation kind")
)

// Resolver applies defaulting to resources and operations. It holds the
// read-only process-wide defaults configuration and is safe for concurrent
// use by independent callers.
type Resolver struct {
	defaults  map[string]any
	keys      []string
	converter naming.Converter
	logger    *logging.Logger
	metrics   *observability.BuildMetrics
}

// New creates a Resolver. The defaults mapping uses snake_case attribute
// keys as written in configuration; it is applied in sorted key order so
// resolution is deterministic. Logger may be nil; metrics is optional.
func New(defaultValues map[string]any, logger *logging.Logger, metrics *observability.BuildMetrics) *Resolver {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	keys := make([]string, 0, len(defaultValues))
	for key := range defaultValues {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return &Resolver{
		defaults:  defaultValues,
		keys:      keys,
		converter: naming.NewConverter(),
		logger:    logger,
		metrics:   metrics,
	}
}

// ResourceWithDefaults produces the canonical resource for the given class
// identifier: short name falls back to fallbackShortName when unset, class
// is always the identifier, and the process-wide defaults are applied.
func (r *Resolver) ResourceWithDefaults(class, fallbackShortName string, res metadata.Resource) metadata.Resource {
	out := res.Clone()
	if out.ShortName == "" {
		out.ShortName = fallbackShortName
	}
	out.Class = class
	r.applyGlobalDefaults(&out.Attributes)
	return out
}
