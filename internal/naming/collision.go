package naming

import (
	"fmt"
	"log/slog"
)

// CollisionResolver tracks registered schema names and resolves collisions
// by applying numeric suffixes when duplicates are detected. Two resources
// with the same short name, or two operations projecting to the same root
// field, would otherwise silently shadow each other in the schema.
type CollisionResolver struct {
	seenTypes  map[string]string // GraphQL type name → resource class
	seenFields map[string]string // root field name → source operation
	logger     *slog.Logger
}

// NewCollisionResolver creates a new collision resolver.
func NewCollisionResolver(logger *slog.Logger) *CollisionResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &CollisionResolver{
		seenTypes:  make(map[string]string),
		seenFields: make(map[string]string),
		logger:     logger,
	}
}

// RegisterType registers a GraphQL type name and returns the resolved name.
// If a collision occurs, applies a numeric suffix and logs a warning.
func (c *CollisionResolver) RegisterType(typeName, class string) string {
	return c.resolveCollision(typeName, c.seenTypes, "resource:"+class)
}

// RegisterRootField registers a root field name and returns the resolved
// name. If a collision occurs, applies a numeric suffix and logs a warning.
func (c *CollisionResolver) RegisterRootField(fieldName, source string) string {
	return c.resolveCollision(fieldName, c.seenFields, source)
}

// resolveCollision attempts to register a name in the given map.
// If the name already exists, finds the next available numeric suffix.
func (c *CollisionResolver) resolveCollision(name string, seen map[string]string, source string) string {
	if _, exists := seen[name]; !exists {
		seen[name] = source
		return name
	}

	existingSource := seen[name]
	c.logger.Warn("naming collision detected, applying suffix",
		slog.String("name", name),
		slog.String("existing_source", existingSource),
		slog.String("new_source", source),
	)

	for i := 2; ; i++ {
		suffixed := fmt.Sprintf("%s%d", name, i)
		if _, exists := seen[suffixed]; !exists {
			seen[suffixed] = source
			return suffixed
		}
	}
}
