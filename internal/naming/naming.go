package naming

import (
	"log/slog"
	"strings"
)

// Namer provides name transformation functions for projecting resolved
// operations into GraphQL schema names. It handles pluralization, reserved
// words, and collisions.
type Namer struct {
	config   Config
	logger   *slog.Logger
	resolver *CollisionResolver
}

// New creates a Namer with the given configuration
func New(cfg Config, logger *slog.Logger) *Namer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Namer{
		config:   cfg,
		logger:   logger,
		resolver: NewCollisionResolver(logger),
	}
}

// Default returns a Namer with default configuration
func Default() *Namer {
	return New(DefaultConfig(), nil)
}

// Config returns the naming configuration the namer was built with.
func (n *Namer) Config() Config {
	return n.config
}

// Reset clears the collision resolver state, allowing the namer to be reused
// for a new schema build.
func (n *Namer) Reset() {
	n.resolver = NewCollisionResolver(n.logger)
}

// TypeName converts a resource short name to a GraphQL type name
// (PascalCase).
// Example: "order_item" -> "OrderItem", "Book" -> "Book"
func (n *Namer) TypeName(shortName string) string {
	name := toPascalCase(shortName)
	return n.validateAndSuffix(name)
}

// ItemFieldName generates the root field name for a single-item query.
// Example: "Book" -> "book"
func (n *Namer) ItemFieldName(shortName string) string {
	return lowerFirst(toPascalCase(shortName))
}

// CollectionFieldName generates the root field name for a collection query:
// the pluralized item field name.
// Example: "Book" -> "books", "Category" -> "categories"
func (n *Namer) CollectionFieldName(shortName string) string {
	return n.Pluralize(n.ItemFieldName(shortName))
}

// MutationFieldName generates the root field name for a mutation or
// subscription from its operation name and the resource short name.
// Example: ("update", "Book") -> "updateBook"
func (n *Namer) MutationFieldName(operationName, shortName string) string {
	return lowerFirst(toPascalCase(operationName)) + toPascalCase(shortName)
}

// RegisterType registers a resource type name and returns the resolved
// GraphQL type name. Collisions get a numeric suffix and a warning.
func (n *Namer) RegisterType(shortName, class string) string {
	return n.resolver.RegisterType(n.TypeName(shortName), class)
}

// RegisterRootField registers a root query/mutation/subscription field and
// returns the resolved name. Collisions get a numeric suffix and a warning.
func (n *Namer) RegisterRootField(fieldName, source string) string {
	return n.resolver.RegisterRootField(n.validateAndSuffix(fieldName), source)
}

func (n *Namer) validateAndSuffix(name string) string {
	if isReservedName(name) {
		safeName := name + "_"
		n.logger.Warn("GraphQL name conflicts with reserved word, auto-suffixed",
			slog.String("original", name),
			slog.String("renamed", safeName),
		)
		return safeName
	}
	return name
}

func lowerFirst(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
