package defaults

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"apiops/internal/metadata"
)

// OperationWithDefaults resolves one operation against its owning resource:
// unset attributes inherit the resource's values, extra properties merge
// with operation precedence, process-wide defaults apply, and the operation
// receives its unique name. generated marks operations synthesized by the
// engine rather than declared by the resource author.
func (r *Resolver) OperationWithDefaults(res metadata.Resource, op metadata.Operation, generated bool) (string, metadata.Operation, error) {
	switch concrete := op.(type) {
	case metadata.HTTPOperation:
		o := concrete.Clone()
		r.inherit(res, &o.Attributes)
		r.mergeExtras(res, &o.Attributes, generated)
		r.applyGlobalDefaults(&o.Attributes)
		return r.resolveHTTP(res, o)
	case metadata.GraphQLOperation:
		o := concrete.Clone()
		// Only a description declared on the operation itself counts as
		// explicit; one inherited from the resource does not protect a
		// mutation from the auto-generated wording.
		explicitDescription := o.Description != ""
		r.inherit(res, &o.Attributes)
		r.mergeExtras(res, &o.Attributes, generated)
		r.applyGlobalDefaults(&o.Attributes)
		return r.resolveGraphQL(res, o, explicitDescription)
	default:
		return "", nil, fmt.Errorf("resolving operation for resource %q: %w", res.Class, ErrUnknownOperationKind)
	}
}

// inherit copies every resource attribute onto the operation's attribute
// block where the operation has not set its own value. Operation-level
// declarations always win; inheritance never overwrites.
func (r *Resolver) inherit(res metadata.Resource, a *metadata.Attributes) {
	for _, name := range metadata.AttributeNames() {
		if current, _ := a.Attribute(name); current != nil {
			continue
		}
		if value, _ := res.Attribute(name); value != nil {
			a.SetAttribute(name, value)
		}
	}
}

// mergeExtras overlays the operation's extra properties onto the
// resource's, operation entries winning on key conflicts. Generated
// operations are additionally marked so downstream consumers can tell
// synthesized operations from declared ones.
func (r *Resolver) mergeExtras(res metadata.Resource, a *metadata.Attributes, generated bool) {
	extras := metadata.MergeMaps(res.Extra, a.Extra)
	if generated {
		extras = metadata.MergeMaps(extras, map[string]any{metadata.GeneratedOperationKey: true})
	}
	a.Extra = extras
}

func (r *Resolver) resolveGraphQL(res metadata.Resource, o metadata.GraphQLOperation, explicitDescription bool) (string, metadata.Operation, error) {
	// A nameless GraphQL operation means the synthesis that produced it
	// is broken; there is nothing sensible to recover to.
	if o.Name == "" {
		return "", nil, fmt.Errorf("resource %q: %w", res.Class, ErrMissingOperationName)
	}

	if o.Type.IsMutation() && !explicitDescription {
		// Naive "-s" pluralization, e.g. "Updates a Book.". Known to
		// mis-pluralize irregular verbs; downstream schema snapshots
		// depend on the exact wording, so it stays.
		o.Description = fmt.Sprintf("%ss a %s.", upperFirst(o.Name), o.ShortName)
	}

	return o.Name, o, nil
}

func (r *Resolver) resolveHTTP(res metadata.Resource, o metadata.HTTPOperation) (string, metadata.Operation, error) {
	name := o.Name
	// A declared route name takes precedence over any other naming.
	if o.RouteName != "" {
		name = o.RouteName
	}

	if name != "" && res.HasOperation(name) {
		r.logger.Warn("operation name already registered on resource, generating a new name",
			slog.String("operation", name),
			slog.String("resource", res.Class),
		)
		r.metrics.RecordNameCollision(context.Background(), res.Class)
		name = ""
	}

	if name == "" {
		name = generateOperationName(o)
	}

	o.Name = name
	return name, o, nil
}

// generateOperationName derives a deterministic operation name from the
// operation's URI template or short name, its method and its
// collection marker.
// Example: "_api_Book_get", "_api_Book_get_collection"
func generateOperationName(o metadata.HTTPOperation) string {
	path := o.URITemplate
	if path == "" {
		path = o.ShortName
	}
	method := o.Method
	if method == "" {
		method = metadata.MethodGet
	}
	suffix := ""
	if o.Collection {
		suffix = "_collection"
	}
	return fmt.Sprintf("_api_%s_%s%s", path, strings.ToLower(method), suffix)
}

func upperFirst(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
