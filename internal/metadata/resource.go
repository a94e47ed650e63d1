package metadata

import "strings"

// Resource is the declarative description of one API-exposed domain class.
// Operations holds the registered HTTP operations keyed by resolved name;
// GraphQLOperations holds the named GraphQL operation mapping. A Resource
// is never mutated after resolution: every transformation returns a copy.
type Resource struct {
	Attributes `mapstructure:",squash"`

	Operations        map[string]HTTPOperation    `json:"operations,omitempty"`
	GraphQLOperations map[string]GraphQLOperation `json:"graphqlOperations,omitempty"`
}

// Clone returns a deep copy of the resource.
func (r Resource) Clone() Resource {
	out := r
	out.Attributes = r.Attributes.Clone()
	if r.Operations != nil {
		ops := make(map[string]HTTPOperation, len(r.Operations))
		for name, op := range r.Operations {
			ops[name] = op.Clone()
		}
		out.Operations = ops
	}
	if r.GraphQLOperations != nil {
		ops := make(map[string]GraphQLOperation, len(r.GraphQLOperations))
		for name, op := range r.GraphQLOperations {
			ops[name] = op.Clone()
		}
		out.GraphQLOperations = ops
	}
	return out
}

// HasOperation reports whether an HTTP operation with the given name is
// already registered on the resource.
func (r Resource) HasOperation(name string) bool {
	_, ok := r.Operations[name]
	return ok
}

// WithOperation returns a copy of the resource with the HTTP operation
// registered under the given name, replacing any previous entry.
func (r Resource) WithOperation(name string, op HTTPOperation) Resource {
	out := r.Clone()
	if out.Operations == nil {
		out.Operations = make(map[string]HTTPOperation, 1)
	}
	out.Operations[name] = op
	return out
}

// WithGraphQLOperation returns a copy of the resource with the GraphQL
// operation registered under the given name, replacing any previous entry.
func (r Resource) WithGraphQLOperation(name string, op GraphQLOperation) Resource {
	out := r.Clone()
	if out.GraphQLOperations == nil {
		out.GraphQLOperations = make(map[string]GraphQLOperation, 1)
	}
	out.GraphQLOperations[name] = op
	return out
}

// SimpleName derives the unqualified name from a package-qualified class
// identifier, for use as the short name fallback.
// Example: "bookshop/catalog.Book" -> "Book"
func SimpleName(class string) string {
	name := class
	if i := strings.LastIndexAny(name, "./\\"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
