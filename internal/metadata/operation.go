package metadata

// Operation is the sum of the two operation families the engine knows
// about. The resolver branches on the concrete type; anything else is
// rejected as an unknown operation kind.
type Operation interface {
	// OperationName returns the operation's current name, which may be
	// empty before resolution.
	OperationName() string
}

// HTTP method names used by the default operation set. MethodGet doubles as
// the fallback when an operation never declares a method.
const (
	MethodGet    = "GET"
	MethodPost   = "POST"
	MethodPut    = "PUT"
	MethodPatch  = "PATCH"
	MethodDelete = "DELETE"
)

// CreateProvider is the provider reference injected into the default POST
// operation of resources that declare a custom URI template. Such resources
// cannot rely on implicit provider resolution by class.
const CreateProvider = "api.state.create_provider"

// HTTPOperation is one HTTP endpoint derived from a resource.
type HTTPOperation struct {
	Attributes `mapstructure:",squash"`

	Name       string `mapstructure:"name" json:"name,omitempty"`
	Method     string `mapstructure:"method" json:"method,omitempty"`
	RouteName  string `mapstructure:"route_name" json:"routeName,omitempty"`
	Collection bool   `mapstructure:"collection" json:"collection,omitempty"`
}

// OperationName implements Operation.
func (o HTTPOperation) OperationName() string { return o.Name }

// Clone returns a deep copy of the operation.
func (o HTTPOperation) Clone() HTTPOperation {
	out := o
	out.Attributes = o.Attributes.Clone()
	return out
}

// GraphQLOperationType discriminates the GraphQL operation subtypes.
type GraphQLOperationType string

const (
	GraphQLQuery           GraphQLOperationType = "query"
	GraphQLQueryCollection GraphQLOperationType = "query_collection"
	GraphQLMutation        GraphQLOperationType = "mutation"
	GraphQLDeleteMutation  GraphQLOperationType = "delete_mutation"
	GraphQLSubscription    GraphQLOperationType = "subscription"
)

// IsQuery reports whether the type is a query, collection or not.
func (t GraphQLOperationType) IsQuery() bool {
	return t == GraphQLQuery || t == GraphQLQueryCollection
}

// IsMutation reports whether the type is a mutation. Delete mutations are
// mutations for every purpose the engine cares about, including the
// auto-generated description.
func (t GraphQLOperationType) IsMutation() bool {
	return t == GraphQLMutation || t == GraphQLDeleteMutation
}

// Default names for synthesized GraphQL operations.
const (
	DefaultQueryName           = "query"
	DefaultQueryCollectionName = "query_collection"
	DefaultUpdateMutationName  = "update"
	DefaultDeleteMutationName  = "delete"
	DefaultCreateMutationName  = "create"
	DefaultSubscriptionName    = "update_subscription"
)

// GraphQLOperation is one GraphQL query, mutation or subscription derived
// from a resource. Nested operations exist only to serve relation fields on
// other types and are never registered as root schema fields.
type GraphQLOperation struct {
	Attributes `mapstructure:",squash"`

	Type   GraphQLOperationType `mapstructure:"type" json:"type"`
	Name   string               `mapstructure:"name" json:"name,omitempty"`
	Nested bool                 `mapstructure:"nested" json:"nested,omitempty"`
}

// OperationName implements Operation.
func (o GraphQLOperation) OperationName() string { return o.Name }

// Clone returns a deep copy of the operation.
func (o GraphQLOperation) Clone() GraphQLOperation {
	out := o
	out.Attributes = o.Attributes.Clone()
	return out
}
