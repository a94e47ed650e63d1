package defaults

import (
	"fmt"

	"apiops/internal/metadata"
)

// WithDefaultGraphQLOperations populates the resource's GraphQL operation
// mapping with the canonical set: query_collection, query, update, delete
// and create, each resolved before insertion and keyed by its resolved name
// (last write wins). Resources with subscription support enabled get an
// additional subscription operation with an auto-generated description.
func (r *Resolver) WithDefaultGraphQLOperations(res metadata.Resource) (metadata.Resource, error) {
	ops := []metadata.GraphQLOperation{
		{Type: metadata.GraphQLQueryCollection, Name: metadata.DefaultQueryCollectionName},
		{Type: metadata.GraphQLQuery, Name: metadata.DefaultQueryName},
		{Type: metadata.GraphQLMutation, Name: metadata.DefaultUpdateMutationName},
		{Type: metadata.GraphQLDeleteMutation, Name: metadata.DefaultDeleteMutationName},
		{Type: metadata.GraphQLMutation, Name: metadata.DefaultCreateMutationName},
	}

	if res.MercureEnabled() {
		ops = append(ops, metadata.GraphQLOperation{
			Type: metadata.GraphQLSubscription,
			Name: metadata.DefaultSubscriptionName,
			Attributes: metadata.Attributes{
				Description: fmt.Sprintf("Subscribes to the update event of a %s.", res.ShortName),
			},
		})
	}

	out := res.Clone()
	if out.GraphQLOperations == nil {
		out.GraphQLOperations = make(map[string]metadata.GraphQLOperation, len(ops))
	}
	for _, op := range ops {
		name, resolved, err := r.OperationWithDefaults(out, op, true)
		if err != nil {
			return metadata.Resource{}, err
		}
		out.GraphQLOperations[name] = resolved.(metadata.GraphQLOperation)
	}
	return out, nil
}

// CompleteGraphQLOperations guarantees that a query and a query_collection
// operation exist on the resource, synthesizing nested ones where absent.
// Nested operations serve relation fields from other root queries and are
// never exposed as root schema fields themselves.
func (r *Resolver) CompleteGraphQLOperations(res metadata.Resource) (metadata.Resource, error) {
	hasQuery, hasCollection := false, false
	for _, op := range res.GraphQLOperations {
		switch op.Type {
		case metadata.GraphQLQuery:
			hasQuery = true
		case metadata.GraphQLQueryCollection:
			hasCollection = true
		}
	}

	out := res
	if !hasQuery {
		var err error
		out, err = r.addNestedQuery(out, metadata.GraphQLOperation{
			Type:   metadata.GraphQLQuery,
			Name:   metadata.DefaultQueryName,
			Nested: true,
		})
		if err != nil {
			return metadata.Resource{}, err
		}
	}
	if !hasCollection {
		var err error
		out, err = r.addNestedQuery(out, metadata.GraphQLOperation{
			Type:   metadata.GraphQLQueryCollection,
			Name:   metadata.DefaultQueryCollectionName,
			Nested: true,
		})
		if err != nil {
			return metadata.Resource{}, err
		}
	}
	return out, nil
}

// addNestedQuery resolves and inserts a synthesized query, keyed by its own
// name and only when that name is still free.
func (r *Resolver) addNestedQuery(res metadata.Resource, op metadata.GraphQLOperation) (metadata.Resource, error) {
	if _, exists := res.GraphQLOperations[op.Name]; exists {
		return res, nil
	}
	name, resolved, err := r.OperationWithDefaults(res, op, true)
	if err != nil {
		return metadata.Resource{}, err
	}
	return res.WithGraphQLOperation(name, resolved.(metadata.GraphQLOperation)), nil
}
