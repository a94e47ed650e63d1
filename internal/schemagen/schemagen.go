// Package schemagen projects resolved GraphQL operation mappings into a
// graphql-go schema. The schema is a structural preview: root fields for
// every non-nested operation, one object type per resource, and stub
// resolution. Execution belongs to downstream consumers; operations with
// the nested flag never surface as root fields.
package schemagen

import (
	"fmt"
	"sort"
	"strings"

	"apiops/internal/logging"
	"apiops/internal/metadata"
	"apiops/internal/naming"

	"github.com/graphql-go/graphql"
)

// Build assembles the preview schema for the given resolved resources.
// Naming collisions across resources (duplicate short names, duplicate root
// fields) are resolved with numeric suffixes and logged, mirroring how
// operation name collisions are handled during resolution.
func Build(resources []metadata.Resource, namer *naming.Namer, logger *logging.Logger) (graphql.Schema, error) {
	if namer == nil {
		namer = naming.Default()
	}
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	namer.Reset()

	queryFields := graphql.Fields{}
	mutationFields := graphql.Fields{}
	subscriptionFields := graphql.Fields{}

	for _, res := range resources {
		resourceType := buildResourceType(res, namer)

		for _, name := range sortedOperationNames(res) {
			op := res.GraphQLOperations[name]
			if op.Nested {
				continue
			}
			source := fmt.Sprintf("%s:%s", res.Class, name)
			switch op.Type {
			case metadata.GraphQLQuery:
				fieldName := namer.RegisterRootField(namer.ItemFieldName(res.ShortName), source)
				queryFields[fieldName] = &graphql.Field{
					Type:        resourceType,
					Description: op.Description,
					Args: graphql.FieldConfigArgument{
						"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					},
				}
			case metadata.GraphQLQueryCollection:
				fieldName := namer.RegisterRootField(namer.CollectionFieldName(res.ShortName), source)
				queryFields[fieldName] = &graphql.Field{
					Type:        graphql.NewList(graphql.NewNonNull(resourceType)),
					Description: op.Description,
				}
			case metadata.GraphQLMutation, metadata.GraphQLDeleteMutation:
				fieldName := namer.RegisterRootField(namer.MutationFieldName(op.Name, res.ShortName), source)
				mutationFields[fieldName] = &graphql.Field{
					Type:        resourceType,
					Description: op.Description,
					Args: graphql.FieldConfigArgument{
						"id": &graphql.ArgumentConfig{Type: graphql.ID},
					},
				}
			case metadata.GraphQLSubscription:
				fieldName := namer.RegisterRootField(subscriptionFieldName(namer, op.Name, res.ShortName), source)
				subscriptionFields[fieldName] = &graphql.Field{
					Type:        resourceType,
					Description: op.Description,
					Args: graphql.FieldConfigArgument{
						"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					},
				}
			default:
				logger.Warn("skipping GraphQL operation with unknown type",
					"operation", name,
					"resource", res.Class,
				)
			}
		}
	}

	// A schema needs at least one query field even when every resource is
	// reachable only through relations.
	queryFields["apiVersion"] = &graphql.Field{
		Type:        graphql.NewNonNull(graphql.String),
		Description: "Metadata schema version.",
	}

	schemaConfig := graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Query",
			Fields: queryFields,
		}),
	}
	if len(mutationFields) > 0 {
		schemaConfig.Mutation = graphql.NewObject(graphql.ObjectConfig{
			Name:   "Mutation",
			Fields: mutationFields,
		})
	}
	if len(subscriptionFields) > 0 {
		schemaConfig.Subscription = graphql.NewObject(graphql.ObjectConfig{
			Name:   "Subscription",
			Fields: subscriptionFields,
		})
	}

	schema, err := graphql.NewSchema(schemaConfig)
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("failed to build preview schema: %w", err)
	}
	return schema, nil
}

// buildResourceType creates the object type all of a resource's operations
// share. Field metadata belongs to the serializer pipeline, so the preview
// exposes only the identifier.
func buildResourceType(res metadata.Resource, namer *naming.Namer) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name:        namer.RegisterType(res.ShortName, res.Class),
		Description: res.Description,
		Fields: graphql.Fields{
			"id": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		},
	})
}

// subscriptionFieldName derives the root field for a subscription
// operation, e.g. ("update_subscription", "Book") -> "updateBookSubscribe".
func subscriptionFieldName(namer *naming.Namer, opName, shortName string) string {
	base := strings.TrimSuffix(opName, "_subscription")
	return namer.MutationFieldName(base, shortName) + "Subscribe"
}

func sortedOperationNames(res metadata.Resource) []string {
	names := make([]string, 0, len(res.GraphQLOperations))
	for name := range res.GraphQLOperations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
