package schemagen

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphql-go/graphql"

	"apiops/internal/defaults"
	"apiops/internal/logging"
	"apiops/internal/metadata"
	"apiops/internal/naming"
	"apiops/internal/registry"
)

func buildResources(t *testing.T, decls ...registry.Declaration) []metadata.Resource {
	t.Helper()
	logger := &logging.Logger{Logger: slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))}
	b := registry.NewBuilder(defaults.New(nil, logger, nil), logger, nil)
	resources, err := b.Build(context.Background(), decls)
	require.NoError(t, err)
	return resources
}

func rootFieldNames(obj *graphql.Object) []string {
	if obj == nil {
		return nil
	}
	names := make([]string, 0, len(obj.Fields()))
	for name := range obj.Fields() {
		names = append(names, name)
	}
	return names
}

func TestBuildSchemaRootFields(t *testing.T) {
	resources := buildResources(t, registry.Declaration{Class: "bookshop/catalog.Book"})

	schema, err := Build(resources, naming.Default(), nil)
	require.NoError(t, err)

	queries := rootFieldNames(schema.QueryType())
	assert.Contains(t, queries, "book")
	assert.Contains(t, queries, "books")
	assert.Contains(t, queries, "apiVersion")

	mutations := rootFieldNames(schema.MutationType())
	assert.ElementsMatch(t, []string{"createBook", "updateBook", "deleteBook"}, mutations)

	assert.Nil(t, schema.SubscriptionType())
}

func TestBuildSchemaSubscriptionField(t *testing.T) {
	resources := buildResources(t, registry.Declaration{
		Class: "catalog.Book",
		Resource: metadata.Resource{
			Attributes: metadata.Attributes{Mercure: true},
		},
	})

	schema, err := Build(resources, naming.Default(), nil)
	require.NoError(t, err)

	require.NotNil(t, schema.SubscriptionType())
	subs := rootFieldNames(schema.SubscriptionType())
	assert.ElementsMatch(t, []string{"updateBookSubscribe"}, subs)

	field := schema.SubscriptionType().Fields()["updateBookSubscribe"]
	assert.Equal(t, "Subscribes to the update event of a Book.", field.Description)
}

func TestBuildSchemaNestedOperationsStayHidden(t *testing.T) {
	resources := buildResources(t, registry.Declaration{
		Class: "catalog.Review",
		Resource: metadata.Resource{
			GraphQLOperations: map[string]metadata.GraphQLOperation{
				"create": {Type: metadata.GraphQLMutation, Name: "create"},
			},
		},
	})

	// The completion pass marked the backfilled queries nested.
	require.True(t, resources[0].GraphQLOperations["query"].Nested)

	schema, err := Build(resources, naming.Default(), nil)
	require.NoError(t, err)

	queries := rootFieldNames(schema.QueryType())
	assert.NotContains(t, queries, "review")
	assert.NotContains(t, queries, "reviews")
	assert.ElementsMatch(t, []string{"createReview"}, rootFieldNames(schema.MutationType()))
}

func TestBuildSchemaResolvesShortNameCollisions(t *testing.T) {
	resources := buildResources(t,
		registry.Declaration{Class: "shop.Book"},
		registry.Declaration{Class: "library.Book"},
	)

	schema, err := Build(resources, naming.Default(), nil)
	require.NoError(t, err)

	queries := rootFieldNames(schema.QueryType())
	assert.Contains(t, queries, "book")
	assert.Contains(t, queries, "book2")
	assert.Contains(t, queries, "books")
	assert.Contains(t, queries, "books2")

	types := schema.TypeMap()
	assert.Contains(t, types, "Book")
	assert.Contains(t, types, "Book2")
}

func TestBuildSchemaMinimal(t *testing.T) {
	schema, err := Build(nil, naming.Default(), nil)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"apiVersion"}, rootFieldNames(schema.QueryType()))
	assert.Nil(t, schema.MutationType())
}

func TestBuildSchemaPluralization(t *testing.T) {
	resources := buildResources(t, registry.Declaration{Class: "catalog.Category"})

	schema, err := Build(resources, naming.Default(), nil)
	require.NoError(t, err)

	queries := rootFieldNames(schema.QueryType())
	assert.Contains(t, queries, "category")
	assert.Contains(t, queries, "categories")
}
