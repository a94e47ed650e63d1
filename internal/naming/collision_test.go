package naming

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollisionResolverTypes(t *testing.T) {
	var buf bytes.Buffer
	r := NewCollisionResolver(slog.New(slog.NewTextHandler(&buf, nil)))

	assert.Equal(t, "Book", r.RegisterType("Book", "shop.Book"))
	assert.Empty(t, buf.String())

	assert.Equal(t, "Book2", r.RegisterType("Book", "library.Book"))
	assert.Contains(t, buf.String(), "naming collision detected")
	assert.Contains(t, buf.String(), "resource:shop.Book")

	assert.Equal(t, "Book3", r.RegisterType("Book", "archive.Book"))
}

func TestCollisionResolverFields(t *testing.T) {
	r := NewCollisionResolver(nil)

	assert.Equal(t, "books", r.RegisterRootField("books", "query_collection on shop.Book"))
	assert.Equal(t, "books2", r.RegisterRootField("books", "query_collection on library.Book"))

	// Type and field namespaces are independent.
	assert.Equal(t, "Book", r.RegisterType("Book", "shop.Book"))
}

func TestReservedNames(t *testing.T) {
	tests := []struct {
		name     string
		reserved bool
	}{
		{"query", true},
		{"Mutation", true},
		{"__typename", true},
		{"ID", true},
		{"Book", false},
		{"books", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.reserved, isReservedName(tt.name))
		})
	}
}
