package defaults

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apiops/internal/metadata"
)

func TestDefaultHTTPOperationsOrder(t *testing.T) {
	r := newTestResolver(nil, nil)

	ops := r.DefaultHTTPOperations(bookResource())
	require.Len(t, ops, 6)

	want := []struct {
		method     string
		collection bool
	}{
		{metadata.MethodGet, false},
		{metadata.MethodGet, true},
		{metadata.MethodPost, true},
		{metadata.MethodPut, false},
		{metadata.MethodPatch, false},
		{metadata.MethodDelete, false},
	}
	for i, w := range want {
		assert.Equal(t, w.method, ops[i].Method, "index %d", i)
		assert.Equal(t, w.collection, ops[i].Collection, "index %d", i)
	}
}

func TestDefaultPostGetsCreateProvider(t *testing.T) {
	tests := []struct {
		name string
		res  metadata.Resource
		want string
	}{
		{
			name: "custom uri template without provider",
			res: metadata.Resource{Attributes: metadata.Attributes{
				ShortName:   "Book",
				URITemplate: "/books",
			}},
			want: metadata.CreateProvider,
		},
		{
			name: "declared provider wins",
			res: metadata.Resource{Attributes: metadata.Attributes{
				ShortName:   "Book",
				URITemplate: "/books",
				Provider:    "catalog.book_provider",
			}},
			want: "",
		},
		{
			name: "no uri template",
			res:  bookResource(),
			want: "",
		},
	}

	r := newTestResolver(nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops := r.DefaultHTTPOperations(tt.res)
			var post metadata.HTTPOperation
			for _, op := range ops {
				if op.Method == metadata.MethodPost {
					post = op
				}
			}
			assert.Equal(t, tt.want, post.Provider)
		})
	}
}
