package defaults

import (
	"apiops/internal/metadata"
)

// DefaultHTTPOperations yields the canonical CRUD operation set for a
// resource, in fixed order: GET (item), GET (collection), POST, PUT, PATCH,
// DELETE. The order only affects readability of generated names.
//
// Special case: a resource with a custom URI template and no explicit
// provider gets the default create provider on its POST operation, because
// custom-URI collection resources cannot rely on implicit provider
// resolution by class.
func (r *Resolver) DefaultHTTPOperations(res metadata.Resource) []metadata.HTTPOperation {
	post := metadata.HTTPOperation{Method: metadata.MethodPost, Collection: true}
	if res.URITemplate != "" && res.Provider == "" {
		post.Provider = metadata.CreateProvider
	}

	return []metadata.HTTPOperation{
		{Method: metadata.MethodGet},
		{Method: metadata.MethodGet, Collection: true},
		post,
		{Method: metadata.MethodPut},
		{Method: metadata.MethodPatch},
		{Method: metadata.MethodDelete},
	}
}
