// Package metadata defines the value objects the operation defaulting
// engine works on: resources, their HTTP and GraphQL operations, and the
// shared attribute block both inherit from. All values follow a
// copy-on-write discipline: nothing in this package mutates a value it was
// handed, and every transformation returns a new value.
package metadata

// Attribute names in the accessor convention (camelCase). Configuration
// files use the snake_case spelling; the naming.Converter maps between the
// two.
const (
	AttrShortName              = "shortName"
	AttrClass                  = "class"
	AttrDescription            = "description"
	AttrURITemplate            = "uriTemplate"
	AttrRoutePrefix            = "routePrefix"
	AttrDeprecationReason      = "deprecationReason"
	AttrSecurity               = "security"
	AttrProvider               = "provider"
	AttrProcessor              = "processor"
	AttrMercure                = "mercure"
	AttrPaginationEnabled      = "paginationEnabled"
	AttrPaginationItemsPerPage = "paginationItemsPerPage"
	AttrNormalizationContext   = "normalizationContext"
	AttrDenormalizationContext = "denormalizationContext"
	AttrFilters                = "filters"
	AttrOrder                  = "order"
)

// GeneratedOperationKey marks operations synthesized by the engine rather
// than declared by the resource author. It is stored in extra properties.
const GeneratedOperationKey = "generated_operation"

// Attributes is the shared attribute block embedded in Resource,
// HTTPOperation and GraphQLOperation. An unset attribute is the zero value:
// empty string, nil pointer, or nil/empty container. Mercure is typed any
// because it accepts either a boolean toggle or a hub configuration map.
type Attributes struct {
	ShortName              string            `mapstructure:"short_name" json:"shortName,omitempty"`
	Class                  string            `mapstructure:"class" json:"class,omitempty"`
	Description            string            `mapstructure:"description" json:"description,omitempty"`
	URITemplate            string            `mapstructure:"uri_template" json:"uriTemplate,omitempty"`
	RoutePrefix            string            `mapstructure:"route_prefix" json:"routePrefix,omitempty"`
	DeprecationReason      string            `mapstructure:"deprecation_reason" json:"deprecationReason,omitempty"`
	Security               string            `mapstructure:"security" json:"security,omitempty"`
	Provider               string            `mapstructure:"provider" json:"provider,omitempty"`
	Processor              string            `mapstructure:"processor" json:"processor,omitempty"`
	Mercure                any               `mapstructure:"mercure" json:"mercure,omitempty"`
	PaginationEnabled      *bool             `mapstructure:"pagination_enabled" json:"paginationEnabled,omitempty"`
	PaginationItemsPerPage *int              `mapstructure:"pagination_items_per_page" json:"paginationItemsPerPage,omitempty"`
	NormalizationContext   map[string]any    `mapstructure:"normalization_context" json:"normalizationContext,omitempty"`
	DenormalizationContext map[string]any    `mapstructure:"denormalization_context" json:"denormalizationContext,omitempty"`
	Filters                []string          `mapstructure:"filters" json:"filters,omitempty"`
	Order                  map[string]string `mapstructure:"order" json:"order,omitempty"`
	Extra                  map[string]any    `mapstructure:"extra_properties" json:"extraProperties,omitempty"`
}

// accessor pairs a getter and a setter for one attribute. Getters return
// nil when the attribute is unset. Setters report whether the supplied
// value had a usable type; a false return leaves the attribute untouched.
type accessor struct {
	get func(a *Attributes) any
	set func(a *Attributes, v any) bool
}

// attributeOrder fixes the iteration order for inheritance and defaulting
// so that resolution is deterministic across builds.
var attributeOrder = []string{
	AttrShortName,
	AttrClass,
	AttrDescription,
	AttrURITemplate,
	AttrRoutePrefix,
	AttrDeprecationReason,
	AttrSecurity,
	AttrProvider,
	AttrProcessor,
	AttrMercure,
	AttrPaginationEnabled,
	AttrPaginationItemsPerPage,
	AttrNormalizationContext,
	AttrDenormalizationContext,
	AttrFilters,
	AttrOrder,
}

var accessors = map[string]accessor{
	AttrShortName:         stringAccessor(func(a *Attributes) *string { return &a.ShortName }),
	AttrClass:             stringAccessor(func(a *Attributes) *string { return &a.Class }),
	AttrDescription:       stringAccessor(func(a *Attributes) *string { return &a.Description }),
	AttrURITemplate:       stringAccessor(func(a *Attributes) *string { return &a.URITemplate }),
	AttrRoutePrefix:       stringAccessor(func(a *Attributes) *string { return &a.RoutePrefix }),
	AttrDeprecationReason: stringAccessor(func(a *Attributes) *string { return &a.DeprecationReason }),
	AttrSecurity:          stringAccessor(func(a *Attributes) *string { return &a.Security }),
	AttrProvider:          stringAccessor(func(a *Attributes) *string { return &a.Provider }),
	AttrProcessor:         stringAccessor(func(a *Attributes) *string { return &a.Processor }),
	AttrMercure: {
		get: func(a *Attributes) any { return a.Mercure },
		set: func(a *Attributes, v any) bool {
			a.Mercure = v
			return true
		},
	},
	AttrPaginationEnabled: {
		get: func(a *Attributes) any {
			if a.PaginationEnabled == nil {
				return nil
			}
			return *a.PaginationEnabled
		},
		set: func(a *Attributes, v any) bool {
			b, ok := v.(bool)
			if !ok {
				return false
			}
			a.PaginationEnabled = &b
			return true
		},
	},
	AttrPaginationItemsPerPage: {
		get: func(a *Attributes) any {
			if a.PaginationItemsPerPage == nil {
				return nil
			}
			return *a.PaginationItemsPerPage
		},
		set: func(a *Attributes, v any) bool {
			n, ok := toInt(v)
			if !ok {
				return false
			}
			a.PaginationItemsPerPage = &n
			return true
		},
	},
	AttrNormalizationContext:   mapAccessor(func(a *Attributes) *map[string]any { return &a.NormalizationContext }),
	AttrDenormalizationContext: mapAccessor(func(a *Attributes) *map[string]any { return &a.DenormalizationContext }),
	AttrFilters: {
		get: func(a *Attributes) any {
			if len(a.Filters) == 0 {
				return nil
			}
			return a.Filters
		},
		set: func(a *Attributes, v any) bool {
			filters, ok := toStringSlice(v)
			if !ok {
				return false
			}
			a.Filters = filters
			return true
		},
	},
	AttrOrder: {
		get: func(a *Attributes) any {
			if len(a.Order) == 0 {
				return nil
			}
			return a.Order
		},
		set: func(a *Attributes, v any) bool {
			order, ok := toStringMap(v)
			if !ok {
				return false
			}
			a.Order = order
			return true
		},
	},
}

func stringAccessor(field func(a *Attributes) *string) accessor {
	return accessor{
		get: func(a *Attributes) any {
			if *field(a) == "" {
				return nil
			}
			return *field(a)
		},
		set: func(a *Attributes, v any) bool {
			s, ok := v.(string)
			if !ok {
				return false
			}
			*field(a) = s
			return true
		},
	}
}

func mapAccessor(field func(a *Attributes) *map[string]any) accessor {
	return accessor{
		get: func(a *Attributes) any {
			if len(*field(a)) == 0 {
				return nil
			}
			return *field(a)
		},
		set: func(a *Attributes, v any) bool {
			m, ok := toAnyMap(v)
			if !ok {
				return false
			}
			*field(a) = m
			return true
		},
	}
}

// AttributeNames returns the attribute names in canonical order.
func AttributeNames() []string {
	names := make([]string, len(attributeOrder))
	copy(names, attributeOrder)
	return names
}

// Attribute returns the current value of the named attribute, or nil when
// it is unset. The second return reports whether the name is a known
// attribute.
func (a *Attributes) Attribute(name string) (any, bool) {
	acc, ok := accessors[name]
	if !ok {
		return nil, false
	}
	return acc.get(a), true
}

// SetAttribute assigns the named attribute. It returns false when the name
// is unknown or the value's type does not fit the attribute, in which case
// nothing changes.
func (a *Attributes) SetAttribute(name string, v any) bool {
	acc, ok := accessors[name]
	if !ok {
		return false
	}
	return acc.set(a, v)
}

// Clone returns a deep copy of the attribute block. Containers are copied
// one level deep, which is sufficient for the copy-on-write discipline the
// engine follows.
func (a Attributes) Clone() Attributes {
	out := a
	out.NormalizationContext = cloneAnyMap(a.NormalizationContext)
	out.DenormalizationContext = cloneAnyMap(a.DenormalizationContext)
	out.Extra = cloneAnyMap(a.Extra)
	if a.Filters != nil {
		out.Filters = append([]string(nil), a.Filters...)
	}
	if a.Order != nil {
		order := make(map[string]string, len(a.Order))
		for k, v := range a.Order {
			order[k] = v
		}
		out.Order = order
	}
	if a.PaginationEnabled != nil {
		b := *a.PaginationEnabled
		out.PaginationEnabled = &b
	}
	if a.PaginationItemsPerPage != nil {
		n := *a.PaginationItemsPerPage
		out.PaginationItemsPerPage = &n
	}
	if m, ok := a.Mercure.(map[string]any); ok {
		out.Mercure = cloneAnyMap(m)
	}
	return out
}

// MercureEnabled reports whether subscription support is turned on, either
// as a boolean toggle or as a non-empty hub configuration.
func (a *Attributes) MercureEnabled() bool {
	switch v := a.Mercure.(type) {
	case bool:
		return v
	case map[string]any:
		return len(v) > 0
	default:
		return false
	}
}

// MergeMaps overlays override onto base: entries from base are kept unless
// override carries the same key. Neither input is modified; the result is
// always a fresh map. Returns nil when both inputs are empty.
func MergeMaps(base, override map[string]any) map[string]any {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	out := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

func cloneAnyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func toStringSlice(v any) ([]string, bool) {
	switch s := v.(type) {
	case []string:
		return append([]string(nil), s...), true
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			str, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	default:
		return nil, false
	}
}

func toStringMap(v any) (map[string]string, bool) {
	switch m := v.(type) {
	case map[string]string:
		out := make(map[string]string, len(m))
		for k, val := range m {
			out[k] = val
		}
		return out, true
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, val := range m {
			str, ok := val.(string)
			if !ok {
				return nil, false
			}
			out[k] = str
		}
		return out, true
	default:
		return nil, false
	}
}

func toAnyMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	return cloneAnyMap(m), true
}
