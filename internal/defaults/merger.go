package defaults

import (
	"apiops/internal/metadata"
)

// applyGlobalDefaults applies every configured default onto the attribute
// block, in sorted key order. Defaults never overwrite an already-set
// scalar; container defaults merge underneath already-set containers; keys
// that match no accessor are stashed into extra properties unless the
// target already carries them. Defaulting is total: there is no error path.
func (r *Resolver) applyGlobalDefaults(a *metadata.Attributes) {
	var stashed map[string]any
	for _, key := range r.keys {
		value := r.defaults[key]
		attr := r.converter.Denormalize(key)

		current, known := a.Attribute(attr)
		if !known {
			if _, exists := a.Extra[key]; exists {
				continue
			}
			if stashed == nil {
				stashed = make(map[string]any)
			}
			stashed[key] = value
			continue
		}

		if current == nil {
			a.SetAttribute(attr, value)
			continue
		}

		// Already set: only container defaults merge underneath.
		if merged, ok := mergeContainers(current, value); ok {
			a.SetAttribute(attr, merged)
		}
	}

	if stashed != nil {
		// The target's own pre-existing extras take precedence.
		a.Extra = metadata.MergeMaps(stashed, a.Extra)
	}
}

// mergeContainers merges a container default underneath a non-empty
// container value: default entries act as the base and current entries win
// on key conflicts. For list containers the default entries come first,
// with duplicates removed. Returns false when either side is not a
// container, leaving the current value untouched.
func mergeContainers(current, def any) (any, bool) {
	switch cur := current.(type) {
	case map[string]any:
		base, ok := def.(map[string]any)
		if !ok {
			return nil, false
		}
		return metadata.MergeMaps(base, cur), true
	case map[string]string:
		base, ok := toStringValueMap(def)
		if !ok {
			return nil, false
		}
		out := make(map[string]string, len(base)+len(cur))
		for k, v := range base {
			out[k] = v
		}
		for k, v := range cur {
			out[k] = v
		}
		return out, true
	case []string:
		base, ok := toStringList(def)
		if !ok {
			return nil, false
		}
		seen := make(map[string]struct{}, len(base)+len(cur))
		out := make([]string, 0, len(base)+len(cur))
		for _, v := range append(base, cur...) {
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
		return out, true
	default:
		return nil, false
	}
}

func toStringValueMap(v any) (map[string]string, bool) {
	switch m := v.(type) {
	case map[string]string:
		return m, true
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, val := range m {
			s, ok := val.(string)
			if !ok {
				return nil, false
			}
			out[k] = s
		}
		return out, true
	default:
		return nil, false
	}
}

func toStringList(v any) ([]string, bool) {
	switch s := v.(type) {
	case []string:
		return s, true
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
