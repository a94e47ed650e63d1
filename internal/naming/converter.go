package naming

import (
	"strings"
	"unicode"
)

// Converter maps attribute keys between the snake_case convention used in
// configuration files and the camelCase convention used by the attribute
// accessor tables. Both directions are pure functions.
type Converter struct{}

// NewConverter returns a Converter.
func NewConverter() Converter {
	return Converter{}
}

// Denormalize converts a configuration key (snake_case) to the accessor
// convention (camelCase).
// Example: "short_name" -> "shortName"
func (Converter) Denormalize(key string) string {
	return toCamelCase(key)
}

// Normalize converts an accessor attribute name (camelCase) back to the
// configuration convention (snake_case).
// Example: "uriTemplate" -> "uri_template"
func (Converter) Normalize(key string) string {
	return toSnakeCase(key)
}

// toCamelCase converts snake_case to camelCase
func toCamelCase(s string) string {
	parts := strings.Split(s, "_")
	for i := 1; i < len(parts); i++ {
		if len(parts[i]) > 0 {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}

// toPascalCase converts snake_case to PascalCase
func toPascalCase(s string) string {
	parts := strings.Split(s, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, "")
}

// toSnakeCase converts camelCase or PascalCase to snake_case. Runs of
// uppercase letters are kept together: "URITemplate" -> "uri_template".
func toSnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			boundary := i > 0 && (!unicode.IsUpper(runes[i-1]) ||
				(i+1 < len(runes) && !unicode.IsUpper(runes[i+1])))
			if boundary {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
