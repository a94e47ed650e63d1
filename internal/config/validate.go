package config

import (
	"fmt"
	"strings"

	"apiops/internal/metadata"
	"apiops/internal/naming"
)

// ValidationError represents a configuration validation error with context.
type ValidationError struct {
	Field   string
	Message string
	Hint    string
}

func (e ValidationError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s (hint: %s)", e.Field, e.Message, e.Hint)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Field   string
	Message string
	Hint    string
}

// ValidationResult contains the results of configuration validation.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Error returns a combined error message if there are validation errors.
func (r *ValidationResult) Error() string {
	if !r.HasErrors() {
		return ""
	}
	var msgs []string
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

func (r *ValidationResult) addError(field, message, hint string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message, Hint: hint})
}

func (r *ValidationResult) addWarning(field, message, hint string) {
	r.Warnings = append(r.Warnings, ValidationWarning{Field: field, Message: message, Hint: hint})
}

// Validate checks the configuration and returns both errors (fatal) and
// warnings (non-fatal issues).
func (c *Config) Validate() *ValidationResult {
	result := &ValidationResult{}

	c.Server.validate(result)
	validateLogging(result, c)
	validateDefaults(result, c.Defaults)
	validateNamingConfig(result, c.Naming)
	validateResources(result, c.Resources)

	return result
}

func (s ServerConfig) validate(result *ValidationResult) {
	if s.ListenAddr == "" {
		result.addError("server.listen_addr", "listen address is required", "use \":8080\" to listen on all interfaces")
	}
	if s.ShutdownTimeout <= 0 {
		result.addWarning("server.shutdown_timeout", "non-positive shutdown timeout disables graceful shutdown", "")
	}
}

func validateLogging(result *ValidationResult, c *Config) {
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		result.addError("logging.level", fmt.Sprintf("unknown log level %q", c.Logging.Level), "use debug, info, warn, or error")
	}
	switch c.Logging.Format {
	case "", "json", "text":
	default:
		result.addError("logging.format", fmt.Sprintf("unknown log format %q", c.Logging.Format), "use json or text")
	}
}

// validateDefaults warns about default keys that match no attribute
// accessor; they are not errors because unknown keys are stashed into
// extra properties by design.
func validateDefaults(result *ValidationResult, defaultValues map[string]any) {
	converter := naming.NewConverter()
	known := make(map[string]struct{})
	for _, name := range metadata.AttributeNames() {
		known[name] = struct{}{}
	}
	for key := range defaultValues {
		if _, ok := known[converter.Denormalize(key)]; !ok {
			result.addWarning(
				"defaults."+key,
				"key matches no resource attribute",
				"the value will be stored in extra_properties on every resource and operation",
			)
		}
	}
}

func validateNamingConfig(result *ValidationResult, cfg naming.Config) {
	for singular, plural := range cfg.PluralOverrides {
		if singular == "" || plural == "" {
			result.addError("naming.plural_overrides", "override entries must have non-empty singular and plural forms", "")
		}
	}
	for plural, singular := range cfg.SingularOverrides {
		if plural == "" || singular == "" {
			result.addError("naming.singular_overrides", "override entries must have non-empty singular and plural forms", "")
		}
	}
}

func validateResources(result *ValidationResult, resources []ResourceConfig) {
	if len(resources) == 0 {
		result.addWarning("resources", "no resources declared", "the operation mapping and schema preview will be empty")
	}

	seen := make(map[string]struct{}, len(resources))
	for i, rc := range resources {
		field := fmt.Sprintf("resources[%d]", i)
		class := rc.Attributes.Class
		if class == "" {
			result.addError(field+".class", "class identifier is required", "use a package-qualified type name, e.g. bookshop/catalog.Book")
			continue
		}
		if _, dup := seen[class]; dup {
			result.addError(field+".class", fmt.Sprintf("class %q is declared more than once", class), "")
		}
		seen[class] = struct{}{}

		switch rc.Attributes.Mercure.(type) {
		case nil, bool, map[string]any:
		default:
			result.addError(field+".mercure", "mercure must be a boolean or a hub configuration map", "")
		}

		for j, op := range rc.Operations {
			opField := fmt.Sprintf("%s.operations[%d]", field, j)
			switch op.Method {
			case "", metadata.MethodGet, metadata.MethodPost, metadata.MethodPut, metadata.MethodPatch, metadata.MethodDelete:
			default:
				result.addError(opField+".method", fmt.Sprintf("unknown HTTP method %q", op.Method), "methods are upper-case: GET, POST, PUT, PATCH, DELETE")
			}
		}

		for name, op := range rc.GraphQLOperations {
			opField := fmt.Sprintf("%s.graphql_operations[%s]", field, name)
			switch op.Type {
			case metadata.GraphQLQuery, metadata.GraphQLQueryCollection,
				metadata.GraphQLMutation, metadata.GraphQLDeleteMutation,
				metadata.GraphQLSubscription:
			default:
				result.addError(opField+".type", fmt.Sprintf("unknown GraphQL operation type %q", op.Type),
					"use query, query_collection, mutation, delete_mutation, or subscription")
			}
		}
	}
}
