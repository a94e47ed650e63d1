package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apiops/internal/logging"
	"apiops/internal/metadata"
	"apiops/internal/naming"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr:      ":8080",
			ShutdownTimeout: 15 * time.Second,
		},
		Logging: logging.Config{Level: "info", Format: "text"},
		Naming:  naming.DefaultConfig(),
		Resources: []ResourceConfig{
			{Attributes: metadata.Attributes{Class: "bookshop/catalog.Book"}},
		},
	}
}

func TestValidateOK(t *testing.T) {
	result := validConfig().Validate()
	assert.False(t, result.HasErrors())
	assert.Empty(t, result.Warnings)
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{
			name:   "missing listen addr",
			mutate: func(c *Config) { c.Server.ListenAddr = "" },
			field:  "server.listen_addr",
		},
		{
			name:   "bad log level",
			mutate: func(c *Config) { c.Logging.Level = "verbose" },
			field:  "logging.level",
		},
		{
			name:   "bad log format",
			mutate: func(c *Config) { c.Logging.Format = "xml" },
			field:  "logging.format",
		},
		{
			name:   "resource without class",
			mutate: func(c *Config) { c.Resources[0].Attributes.Class = "" },
			field:  "resources[0].class",
		},
		{
			name: "duplicate class",
			mutate: func(c *Config) {
				c.Resources = append(c.Resources, c.Resources[0])
			},
			field: "resources[1].class",
		},
		{
			name: "mercure wrong type",
			mutate: func(c *Config) {
				c.Resources[0].Attributes.Mercure = "yes"
			},
			field: "resources[0].mercure",
		},
		{
			name: "unknown http method",
			mutate: func(c *Config) {
				c.Resources[0].Operations = []metadata.HTTPOperation{{Method: "FETCH"}}
			},
			field: "resources[0].operations[0].method",
		},
		{
			name: "unknown graphql type",
			mutate: func(c *Config) {
				c.Resources[0].GraphQLOperations = map[string]metadata.GraphQLOperation{
					"boom": {Type: "upsert"},
				}
			},
			field: "resources[0].graphql_operations[boom].type",
		},
		{
			name: "empty plural override",
			mutate: func(c *Config) {
				c.Naming.PluralOverrides[""] = "people"
			},
			field: "naming.plural_overrides",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			result := cfg.Validate()
			require.True(t, result.HasErrors())

			fields := make([]string, 0, len(result.Errors))
			for _, e := range result.Errors {
				fields = append(fields, e.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidateWarnings(t *testing.T) {
	cfg := validConfig()
	cfg.Server.ShutdownTimeout = 0
	cfg.Defaults = map[string]any{"stateless": true}
	cfg.Resources = nil

	result := cfg.Validate()
	assert.False(t, result.HasErrors())

	fields := make([]string, 0, len(result.Warnings))
	for _, w := range result.Warnings {
		fields = append(fields, w.Field)
	}
	assert.Contains(t, fields, "server.shutdown_timeout")
	assert.Contains(t, fields, "defaults.stateless")
	assert.Contains(t, fields, "resources")
}

func TestKnownDefaultKeysRaiseNoWarning(t *testing.T) {
	cfg := validConfig()
	cfg.Defaults = map[string]any{
		"pagination_enabled": true,
		"route_prefix":       "/v1",
	}

	result := cfg.Validate()
	assert.Empty(t, result.Warnings)
}

func TestValidationErrorString(t *testing.T) {
	e := ValidationError{Field: "server.listen_addr", Message: "listen address is required", Hint: "use \":8080\""}
	assert.Equal(t, `server.listen_addr: listen address is required (hint: use ":8080")`, e.Error())

	e.Hint = ""
	assert.Equal(t, "server.listen_addr: listen address is required", e.Error())
}
