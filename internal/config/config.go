// Package config loads configuration from files, env vars, and flags, and
// validates it. Configuration carries the process-wide attribute defaults,
// the resource declarations, and the runtime settings for the inspection
// server.
package config

import (
	"time"

	"apiops/internal/logging"
	"apiops/internal/metadata"
	"apiops/internal/naming"
	"apiops/internal/observability"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Server        ServerConfig         `mapstructure:"server"`
	Logging       logging.Config       `mapstructure:"logging"`
	Observability observability.Config `mapstructure:"observability"`

	// Defaults is the process-wide mapping of attribute key (snake_case)
	// to default value, applied to every resource and operation that
	// lacks the attribute. Read-only after loading.
	Defaults map[string]any `mapstructure:"defaults"`

	Naming    naming.Config    `mapstructure:"naming"`
	Resources []ResourceConfig `mapstructure:"resources"`
}

// ServerConfig holds HTTP server parameters for the inspection server.
type ServerConfig struct {
	ListenAddr      string        `mapstructure:"listen_addr"`
	GraphiQLEnabled bool          `mapstructure:"graphiql_enabled"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ResourceConfig declares one resource: its attributes (class is the
// required identifier) plus optional explicit operations. Families with no
// explicit operations get the synthesized default set.
type ResourceConfig struct {
	Attributes        metadata.Attributes                  `mapstructure:",squash"`
	Operations        []metadata.HTTPOperation             `mapstructure:"operations"`
	GraphQLOperations map[string]metadata.GraphQLOperation `mapstructure:"graphql_operations"`
}

// Resource converts the declaration into the metadata value the build pass
// starts from.
func (rc ResourceConfig) Resource() metadata.Resource {
	res := metadata.Resource{Attributes: rc.Attributes.Clone()}
	if len(rc.GraphQLOperations) > 0 {
		res.GraphQLOperations = make(map[string]metadata.GraphQLOperation, len(rc.GraphQLOperations))
		for name, op := range rc.GraphQLOperations {
			res.GraphQLOperations[name] = op.Clone()
		}
	}
	return res
}

// setDefaults registers default values (lowest precedence).
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.listen_addr", ":8080")
	v.SetDefault("server.graphiql_enabled", true)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("observability.service_name", "apiops")
	v.SetDefault("observability.environment", "development")
}
