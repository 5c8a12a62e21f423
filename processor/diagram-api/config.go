package diagramapi

import (
	"reflect"

	"github.com/c360studio/semstreams/component"
)

// diagramAPISchema holds the configuration schema generated from Config.
var diagramAPISchema = component.GenerateConfigSchema(reflect.TypeOf(Config{}))

// Config holds configuration for the diagram-api component.
type Config struct {
	// Ports declares optional HTTP port configuration.
	Ports *component.PortConfig `json:"ports,omitempty" schema:"type:ports,description:Port configuration,category:basic"`
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{}
}

// Validate verifies the configuration is consistent.
func (c *Config) Validate() error {
	return nil
}
