package transform

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultAttributeName is used when no attribute name is configured
const DefaultAttributeName = "data-test-id"

// Config represents transform options
type Config struct {
	AttributeName string `json:"attributeName,omitempty" yaml:"attributeName,omitempty"`
}

// DefaultConfig returns the default transform options
func DefaultConfig() Config {
	return Config{AttributeName: DefaultAttributeName}
}

// WithDefaults fills in missing options
func (c Config) WithDefaults() Config {
	c.AttributeName = strings.TrimSpace(c.AttributeName)
	if c.AttributeName == "" {
		c.AttributeName = DefaultAttributeName
	}
	return c
}

// ParseConfig decodes an options blob such as {"attributeName": "data-testid"}.
// JSON and YAML are both accepted; absent or malformed input, or an attributeName
// that is not a string, yields the defaults.
func ParseConfig(raw string) Config {
	if strings.TrimSpace(raw) == "" {
		return DefaultConfig()
	}
	options := struct {
		AttributeName *yaml.Node `yaml:"attributeName"`
	}{}
	if err := yaml.Unmarshal([]byte(raw), &options); err != nil {
		return DefaultConfig()
	}
	name := options.AttributeName
	if name == nil {
		return DefaultConfig()
	}
	if name.Kind != yaml.ScalarNode || name.Tag != "!!str" {
		return DefaultConfig()
	}
	return Config{AttributeName: name.Value}.WithDefaults()
}
