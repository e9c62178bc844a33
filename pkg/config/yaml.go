package config

import (
	"bytes"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML format.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration with a header comment.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	if header == "" {
		return yamlBytes, nil
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(yamlBytes)

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if cfg.Diagnostics == nil {
		cfg.Diagnostics = make(map[string]DiagnosticConfig)
	}

	return cfg, nil
}

// Clone creates a deep copy of the configuration, including CLI-only fields.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := &Config{
		Extensions: slices.Clone(c.Extensions),
		Ignore:     slices.Clone(c.Ignore),
		Recovery:   c.Recovery,
		Format:     c.Format,
		Jobs:       c.Jobs,
		Strict:     c.Strict,
	}

	if c.Diagnostics != nil {
		clone.Diagnostics = make(map[string]DiagnosticConfig, len(c.Diagnostics))
		for kind, dc := range c.Diagnostics {
			clone.Diagnostics[kind] = dc.clone()
		}
	}

	return clone
}

func (dc DiagnosticConfig) clone() DiagnosticConfig {
	clone := DiagnosticConfig{}

	if dc.Enabled != nil {
		enabled := *dc.Enabled
		clone.Enabled = &enabled
	}

	if dc.Severity != nil {
		severity := *dc.Severity
		clone.Severity = &severity
	}

	return clone
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}
