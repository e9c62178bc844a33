package configloader

import (
	"maps"

	"github.com/yaklabco/tagforest/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Recovery != "" {
		result.Recovery = override.Recovery
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	// A config layer can turn strict mode on but never off.
	if override.Strict {
		result.Strict = true
	}

	result.Diagnostics = mergeDiagnostics(base.Diagnostics, override.Diagnostics)

	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

// mergeDiagnostics performs a deep merge of per-kind overrides.
func mergeDiagnostics(base, override map[string]config.DiagnosticConfig) map[string]config.DiagnosticConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.DiagnosticConfig, len(base)+len(override))
	maps.Copy(result, base)

	for kind, val := range override {
		existing, ok := result[kind]
		if !ok {
			result[kind] = val
			continue
		}
		if val.Enabled != nil {
			existing.Enabled = val.Enabled
		}
		if val.Severity != nil {
			existing.Severity = val.Severity
		}
		result[kind] = existing
	}

	return result
}
