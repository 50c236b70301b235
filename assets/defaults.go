// Package assets embeds the default configuration files written on first
// run and used as fallbacks when user files are missing.
package assets

import _ "embed"

// ConfigDefaults is the annotated default ~/.asknix/config.yaml.
//
//go:embed defaults/config.yaml
var ConfigDefaults []byte

// GuardrailDefaults is the default ~/.asknix/guardrail.yaml rule set.
//
//go:embed defaults/guardrail.yaml
var GuardrailDefaults []byte
