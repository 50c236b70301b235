package security

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/asknix/asknix/assets"
	"github.com/asknix/asknix/internal/domain"
)

// DangerPattern describes one regex-based rejection rule.
type DangerPattern struct {
	Pattern     string `yaml:"pattern"`
	Category    string `yaml:"category"`
	Severity    string `yaml:"severity"`
	Message     string `yaml:"message"`
	Remediation string `yaml:"remediation"`
}

// RulesFile is the YAML schema root for ~/.asknix/guardrail.yaml.
type RulesFile struct {
	Rules struct {
		AllowedExecutables []string        `yaml:"allowed_executables"`
		DangerPatterns     []DangerPattern `yaml:"danger_patterns"`
	} `yaml:"rules"`
}

// Policy is the immutable validation configuration, constructed once at
// startup and passed by reference into the validator.
type Policy struct {
	AllowedExecutables map[string]bool
	Patterns           []CompiledPattern
	MaxInputLength     int
}

// CompiledPattern pairs a compiled regex with its rule metadata.
type CompiledPattern struct {
	Re   *regexp.Regexp
	Rule DangerPattern
}

// LoadPolicy reads guardrail rules from disk, falling back to the compiled
// defaults when the file is missing or empty.
func LoadPolicy(path string) (*Policy, error) {
	rules, err := loadRules(path)
	if err != nil {
		return nil, err
	}

	policy := &Policy{
		AllowedExecutables: make(map[string]bool, len(rules.Rules.AllowedExecutables)),
		MaxInputLength:     500,
	}
	for _, exe := range rules.Rules.AllowedExecutables {
		policy.AllowedExecutables[exe] = true
	}
	for _, pattern := range rules.Rules.DangerPatterns {
		re, err := regexp.Compile(pattern.Pattern)
		if err != nil {
			return nil, err
		}
		policy.Patterns = append(policy.Patterns, CompiledPattern{Re: re, Rule: pattern})
	}
	return policy, nil
}

func loadRules(path string) (RulesFile, error) {
	var rules RulesFile
	path = expandPath(path)
	data, err := os.ReadFile(path)
	if err != nil {
		// No user file: use the embedded default rule set, with the
		// compiled table as a last resort.
		if yaml.Unmarshal(assets.GuardrailDefaults, &rules) != nil || len(rules.Rules.DangerPatterns) == 0 {
			rules.Rules.AllowedExecutables = defaultAllowedExecutables()
			rules.Rules.DangerPatterns = defaultPatterns()
		}
		return rules, nil
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return RulesFile{}, err
	}
	if len(rules.Rules.DangerPatterns) == 0 {
		rules.Rules.DangerPatterns = defaultPatterns()
	}
	if len(rules.Rules.AllowedExecutables) == 0 {
		rules.Rules.AllowedExecutables = defaultAllowedExecutables()
	}
	return rules, nil
}

func parseSeverity(value string) domain.Severity {
	switch strings.ToLower(value) {
	case "low":
		return domain.SeverityLow
	case "medium":
		return domain.SeverityMedium
	case "high":
		return domain.SeverityHigh
	case "critical":
		return domain.SeverityCritical
	default:
		return domain.SeverityMedium
	}
}

func parseCategory(value string) domain.ViolationCategory {
	switch strings.ToLower(value) {
	case "injection":
		return domain.CategoryInjection
	case "path_traversal":
		return domain.CategoryPathTraversal
	case "privilege_escalation":
		return domain.CategoryPrivilege
	case "data_exposure":
		return domain.CategoryDataExposure
	default:
		return domain.CategoryInjection
	}
}

func expandPath(path string) string {
	if path == "" {
		return filepath.Join(userHomeDir(), ".asknix", "guardrail.yaml")
	}
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return filepath.Join(userHomeDir(), path)
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

func defaultAllowedExecutables() []string {
	return []string{"nix", "nix-env", "nix-collect-garbage"}
}

func defaultPatterns() []DangerPattern {
	return []DangerPattern{
		{Pattern: `[;&|]\s*\S`, Category: "injection", Severity: "high", Message: "Command chaining", Remediation: "Describe one action at a time, without shell separators"},
		{Pattern: "`[^`]*`", Category: "injection", Severity: "high", Message: "Backtick command substitution", Remediation: "Remove backticks from the request"},
		{Pattern: `\$\([^)]*\)`, Category: "injection", Severity: "high", Message: "Command substitution", Remediation: "Remove $(...) from the request"},
		{Pattern: `rm\s+-[a-z]*rf?\s+/`, Category: "injection", Severity: "critical", Message: "Recursive delete from root", Remediation: "This tool never deletes system directories"},
		{Pattern: `dd\s+if=`, Category: "injection", Severity: "critical", Message: "Raw disk write", Remediation: "Disk imaging is outside this tool's scope"},
		{Pattern: `mkfs\.`, Category: "injection", Severity: "critical", Message: "Filesystem format", Remediation: "Formatting disks is outside this tool's scope"},
		{Pattern: `:\(\)\s*\{\s*:\|:&\s*\}\s*;:`, Category: "injection", Severity: "critical", Message: "Fork bomb", Remediation: "Nothing to fix, this input is rejected outright"},
		{Pattern: `\.\./`, Category: "path_traversal", Severity: "high", Message: "Path traversal", Remediation: "Use package names, not file paths"},
		{Pattern: `/etc/(passwd|shadow|sudoers)`, Category: "path_traversal", Severity: "high", Message: "Sensitive system file", Remediation: "System files cannot be targeted here"},
		{Pattern: `sudo\s+(-i|su|bash|sh)\b`, Category: "privilege_escalation", Severity: "critical", Message: "Interactive privilege escalation", Remediation: "Run the tool without sudo, it will ask when elevation is needed"},
		{Pattern: `curl[^|]*\|\s*(sudo\s+)?(ba)?sh`, Category: "privilege_escalation", Severity: "critical", Message: "Piping remote script to shell", Remediation: "Install software through the package manager instead"},
		{Pattern: `\bnc\s+-[lw]`, Category: "data_exposure", Severity: "high", Message: "Netcat listener or pipe", Remediation: "Network tools cannot be driven from here"},
		{Pattern: `curl\s+.*(-d|--data)`, Category: "data_exposure", Severity: "high", Message: "Outbound data post", Remediation: "This tool makes no network uploads"},
		{Pattern: `\bscp\s+`, Category: "data_exposure", Severity: "medium", Message: "File transfer command", Remediation: "Transfers cannot be driven from here"},
	}
}
