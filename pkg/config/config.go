// Package config holds the validation configuration and the rule-enablement
// filter. A LintConfig is loaded once per invocation and read-only
// thereafter, so it is safe to share across parallel validation tasks.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/agentlint/agentlint/pkg/diagnostic"
)

// ConfigFileName is the project-local configuration file the loader picks up.
const ConfigFileName = ".agentlint.json"

// envPrefix scopes environment overrides, e.g. AGENTLINT_TARGET=cursor.
const envPrefix = "AGENTLINT_"

// Target selects which tool-specific rule families apply.
type Target string

const (
	TargetGeneric    Target = "generic"
	TargetClaudeCode Target = "claude-code"
	TargetCursor     Target = "cursor"
	TargetCodex      Target = "codex"
)

// Categories toggles whole families of rules.
type Categories struct {
	Skills        bool `koanf:"skills"`
	Hooks         bool `koanf:"hooks"`
	Agents        bool `koanf:"agents"`
	Memory        bool `koanf:"memory"`
	Plugins       bool `koanf:"plugins"`
	XML           bool `koanf:"xml"`
	MCP           bool `koanf:"mcp"`
	Imports       bool `koanf:"imports"`
	CrossPlatform bool `koanf:"cross_platform"`
	Secrets       bool `koanf:"secrets"`
}

// LintConfig is the full validation configuration.
type LintConfig struct {
	// MinSeverity is the least severe level to report: "error", "warning"
	// or "info".
	MinSeverity string     `koanf:"min_severity"`
	Categories  Categories `koanf:"categories"`
	// DisabledRules lists rule ids disabled regardless of category or
	// target.
	DisabledRules []string `koanf:"disabled_rules"`
	Target        Target   `koanf:"target"`
	// ExcludeGlobs are doublestar patterns matched against project-relative
	// paths during the walk.
	ExcludeGlobs []string `koanf:"exclude"`
	// MaxFileSize caps readable file size in bytes (0 = lintfs default).
	MaxFileSize int64 `koanf:"max_file_size"`

	disabled map[string]bool
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"min_severity":              "info",
		"target":                    string(TargetGeneric),
		"categories.skills":         true,
		"categories.hooks":          true,
		"categories.agents":         true,
		"categories.memory":         true,
		"categories.plugins":        true,
		"categories.xml":            true,
		"categories.mcp":            true,
		"categories.imports":        true,
		"categories.cross_platform": true,
		"categories.secrets":        true,
	}
}

// Default returns the configuration used when no config file exists: all
// categories on, generic target, info threshold.
func Default() *LintConfig {
	cfg, err := load("")
	if err != nil {
		// Defaults cannot fail to unmarshal; keep the signature simple.
		panic(fmt.Sprintf("config: defaults failed to load: %v", err))
	}
	return cfg
}

// Load reads <projectRoot>/.agentlint.json layered over defaults, then
// applies AGENTLINT_* environment overrides. A missing file is not an error.
func Load(projectRoot string) (*LintConfig, error) {
	path := ""
	if projectRoot != "" {
		candidate := filepath.Join(projectRoot, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}
	return load(path)
}

func load(path string) (*LintConfig, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), kjson.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
			key = strings.ReplaceAll(key, "__", ".")
			return key, value
		},
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg LintConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.disabled = make(map[string]bool, len(cfg.DisabledRules))
	for _, id := range cfg.DisabledRules {
		cfg.disabled[id] = true
	}
	return &cfg, nil
}

// Threshold returns the minimum severity as a diagnostic.Severity.
func (c *LintConfig) Threshold() diagnostic.Severity {
	sev, ok := diagnostic.ParseSeverity(c.MinSeverity)
	if !ok {
		return diagnostic.SeverityInfo
	}
	return sev
}
