// Package rules classifies artifact files and holds the rule checkers that
// run against them.
package rules

import (
	"github.com/agentlint/agentlint/pkg/config"
	"github.com/agentlint/agentlint/pkg/diagnostic"
)

// FileType tags a path with the kind of agent artifact it holds.
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeSkill
	FileTypeClaudeMd
	FileTypeAgent
	FileTypeSettings
	FileTypeMCPConfig
	FileTypePluginManifest
	FileTypeMarkdown
)

func (t FileType) String() string {
	switch t {
	case FileTypeSkill:
		return "skill"
	case FileTypeClaudeMd:
		return "memory"
	case FileTypeAgent:
		return "agent"
	case FileTypeSettings:
		return "settings"
	case FileTypeMCPConfig:
		return "mcp"
	case FileTypePluginManifest:
		return "plugin"
	case FileTypeMarkdown:
		return "markdown"
	default:
		return "unknown"
	}
}

// Checker runs one rule family against a file. Checkers must not mutate
// shared state and must be safe to invoke concurrently across files.
type Checker interface {
	Check(path string, content []byte, cfg *config.LintConfig) []diagnostic.Diagnostic
}

// CheckFunc adapts a plain function to the Checker interface.
type CheckFunc func(path string, content []byte, cfg *config.LintConfig) []diagnostic.Diagnostic

func (f CheckFunc) Check(path string, content []byte, cfg *config.LintConfig) []diagnostic.Diagnostic {
	return f(path, content, cfg)
}
