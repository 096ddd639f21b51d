package rules

import (
	"path/filepath"
	"strings"
)

// pluginMarkerSuffix marks directories that hold a plugin manifest. Both
// ".claude-plugin" and "foo-plugin" end with it.
const pluginMarkerSuffix = "-plugin"

// DetectFileType classifies a path by its file name and its one or two
// nearest ancestor directory names. Pure function: no file content, no I/O.
//
// Exact filename matches win over directory-context rules; a plugin.json
// counts as a plugin manifest only under a plugin-marker directory; a *.md
// file counts as an agent definition only under a directory literally named
// "agents"; any other *.md is generic markdown; everything else is unknown.
func DetectFileType(path string) FileType {
	name := filepath.Base(path)
	dir := filepath.Dir(path)
	parent := filepath.Base(dir)
	grandparent := filepath.Base(filepath.Dir(dir))

	switch name {
	case "SKILL.md":
		return FileTypeSkill
	case "CLAUDE.md", "AGENTS.md":
		return FileTypeClaudeMd
	case "settings.json", "settings.local.json":
		return FileTypeSettings
	case ".mcp.json":
		return FileTypeMCPConfig
	case "plugin.json":
		if strings.HasSuffix(parent, pluginMarkerSuffix) {
			return FileTypePluginManifest
		}
		return FileTypeUnknown
	}

	if strings.HasSuffix(name, ".md") {
		if parent == "agents" || grandparent == "agents" {
			return FileTypeAgent
		}
		return FileTypeMarkdown
	}

	return FileTypeUnknown
}

// Table maps a file type to the ordered checkers that run against it.
type Table map[FileType][]Checker

// DefaultTable returns the built-in checker table. FileTypeUnknown has no
// entry: unknown files are never read.
func DefaultTable() Table {
	return Table{
		FileTypeSkill: {
			CheckFunc(CheckSkill),
			CheckFunc(CheckXML),
			CheckFunc(CheckCrossPlatform),
			CheckFunc(CheckSecrets),
		},
		FileTypeClaudeMd: {
			CheckFunc(CheckMemory),
			CheckFunc(CheckXML),
			CheckFunc(CheckCrossPlatform),
			CheckFunc(CheckSecrets),
		},
		FileTypeAgent: {
			CheckFunc(CheckAgent),
			CheckFunc(CheckXML),
			CheckFunc(CheckSecrets),
		},
		FileTypeSettings: {
			CheckFunc(CheckSettings),
			CheckFunc(CheckSecrets),
		},
		FileTypeMCPConfig: {
			CheckFunc(CheckMCP),
			CheckFunc(CheckSecrets),
		},
		FileTypePluginManifest: {
			CheckFunc(CheckPlugin),
			CheckFunc(CheckSecrets),
		},
		FileTypeMarkdown: {
			CheckFunc(CheckXML),
			CheckFunc(CheckCrossPlatform),
		},
	}
}

// CheckersFor returns the ordered checkers for a file type. Unknown types
// yield nil, which short-circuits validation without reading the file.
func (t Table) CheckersFor(ft FileType) []Checker {
	return t[ft]
}

// Append registers an extra checker for a file type, after the built-ins.
func (t Table) Append(ft FileType, c Checker) {
	t[ft] = append(t[ft], c)
}
