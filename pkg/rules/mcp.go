package rules

import (
	"encoding/json"
	"fmt"

	"github.com/agentlint/agentlint/pkg/config"
	"github.com/agentlint/agentlint/pkg/diagnostic"
)

// CheckMCP validates .mcp.json tool descriptors: JSON well-formedness and a
// command or URL per declared server.
func CheckMCP(path string, content []byte, cfg *config.LintConfig) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic

	var root struct {
		MCPServers map[string]struct {
			Command string `json:"command"`
			URL     string `json:"url"`
			Type    string `json:"type"`
		} `json:"mcpServers"`
	}
	if err := json.Unmarshal(content, &root); err != nil {
		if cfg.IsRuleEnabled("CC-MCP-001") {
			diags = append(diags, diagnostic.New(
				diagnostic.SeverityError, "CC-MCP-001", path,
				fmt.Sprintf("MCP descriptor is not valid JSON: %v", err), 1, 1,
			))
		}
		return diags
	}

	if !cfg.IsRuleEnabled("CC-MCP-002") {
		return diags
	}

	for name, server := range root.MCPServers {
		if server.Command == "" && server.URL == "" {
			diags = append(diags, diagnostic.New(
				diagnostic.SeverityError, "CC-MCP-002", path,
				fmt.Sprintf("MCP server %q declares neither a command nor a url", name), 1, 1,
			).WithSuggestion("stdio servers need a command; remote servers need a url"))
		}
	}

	return diags
}
