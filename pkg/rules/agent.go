package rules

import (
	"github.com/agentlint/agentlint/pkg/config"
	"github.com/agentlint/agentlint/pkg/diagnostic"
)

// CheckAgent validates agent definition markdown: frontmatter with a name
// and a description the dispatcher can route on.
func CheckAgent(path string, content []byte, cfg *config.LintConfig) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic

	fm, ok := parseFrontmatter(content)
	if !ok {
		if cfg.IsRuleEnabled("CC-AG-001") {
			diags = append(diags, diagnostic.New(
				diagnostic.SeverityError, "CC-AG-001", path,
				"agent definition has no frontmatter block", 1, 1,
			))
		}
		return diags
	}

	if cfg.IsRuleEnabled("CC-AG-001") {
		if name, present := fm.get("name"); !present || name == "" {
			diags = append(diags, diagnostic.New(
				diagnostic.SeverityError, "CC-AG-001", path,
				"agent definition is missing the name field", 1, 1,
			))
		}
	}

	if cfg.IsRuleEnabled("CC-AG-002") {
		if desc, present := fm.get("description"); !present || desc == "" {
			diags = append(diags, diagnostic.New(
				diagnostic.SeverityWarning, "CC-AG-002", path,
				"agent definition is missing the description field", 1, 1,
			).WithSuggestion("the description tells the orchestrator when to delegate to this agent"))
		}
	}

	return diags
}
