package rules

import (
	"fmt"
	"regexp"

	"github.com/agentlint/agentlint/pkg/config"
	"github.com/agentlint/agentlint/pkg/diagnostic"
)

// Limits imposed on SKILL.md manifests.
const (
	maxSkillNameLen        = 64
	maxSkillDescriptionLen = 1024
)

var skillNameRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// CheckSkill validates a SKILL.md manifest: frontmatter presence, a
// well-formed name, and a bounded description.
func CheckSkill(path string, content []byte, cfg *config.LintConfig) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic

	fm, ok := parseFrontmatter(content)
	if !ok {
		if cfg.IsRuleEnabled("CC-SK-001") {
			diags = append(diags, diagnostic.New(
				diagnostic.SeverityError, "CC-SK-001", path,
				"skill manifest has no frontmatter block", 1, 1,
			).WithSuggestion("start the file with a '---' fenced frontmatter block containing name and description"))
		}
		return diags
	}

	if cfg.IsRuleEnabled("CC-SK-002") {
		name, present := fm.get("name")
		switch {
		case !present || name == "":
			diags = append(diags, diagnostic.New(
				diagnostic.SeverityError, "CC-SK-002", path,
				"skill manifest is missing the name field", 1, 1,
			))
		case len(name) > maxSkillNameLen:
			diags = append(diags, diagnostic.New(
				diagnostic.SeverityError, "CC-SK-002", path,
				fmt.Sprintf("skill name exceeds %d characters", maxSkillNameLen),
				fm.line("name"), 1,
			))
		case !skillNameRe.MatchString(name):
			diags = append(diags, diagnostic.New(
				diagnostic.SeverityError, "CC-SK-002", path,
				fmt.Sprintf("skill name %q must be lowercase letters, digits and hyphens", name),
				fm.line("name"), 1,
			).WithSuggestion("use a name like 'commit-helper'"))
		}
	}

	if cfg.IsRuleEnabled("CC-SK-003") {
		desc, present := fm.get("description")
		switch {
		case !present || desc == "":
			diags = append(diags, diagnostic.New(
				diagnostic.SeverityError, "CC-SK-003", path,
				"skill manifest is missing the description field", 1, 1,
			).WithSuggestion("describe when the skill should be used; the model selects skills by description"))
		case len(desc) > maxSkillDescriptionLen:
			diags = append(diags, diagnostic.New(
				diagnostic.SeverityWarning, "CC-SK-003", path,
				fmt.Sprintf("skill description exceeds %d characters", maxSkillDescriptionLen),
				fm.line("description"), 1,
			))
		}
	}

	return diags
}
