package config

import "strings"

// toolPrefixes maps a rule-id prefix to the tool whose target must be
// selected (or generic) for the family to fire. Rules without any of these
// prefixes are target-independent.
var toolPrefixes = map[string]Target{
	"CC-":  TargetClaudeCode,
	"CUR-": TargetCursor,
	"CDX-": TargetCodex,
}

// categoryOverrides pins individual rule ids to a category when the prefix
// table would misclassify them. The import-graph rules live in the CC-MEM
// family for historical reasons but toggle with the imports category.
var categoryOverrides = map[string]func(*Categories) bool{
	"CC-MEM-001": func(c *Categories) bool { return c.Imports },
	"CC-MEM-002": func(c *Categories) bool { return c.Imports },
	"CC-MEM-003": func(c *Categories) bool { return c.Imports },
}

// categoryPrefixes maps the category segment of a rule id to its toggle.
var categoryPrefixes = map[string]func(*Categories) bool{
	"SK":  func(c *Categories) bool { return c.Skills },
	"HK":  func(c *Categories) bool { return c.Hooks },
	"AG":  func(c *Categories) bool { return c.Agents },
	"MEM": func(c *Categories) bool { return c.Memory },
	"PL":  func(c *Categories) bool { return c.Plugins },
	"XML": func(c *Categories) bool { return c.XML },
	"MCP": func(c *Categories) bool { return c.MCP },
	"IMP": func(c *Categories) bool { return c.Imports },
	"XP":  func(c *Categories) bool { return c.CrossPlatform },
	"SEC": func(c *Categories) bool { return c.Secrets },
}

// IsRuleEnabled reports whether a rule id fires under this configuration.
//
// Evaluation order, first match wins:
//  1. An id on the explicit disabled list is disabled. This beats category
//     and target.
//  2. Tool-prefixed families fire only when the target is generic or the
//     matching tool.
//  3. The category segment of the id selects a category toggle. Ids with an
//     unrecognized segment default to enabled.
func (c *LintConfig) IsRuleEnabled(ruleID string) bool {
	if c.disabled[ruleID] {
		return false
	}

	rest := ruleID
	for prefix, tool := range toolPrefixes {
		if strings.HasPrefix(ruleID, prefix) {
			if c.Target != TargetGeneric && c.Target != tool {
				return false
			}
			rest = strings.TrimPrefix(ruleID, prefix)
			break
		}
	}

	if check, ok := categoryOverrides[ruleID]; ok {
		return check(&c.Categories)
	}

	segment := rest
	if i := strings.IndexByte(rest, '-'); i >= 0 {
		segment = rest[:i]
	}
	if check, ok := categoryPrefixes[segment]; ok {
		return check(&c.Categories)
	}

	// Unrecognized prefix: enabled by default.
	return true
}
