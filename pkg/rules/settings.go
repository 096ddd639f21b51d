package rules

import (
	"encoding/json"
	"fmt"

	"github.com/agentlint/agentlint/pkg/config"
	"github.com/agentlint/agentlint/pkg/diagnostic"
)

// knownHookEvents are the lifecycle events a hooks block may subscribe to.
var knownHookEvents = map[string]bool{
	"PreToolUse":       true,
	"PostToolUse":      true,
	"Notification":     true,
	"UserPromptSubmit": true,
	"Stop":             true,
	"SubagentStop":     true,
	"PreCompact":       true,
	"SessionStart":     true,
	"SessionEnd":       true,
}

// CheckSettings validates settings.json / settings.local.json: JSON
// well-formedness and the hook event names in any hooks block.
func CheckSettings(path string, content []byte, cfg *config.LintConfig) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic

	var root map[string]json.RawMessage
	if err := json.Unmarshal(content, &root); err != nil {
		if cfg.IsRuleEnabled("CC-HK-001") {
			diags = append(diags, diagnostic.New(
				diagnostic.SeverityError, "CC-HK-001", path,
				fmt.Sprintf("settings file is not valid JSON: %v", err), 1, 1,
			))
		}
		return diags
	}

	hooksRaw, ok := root["hooks"]
	if !ok || !cfg.IsRuleEnabled("CC-HK-002") {
		return diags
	}

	var hooks map[string]json.RawMessage
	if err := json.Unmarshal(hooksRaw, &hooks); err != nil {
		diags = append(diags, diagnostic.New(
			diagnostic.SeverityError, "CC-HK-002", path,
			"hooks must be an object keyed by event name", 1, 1,
		))
		return diags
	}

	for event := range hooks {
		if !knownHookEvents[event] {
			diags = append(diags, diagnostic.New(
				diagnostic.SeverityWarning, "CC-HK-002", path,
				fmt.Sprintf("unknown hook event %q", event), 1, 1,
			).WithSuggestion("check the event name against the documented hook lifecycle").
				WithAssumption("event list as of the current hooks schema; newer tool versions may add events"))
		}
	}

	return diags
}
