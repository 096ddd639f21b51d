package rules

import (
	"encoding/json"
	"fmt"

	"github.com/agentlint/agentlint/pkg/config"
	"github.com/agentlint/agentlint/pkg/diagnostic"
)

// CheckPlugin validates a plugin.json manifest: JSON well-formedness and a
// non-empty plugin name.
func CheckPlugin(path string, content []byte, cfg *config.LintConfig) []diagnostic.Diagnostic {
	if !cfg.IsRuleEnabled("CC-PL-001") {
		return nil
	}

	var manifest struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(content, &manifest); err != nil {
		return []diagnostic.Diagnostic{diagnostic.New(
			diagnostic.SeverityError, "CC-PL-001", path,
			fmt.Sprintf("plugin manifest is not valid JSON: %v", err), 1, 1,
		)}
	}
	if manifest.Name == "" {
		return []diagnostic.Diagnostic{diagnostic.New(
			diagnostic.SeverityError, "CC-PL-001", path,
			"plugin manifest is missing the name field", 1, 1,
		)}
	}
	return nil
}
