package rules

import (
	"fmt"
	"strings"

	"github.com/agentlint/agentlint/pkg/config"
	"github.com/agentlint/agentlint/pkg/diagnostic"
)

// maxMemoryBytes is the point past which a memory file starts crowding the
// context window.
const maxMemoryBytes = 40_000

// CheckMemory validates CLAUDE.md / AGENTS.md memory files: overall size and
// trailing whitespace (with a safe deletion fix per occurrence).
func CheckMemory(path string, content []byte, cfg *config.LintConfig) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic

	if cfg.IsRuleEnabled("CC-MEM-010") && len(content) > maxMemoryBytes {
		diags = append(diags, diagnostic.New(
			diagnostic.SeverityWarning, "CC-MEM-010", path,
			fmt.Sprintf("memory file is %d bytes; files over %d bytes consume excessive context", len(content), maxMemoryBytes),
			1, 1,
		).WithSuggestion("split rarely-needed sections into @imported files"))
	}

	if cfg.IsRuleEnabled("CC-MEM-011") {
		offset := 0
		for lineNo, line := range strings.Split(string(content), "\n") {
			body := strings.TrimSuffix(line, "\r")
			trimmed := strings.TrimRight(body, " \t")
			if len(trimmed) < len(body) {
				start := offset + len(trimmed)
				end := offset + len(body)
				diags = append(diags, diagnostic.New(
					diagnostic.SeverityInfo, "CC-MEM-011", path,
					"line has trailing whitespace", lineNo+1, len(trimmed)+1,
				).WithFix(diagnostic.Fix{
					Start:       start,
					End:         end,
					Replacement: "",
					Description: fmt.Sprintf("remove trailing whitespace on line %d", lineNo+1),
					Safe:        true,
				}))
			}
			offset += len(line) + 1 // +1 for the split '\n'
		}
	}

	return diags
}
