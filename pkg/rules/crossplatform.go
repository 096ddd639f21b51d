package rules

import (
	"regexp"
	"strings"

	"github.com/agentlint/agentlint/pkg/config"
	"github.com/agentlint/agentlint/pkg/diagnostic"
)

// windowsPathRe matches backslash-separated paths like scripts\run.bat or
// C:\Users\x. Escaped characters inside backticks are not paths, so fenced
// inline code is stripped first.
var windowsPathRe = regexp.MustCompile(`(?:[A-Za-z]:)?(?:[\w.-]+\\){1,}[\w.-]+`)

var inlineCodeRe = regexp.MustCompile("`[^`]*`")

// CheckCrossPlatform flags backslash path separators in instruction
// markdown. Agent tooling resolves forward slashes on every platform;
// backslash paths break on anything that is not Windows.
func CheckCrossPlatform(path string, content []byte, cfg *config.LintConfig) []diagnostic.Diagnostic {
	if !cfg.IsRuleEnabled("CC-XP-001") {
		return nil
	}

	var diags []diagnostic.Diagnostic
	inFence := false
	for lineNo, line := range strings.Split(string(content), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		stripped := inlineCodeRe.ReplaceAllString(line, "")
		if loc := windowsPathRe.FindStringIndex(stripped); loc != nil {
			diags = append(diags, diagnostic.New(
				diagnostic.SeverityWarning, "CC-XP-001", path,
				"path uses backslash separators and will not resolve on POSIX systems",
				lineNo+1, loc[0]+1,
			).WithSuggestion("use forward slashes; they work on all platforms"))
		}
	}
	return diags
}
