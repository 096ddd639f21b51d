package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agentlint/agentlint/pkg/config"
	"github.com/agentlint/agentlint/pkg/diagnostic"
)

var xmlTagRe = regexp.MustCompile(`</?([a-zA-Z][a-zA-Z0-9_-]*)>`)

// CheckXML flags unbalanced XML-style tags in markdown bodies. Prompt
// sections fenced with tags like <instructions>...</instructions> lose their
// meaning when a tag never closes.
func CheckXML(path string, content []byte, cfg *config.LintConfig) []diagnostic.Diagnostic {
	if !cfg.IsRuleEnabled("XML-001") {
		return nil
	}

	var diags []diagnostic.Diagnostic
	type open struct {
		name string
		line int
	}
	var stack []open
	inFence := false

	for lineNo, line := range strings.Split(string(content), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		for _, m := range xmlTagRe.FindAllStringSubmatch(line, -1) {
			name := m[1]
			if strings.HasPrefix(m[0], "</") {
				if len(stack) > 0 && stack[len(stack)-1].name == name {
					stack = stack[:len(stack)-1]
					continue
				}
				diags = append(diags, diagnostic.New(
					diagnostic.SeverityWarning, "XML-001", path,
					fmt.Sprintf("closing tag </%s> has no matching opening tag", name),
					lineNo+1, 1,
				))
				continue
			}
			stack = append(stack, open{name: name, line: lineNo + 1})
		}
	}

	for _, o := range stack {
		diags = append(diags, diagnostic.New(
			diagnostic.SeverityWarning, "XML-001", path,
			fmt.Sprintf("tag <%s> is never closed", o.name), o.line, 1,
		))
	}

	return diags
}
