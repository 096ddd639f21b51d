package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agentlint/agentlint/pkg/config"
	"github.com/agentlint/agentlint/pkg/diagnostic"
)

// secretPattern pairs a credential family with its detection regex. The
// families mirror the usual provider buckets (aws, github, slack, ...); no
// live validation is ever attempted.
type secretPattern struct {
	family string
	re     *regexp.Regexp
}

var secretPatterns = []secretPattern{
	{"aws", regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`)},
	{"github", regexp.MustCompile(`\bgh[pousr]_[A-Za-z0-9]{36,}\b`)},
	{"slack", regexp.MustCompile(`\bxox[baprs]-[A-Za-z0-9-]{10,}\b`)},
	{"openai", regexp.MustCompile(`\bsk-[A-Za-z0-9]{20}T3BlbkFJ[A-Za-z0-9]{20}\b`)},
	{"anthropic", regexp.MustCompile(`\bsk-ant-[A-Za-z0-9_-]{32,}\b`)},
	{"private_key", regexp.MustCompile(`-----BEGIN (?:RSA |EC |OPENSSH )?PRIVATE KEY-----`)},
	{"generic", regexp.MustCompile(`(?i)\b(?:api[_-]?key|secret|token|password)\b\s*[:=]\s*["']?[A-Za-z0-9_\-/+]{20,}["']?`)},
}

// CheckSecrets scans artifact files for hardcoded credentials. Agent
// configuration files are routinely committed and shared, so anything that
// looks like a live credential is an error.
func CheckSecrets(path string, content []byte, cfg *config.LintConfig) []diagnostic.Diagnostic {
	if !cfg.IsRuleEnabled("SEC-001") {
		return nil
	}

	var diags []diagnostic.Diagnostic
	for lineNo, line := range strings.Split(string(content), "\n") {
		for _, p := range secretPatterns {
			loc := p.re.FindStringIndex(line)
			if loc == nil {
				continue
			}
			// Placeholder values are the documented way to reference env
			// config; skip them.
			if strings.Contains(line, "${") || strings.Contains(line, "<your") {
				continue
			}
			diags = append(diags, diagnostic.New(
				diagnostic.SeverityError, "SEC-001", path,
				fmt.Sprintf("possible hardcoded %s credential", p.family),
				lineNo+1, loc[0]+1,
			).WithSuggestion("move the value into an environment variable and reference it as ${VAR}"))
			break // one report per line is enough
		}
	}
	return diags
}
