// Package diagnostic defines the shared value types produced by rule
// checkers and consumed by the fix engine and external formatters.
package diagnostic

// Severity of a diagnostic. Error sorts before Warning, Warning before Info.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

// String returns the lowercase severity name used in output and storage.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a severity name back to a Severity.
// Unknown values return SeverityInfo and false.
func ParseSeverity(name string) (Severity, bool) {
	switch name {
	case "error":
		return SeverityError, true
	case "warning":
		return SeverityWarning, true
	case "info":
		return SeverityInfo, true
	default:
		return SeverityInfo, false
	}
}

// Fix is a single text edit attached to a diagnostic: a half-open byte range
// [Start, End) into the original file content plus a replacement string.
// Start == End denotes an insertion; a non-empty range with an empty
// replacement denotes a deletion. Offsets are only meaningful against the
// exact content snapshot the diagnostic was computed from.
type Fix struct {
	Start       int    `json:"start"`
	End         int    `json:"end"`
	Replacement string `json:"replacement"`
	Description string `json:"description"`
	// Safe is true only when the edit is unambiguous enough for unattended
	// application.
	Safe bool `json:"safe"`
}

// Diagnostic represents a single reported issue in a validated file.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	FilePath string   `json:"file"`
	Line     int      `json:"line"`   // 1-indexed; 0 means unknown, clamp before emitting
	Column   int      `json:"column"` // 1-indexed; 0 means unknown
	RuleID   string   `json:"ruleId"`
	// Suggestion is an optional human-readable remediation hint.
	Suggestion string `json:"suggestion,omitempty"`
	Fixes      []Fix  `json:"fixes,omitempty"`
	// Assumption notes when the rule's behavior depends on an unpinned
	// tool or spec version.
	Assumption string `json:"assumption,omitempty"`
}

// New creates a diagnostic. Line and column are 1-indexed; pass 0 when the
// location is unknown.
func New(sev Severity, ruleID, filePath, message string, line, col int) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Message:  message,
		FilePath: filePath,
		Line:     line,
		Column:   col,
		RuleID:   ruleID,
	}
}

// WithSuggestion attaches a remediation hint. Builder-style, used at
// creation time only; diagnostics placed in a result slice are never mutated.
func (d Diagnostic) WithSuggestion(s string) Diagnostic {
	d.Suggestion = s
	return d
}

// WithFix appends a fix.
func (d Diagnostic) WithFix(f Fix) Diagnostic {
	fixes := make([]Fix, 0, len(d.Fixes)+1)
	fixes = append(fixes, d.Fixes...)
	fixes = append(fixes, f)
	d.Fixes = fixes
	return d
}

// WithAssumption records the version assumption the rule was evaluated under.
func (d Diagnostic) WithAssumption(a string) Diagnostic {
	d.Assumption = a
	return d
}

// Less orders diagnostics by (severity, file path, line, rule id). This is
// the canonical output order of a project validation run.
func Less(a, b Diagnostic) bool {
	if a.Severity != b.Severity {
		return a.Severity < b.Severity
	}
	if a.FilePath != b.FilePath {
		return a.FilePath < b.FilePath
	}
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.RuleID < b.RuleID
}
