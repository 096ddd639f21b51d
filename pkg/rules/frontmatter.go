package rules

import "strings"

// frontmatter holds the scalar key/value pairs of a markdown frontmatter
// block. The rule checks here only need top-level scalars; nested YAML is
// out of scope for this parser and such lines are skipped.
type frontmatter struct {
	fields map[string]string
	lines  map[string]int // 1-indexed line of each key
	// endLine is the 1-indexed line of the closing fence.
	endLine int
}

// parseFrontmatter extracts the leading "---" fenced block. ok is false when
// the content does not open with a fence or the fence never closes.
func parseFrontmatter(content []byte) (fm frontmatter, ok bool) {
	lines := strings.Split(string(content), "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r") != "---" {
		return fm, false
	}

	fm.fields = make(map[string]string)
	fm.lines = make(map[string]int)

	for i := 1; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], "\r")
		if line == "---" {
			fm.endLine = i + 1
			return fm, true
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// Top-level scalars only: indented lines belong to nested values.
		if line[0] == ' ' || line[0] == '\t' {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		value = strings.Trim(value, `"'`)
		if key != "" {
			fm.fields[key] = value
			fm.lines[key] = i + 1
		}
	}

	return fm, false
}

func (fm frontmatter) get(key string) (string, bool) {
	v, ok := fm.fields[key]
	return v, ok
}

func (fm frontmatter) line(key string) int {
	if l, ok := fm.lines[key]; ok {
		return l
	}
	return 1
}
