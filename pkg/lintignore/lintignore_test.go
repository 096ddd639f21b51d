package lintignore

import (
	"os"
	"path/filepath"
	"testing"
)

func writeIgnoreFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func TestBuiltinDefaults(t *testing.T) {
	m := NewFromDefaults()

	if !m.ShouldIgnoreDir("node_modules") {
		t.Error("node_modules should be ignored by default")
	}
	if !m.ShouldIgnoreDir("packages/app/node_modules") {
		t.Error("nested node_modules should be ignored")
	}
	if !m.ShouldIgnoreDir(".git") {
		t.Error(".git should be ignored by default")
	}
	if m.ShouldIgnoreDir(".claude") {
		t.Error(".claude must never be ignored by defaults")
	}
	if m.ShouldIgnoreFile("CLAUDE.md") {
		t.Error("CLAUDE.md must never be ignored by defaults")
	}
	// Directory-only patterns do not match same-named files.
	if m.ShouldIgnoreFile("vendor") {
		t.Error("a file named vendor should not match the vendor/ pattern")
	}
}

func TestFileUnderIgnoredDirectory(t *testing.T) {
	m := NewFromDefaults()
	if !m.ShouldIgnoreFile("node_modules/pkg/CLAUDE.md") {
		t.Error("files under ignored directories should be ignored")
	}
}

func TestNegationOverridesEarlierRule(t *testing.T) {
	dir := t.TempDir()
	writeIgnoreFile(t, dir, ".gitignore", "*.md\n")
	writeIgnoreFile(t, dir, ".agentlintignore", "!CLAUDE.md\n")

	m, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if m.ShouldIgnoreFile("CLAUDE.md") {
		t.Error("later negation should win over earlier ignore")
	}
	if !m.ShouldIgnoreFile("README.md") {
		t.Error("non-negated markdown should stay ignored")
	}
}

func TestLastMatchWinsWithinOneFile(t *testing.T) {
	dir := t.TempDir()
	writeIgnoreFile(t, dir, ".agentlintignore", "docs/\n!docs/\ndrafts/\n")

	m, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if m.ShouldIgnoreDir("docs") {
		t.Error("negation listed after the ignore should win")
	}
	if !m.ShouldIgnoreDir("drafts") {
		t.Error("unrelated later rule should still apply")
	}
}

func TestAnchoredAndPathPatterns(t *testing.T) {
	dir := t.TempDir()
	writeIgnoreFile(t, dir, ".agentlintignore", "/rootonly\nsub/generated\n")

	m, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !m.ShouldIgnoreFile("rootonly") {
		t.Error("anchored pattern should match at root")
	}
	if m.ShouldIgnoreFile("nested/rootonly") {
		t.Error("anchored pattern must not match below root")
	}
	if !m.ShouldIgnoreFile("sub/generated") {
		t.Error("pattern with a slash should match its exact path")
	}
	if m.ShouldIgnoreFile("other/sub/generated") {
		t.Error("pattern with a slash is root-anchored")
	}
}

func TestCommentsAndBlankLines(t *testing.T) {
	dir := t.TempDir()
	writeIgnoreFile(t, dir, ".gitignore", "# build output\n\n*.bak\n")

	m, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !m.ShouldIgnoreFile("old.bak") {
		t.Error("*.bak should be ignored")
	}
	if m.ShouldIgnoreFile("# build output") {
		t.Error("comment line treated as a pattern")
	}
}

func TestMissingIgnoreFilesAreFine(t *testing.T) {
	m, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New without ignore files: %v", err)
	}
	if !m.ShouldIgnoreDir("node_modules") {
		t.Error("defaults should still apply")
	}
}

func TestNewEmptyIgnoresNothing(t *testing.T) {
	m := NewEmpty()
	if m.ShouldIgnoreDir("node_modules") || m.ShouldIgnoreFile(".DS_Store") {
		t.Error("empty matcher should ignore nothing")
	}
}

func TestRootPathIsNeverIgnored(t *testing.T) {
	m := NewFromDefaults()
	if m.ShouldIgnoreDir(".") || m.ShouldIgnoreDir("") {
		t.Error("the project root itself must never be ignored")
	}
}
