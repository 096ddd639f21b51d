package fixer

import (
	"testing"

	"github.com/agentlint/agentlint/pkg/diagnostic"
	"github.com/agentlint/agentlint/pkg/lintfs"
)

func diagWithFixes(path string, fixes ...diagnostic.Fix) diagnostic.Diagnostic {
	d := diagnostic.New(diagnostic.SeverityInfo, "T-001", path, "test", 1, 1)
	for _, f := range fixes {
		d = d.WithFix(f)
	}
	return d
}

func mustApply(t *testing.T, files map[string]string, diags []diagnostic.Diagnostic, opts Options) ([]FixResult, *lintfs.MemFS) {
	t.Helper()
	fsys := lintfs.NewMemFS(files)
	results, err := Apply(diags, opts, fsys)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	return results, fsys
}

func TestApplySingleReplacement(t *testing.T) {
	diags := []diagnostic.Diagnostic{diagWithFixes("f.md", diagnostic.Fix{
		Start: 6, End: 11, Replacement: "there", Description: "replace word", Safe: true,
	})}
	results, fsys := mustApply(t, map[string]string{"f.md": "hello world"}, diags, Options{})

	if len(results) != 1 {
		t.Fatalf("want 1 result, got %d", len(results))
	}
	if results[0].Fixed != "hello there" {
		t.Errorf("fixed = %q", results[0].Fixed)
	}
	data, _ := fsys.ReadFile("f.md")
	if string(data) != "hello there" {
		t.Errorf("file not written: %q", data)
	}
}

func TestApplyOverlapKeepsFirstBySortOrder(t *testing.T) {
	diags := []diagnostic.Diagnostic{diagWithFixes("f.md",
		diagnostic.Fix{Start: 6, End: 11, Replacement: "universe", Description: "late span", Safe: true},
		diagnostic.Fix{Start: 4, End: 8, Replacement: "X", Description: "early span", Safe: true},
	)}
	results, _ := mustApply(t, map[string]string{"f.md": "hello world"}, diags, Options{})

	if len(results) != 1 {
		t.Fatalf("want 1 result, got %d", len(results))
	}
	if results[0].Fixed != "hello universe" {
		t.Errorf("fixed = %q, want %q", results[0].Fixed, "hello universe")
	}
	if len(results[0].Applied) != 1 || results[0].Applied[0] != "late span" {
		t.Errorf("applied = %v", results[0].Applied)
	}
}

func TestApplyMultipleDisjointFixes(t *testing.T) {
	// Deletion, replacement and insertion in one file; offsets all refer to
	// the original content.
	content := "aa BB cc"
	diags := []diagnostic.Diagnostic{diagWithFixes("f.md",
		diagnostic.Fix{Start: 0, End: 3, Replacement: "", Description: "drop prefix", Safe: true},
		diagnostic.Fix{Start: 3, End: 5, Replacement: "bb", Description: "lowercase", Safe: true},
		diagnostic.Fix{Start: 8, End: 8, Replacement: "!", Description: "append bang", Safe: true},
	)}
	results, _ := mustApply(t, map[string]string{"f.md": content}, diags, Options{})

	if len(results) != 1 {
		t.Fatalf("want 1 result, got %d", len(results))
	}
	if results[0].Fixed != "bb cc!" {
		t.Errorf("fixed = %q", results[0].Fixed)
	}
	want := []string{"drop prefix", "lowercase", "append bang"}
	if len(results[0].Applied) != len(want) {
		t.Fatalf("applied = %v", results[0].Applied)
	}
	for i, desc := range want {
		if results[0].Applied[i] != desc {
			t.Errorf("applied[%d] = %q, want %q (descriptions must read left to right)", i, results[0].Applied[i], desc)
		}
	}
}

func TestApplyDryRunLeavesFileUntouched(t *testing.T) {
	diags := []diagnostic.Diagnostic{diagWithFixes("f.md", diagnostic.Fix{
		Start: 0, End: 5, Replacement: "howdy", Description: "greet", Safe: true,
	})}
	results, fsys := mustApply(t, map[string]string{"f.md": "hello"}, diags, Options{DryRun: true})

	if len(results) != 1 || results[0].Fixed != "howdy" {
		t.Fatalf("dry run should still report the fix: %+v", results)
	}
	data, _ := fsys.ReadFile("f.md")
	if string(data) != "hello" {
		t.Errorf("dry run wrote to the file: %q", data)
	}
}

func TestApplySafeOnlyDropsUnsafeFixes(t *testing.T) {
	diags := []diagnostic.Diagnostic{diagWithFixes("f.md",
		diagnostic.Fix{Start: 0, End: 2, Replacement: "xx", Description: "unsafe rewrite", Safe: false},
	)}
	results, fsys := mustApply(t, map[string]string{"f.md": "ab"}, diags, Options{SafeOnly: true})

	// The unsafe fix is neither applied nor reported.
	if len(results) != 0 {
		t.Errorf("unsafe fix surfaced under SafeOnly: %+v", results)
	}
	data, _ := fsys.ReadFile("f.md")
	if string(data) != "ab" {
		t.Errorf("unsafe fix written: %q", data)
	}
}

func TestApplyOutOfRangeAndInvertedSpansSkipped(t *testing.T) {
	diags := []diagnostic.Diagnostic{diagWithFixes("f.md",
		diagnostic.Fix{Start: -1, End: 2, Replacement: "x", Description: "negative"},
		diagnostic.Fix{Start: 0, End: 99, Replacement: "x", Description: "past end"},
		diagnostic.Fix{Start: 3, End: 1, Replacement: "x", Description: "inverted"},
	)}
	results, fsys := mustApply(t, map[string]string{"f.md": "abcd"}, diags, Options{})

	if len(results) != 0 {
		t.Errorf("invalid spans produced results: %+v", results)
	}
	data, _ := fsys.ReadFile("f.md")
	if string(data) != "abcd" {
		t.Errorf("file modified: %q", data)
	}
}

func TestApplySkipsRuneSplittingFix(t *testing.T) {
	// "héllo": é is two bytes (0xC3 0xA9), so offset 2 is mid-rune.
	diags := []diagnostic.Diagnostic{diagWithFixes("f.md",
		diagnostic.Fix{Start: 2, End: 3, Replacement: "x", Description: "splits rune"},
	)}
	results, _ := mustApply(t, map[string]string{"f.md": "héllo"}, diags, Options{})
	if len(results) != 0 {
		t.Errorf("mid-rune fix applied: %+v", results)
	}
}

func TestApplyGroupsAcrossFilesDeterministically(t *testing.T) {
	diags := []diagnostic.Diagnostic{
		diagWithFixes("b.md", diagnostic.Fix{Start: 0, End: 1, Replacement: "B", Description: "b"}),
		diagWithFixes("a.md", diagnostic.Fix{Start: 0, End: 1, Replacement: "A", Description: "a"}),
	}
	results, _ := mustApply(t, map[string]string{"a.md": "x", "b.md": "y"}, diags, Options{})

	if len(results) != 2 {
		t.Fatalf("want 2 results, got %d", len(results))
	}
	if results[0].Path != "a.md" || results[1].Path != "b.md" {
		t.Errorf("results not in path order: %s, %s", results[0].Path, results[1].Path)
	}
}

func TestApplyUnreadableFileFails(t *testing.T) {
	diags := []diagnostic.Diagnostic{diagWithFixes("ghost.md", diagnostic.Fix{
		Start: 0, End: 1, Replacement: "x", Description: "d",
	})}
	if _, err := Apply(diags, Options{}, lintfs.NewMemFS(nil)); err == nil {
		t.Fatal("missing file at apply time must be an error")
	}
}

func TestApplyNoOpFixProducesNoResult(t *testing.T) {
	diags := []diagnostic.Diagnostic{diagWithFixes("f.md", diagnostic.Fix{
		Start: 0, End: 5, Replacement: "hello", Description: "identity",
	})}
	results, _ := mustApply(t, map[string]string{"f.md": "hello"}, diags, Options{})
	if len(results) != 0 {
		t.Errorf("unchanged content reported: %+v", results)
	}
}
