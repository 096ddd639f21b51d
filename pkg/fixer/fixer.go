// Package fixer applies machine-generated fixes attached to diagnostics.
//
// Fixes carry byte offsets into the original file content. The engine
// applies them in strictly descending start-offset order against the
// unmodified original, which keeps every remaining fix's offsets valid
// without recomputing anything after each edit. This ordering is
// correctness-critical: ascending application would corrupt later offsets.
package fixer

import (
	"fmt"
	"log"
	"os"
	"sort"
	"unicode/utf8"

	"github.com/agentlint/agentlint/pkg/diagnostic"
	"github.com/agentlint/agentlint/pkg/lintfs"
)

var fixLog = log.New(os.Stderr, "[agentlint:fix] ", log.Ltime)

// Options selects how fixes are applied.
type Options struct {
	// DryRun computes results without writing anything back.
	DryRun bool
	// SafeOnly drops fixes not marked safe before application.
	SafeOnly bool
}

// FixResult summarises the fixes applied to one file.
type FixResult struct {
	Path     string
	Original string
	Fixed    string
	// Applied lists the descriptions of applied fixes in ascending-position
	// order, even though application ran right to left.
	Applied []string
}

// HasChanges reports whether the fixed content differs from the original.
func (r *FixResult) HasChanges() bool {
	return r.Fixed != r.Original
}

// Apply groups the fixes carried by diags per file, resolves overlaps, and
// returns a FixResult for every file whose content changed. Unless DryRun is
// set, changed content is written back through fsys.
//
// The only failure mode is a file that cannot be read at apply time:
// applying fixes to content that no longer matches the diagnosed snapshot is
// unsafe to skip silently.
func Apply(diags []diagnostic.Diagnostic, opts Options, fsys lintfs.FileSystem) ([]FixResult, error) {
	byFile := make(map[string][]diagnostic.Fix)
	for _, d := range diags {
		for _, f := range d.Fixes {
			if opts.SafeOnly && !f.Safe {
				continue
			}
			byFile[d.FilePath] = append(byFile[d.FilePath], f)
		}
	}

	paths := make([]string, 0, len(byFile))
	for p := range byFile {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var results []FixResult
	for _, path := range paths {
		fixes := byFile[path]
		if len(fixes) == 0 {
			continue
		}

		content, err := fsys.ReadFile(path)
		if err != nil {
			return results, fmt.Errorf("read %s: %w", path, err)
		}

		fixed, applied := applyToContent(content, fixes)
		if len(applied) == 0 || string(fixed) == string(content) {
			continue
		}

		if !opts.DryRun {
			if err := fsys.WriteFile(path, fixed); err != nil {
				return results, fmt.Errorf("write %s: %w", path, err)
			}
		}

		fixLog.Printf("%s: applied %d of %d fixes", path, len(applied), len(fixes))
		results = append(results, FixResult{
			Path:     path,
			Original: string(content),
			Fixed:    string(fixed),
			Applied:  applied,
		})
	}
	return results, nil
}

// applyToContent applies fixes to one file's original content, right to
// left. A fix overlapping an already-applied one, reaching outside the
// content, inverted, or splitting a rune is skipped entirely.
func applyToContent(content []byte, fixes []diagnostic.Fix) ([]byte, []string) {
	sorted := make([]diagnostic.Fix, len(fixes))
	copy(sorted, fixes)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start > sorted[j].Start
		}
		return sorted[i].End > sorted[j].End
	})

	out := make([]byte, len(content))
	copy(out, content)

	var applied []string
	lastStart := len(content) + 1
	for _, f := range sorted {
		if f.Start < 0 || f.End < f.Start || f.End > len(content) {
			continue
		}
		// End past the previously applied fix's start means overlap.
		if f.End > lastStart {
			continue
		}
		if !onRuneBoundary(content, f.Start) || !onRuneBoundary(content, f.End) {
			continue
		}

		tail := append([]byte(nil), out[f.End:]...)
		out = append(append(out[:f.Start], []byte(f.Replacement)...), tail...)
		applied = append(applied, f.Description)
		lastStart = f.Start
	}

	// Application ran right to left; report descriptions left to right.
	for i, j := 0, len(applied)-1; i < j; i, j = i+1, j-1 {
		applied[i], applied[j] = applied[j], applied[i]
	}
	return out, applied
}

// onRuneBoundary reports whether offset falls on a code-point boundary of
// the original content.
func onRuneBoundary(content []byte, offset int) bool {
	if offset == 0 || offset == len(content) {
		return true
	}
	return utf8.RuneStart(content[offset])
}
