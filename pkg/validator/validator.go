// Package validator enumerates a project's artifact files and validates them
// concurrently, producing a globally deterministic diagnostic list.
package validator

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/agentlint/agentlint/pkg/config"
	"github.com/agentlint/agentlint/pkg/diagnostic"
	"github.com/agentlint/agentlint/pkg/imports"
	"github.com/agentlint/agentlint/pkg/lintfs"
	"github.com/agentlint/agentlint/pkg/lintignore"
	"github.com/agentlint/agentlint/pkg/rules"
)

var validateLog = log.New(os.Stderr, "[agentlint:validate] ", log.Ltime)

// DefaultConcurrency caps the number of files validated at once.
const DefaultConcurrency = 16

// RuleFileRead is the sentinel rule id attached to synthetic diagnostics for
// files that could not be read or validated.
const RuleFileRead = "file::read"

// Validator runs the project validation pipeline. The import parse cache
// persists for the Validator's lifetime, so create a fresh Validator per run
// when the tree may have changed underneath it.
type Validator struct {
	cfg   *config.LintConfig
	fs    lintfs.FileSystem
	table rules.Table
	cache *imports.Cache

	// Concurrency bounds parallel per-file validation (default
	// DefaultConcurrency).
	Concurrency int
}

// New creates a Validator over the real filesystem.
func New(cfg *config.LintConfig) *Validator {
	return NewWithFS(cfg, &lintfs.OSFS{MaxFileSize: cfg.MaxFileSize})
}

// NewWithFS creates a Validator over an arbitrary filesystem capability.
func NewWithFS(cfg *config.LintConfig, fsys lintfs.FileSystem) *Validator {
	cache := imports.NewCache()
	table := rules.DefaultTable()
	// The import resolver runs as one of the memory-file checkers; it owns
	// its own recursive traversal and shares the parse cache.
	table.Append(rules.FileTypeClaudeMd, imports.NewResolver(fsys, cache))

	return &Validator{
		cfg:   cfg,
		fs:    fsys,
		table: table,
		cache: cache,
	}
}

// Cache exposes the shared import cache (the watcher reuses it across
// incremental revalidations).
func (v *Validator) Cache() *imports.Cache { return v.cache }

// ValidateProject walks root, validates every candidate file in parallel,
// and returns diagnostics sorted by (severity, file path, line, rule id).
// The sort is mandatory: without it the parallel step would make output
// order depend on scheduling.
//
// Only configuration errors (an invalid exclude glob) fail the call; a
// per-file failure becomes an Error diagnostic tagged RuleFileRead and the
// run continues.
func (v *Validator) ValidateProject(ctx context.Context, root string) ([]diagnostic.Diagnostic, error) {
	// Fail fast on bad config before any file work.
	for _, pattern := range v.cfg.ExcludeGlobs {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	candidates, err := v.collectCandidates(root)
	if err != nil {
		return nil, err
	}

	results := make([][]diagnostic.Diagnostic, len(candidates))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(v.concurrency())
	for i, path := range candidates {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			results[i] = v.validatePath(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []diagnostic.Diagnostic
	for _, diags := range results {
		all = append(all, diags...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return diagnostic.Less(all[i], all[j])
	})

	validateLog.Printf("validated %d files: %d diagnostics", len(candidates), len(all))
	return all, nil
}

// collectCandidates walks the tree once, sequentially, honoring ignore-file
// conventions and the configured exclude globs, and returns an ordered list
// of regular-file paths.
func (v *Validator) collectCandidates(root string) ([]string, error) {
	matcher, err := lintignore.New(root)
	if err != nil {
		return nil, fmt.Errorf("load ignore rules: %w", err)
	}

	var candidates []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil // inaccessible entries are skipped, not fatal
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if matcher.ShouldIgnoreDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if matcher.ShouldIgnoreFile(rel) {
			return nil
		}
		for _, pattern := range v.cfg.ExcludeGlobs {
			if ok, _ := doublestar.Match(pattern, rel); ok {
				return nil
			}
		}
		candidates = append(candidates, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return candidates, nil
}

// validatePath reads and validates one file. Unknown file types
// short-circuit before any read.
func (v *Validator) validatePath(path string) []diagnostic.Diagnostic {
	ft := rules.DetectFileType(path)
	checkers := v.table.CheckersFor(ft)
	if len(checkers) == 0 {
		return nil
	}

	content, err := v.fs.ReadFile(path)
	if err != nil {
		return []diagnostic.Diagnostic{diagnostic.New(
			diagnostic.SeverityError, RuleFileRead, path,
			fmt.Sprintf("failed to read file: %v", err), 1, 1,
		)}
	}

	return v.runCheckers(path, content, checkers)
}

// ValidateFile validates pre-read content for a single path, for callers
// (editors) that hold the buffer themselves. Diagnostics come back in the
// canonical sort order.
func (v *Validator) ValidateFile(path string, content []byte) []diagnostic.Diagnostic {
	checkers := v.table.CheckersFor(rules.DetectFileType(path))
	if len(checkers) == 0 {
		return nil
	}
	diags := v.runCheckers(path, content, checkers)
	sort.SliceStable(diags, func(i, j int) bool {
		return diagnostic.Less(diags[i], diags[j])
	})
	return diags
}

func (v *Validator) runCheckers(path string, content []byte, checkers []rules.Checker) []diagnostic.Diagnostic {
	threshold := v.cfg.Threshold()
	var out []diagnostic.Diagnostic
	for _, c := range checkers {
		for _, d := range c.Check(path, content, v.cfg) {
			if d.Severity <= threshold {
				out = append(out, d)
			}
		}
	}
	return out
}

func (v *Validator) concurrency() int {
	if v.Concurrency > 0 {
		return v.Concurrency
	}
	return DefaultConcurrency
}
