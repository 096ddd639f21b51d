package imports

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentlint/agentlint/pkg/config"
	"github.com/agentlint/agentlint/pkg/diagnostic"
	"github.com/agentlint/agentlint/pkg/lintfs"
)

// MaxDepth is the maximum number of import hops followed from a root file.
const MaxDepth = 5

// Rule ids produced by the resolver.
const (
	RuleNotFound = "CC-MEM-001"
	RuleCycle    = "CC-MEM-002"
	RuleDepth    = "CC-MEM-003"
)

// Resolver walks the import graph of a single root file.
type Resolver struct {
	fs    lintfs.FileSystem
	cache *Cache
}

// NewResolver creates a resolver sharing the given parse cache.
func NewResolver(fs lintfs.FileSystem, cache *Cache) *Resolver {
	if cache == nil {
		cache = NewCache()
	}
	return &Resolver{fs: fs, cache: cache}
}

// Check adapts the resolver to the rule-checker contract, so it runs as one
// of the checkers for memory files.
func (r *Resolver) Check(path string, content []byte, cfg *config.LintConfig) []diagnostic.Diagnostic {
	return r.Resolve(path, content, cfg)
}

// traversal carries the per-root DFS state.
type traversal struct {
	r     *Resolver
	cfg   *config.LintConfig
	diags []diagnostic.Diagnostic

	// stack is the current DFS path of canonical file paths; onStack maps
	// each to its stack index for the cycle test ("is this node an ancestor
	// of the current path").
	stack   []string
	onStack map[string]int

	// visitedDepth records, per file, the shallowest depth at which it has
	// been fully explored. A file reached again is re-explored only from a
	// strictly shallower point, because a shallower visit can surface
	// diagnostics (shorter cycles) that the earlier deeper visit could not.
	// In pathological graphs a deeper-then-shallower revisit ordering can
	// still under-report; preserved as-is for output compatibility.
	visitedDepth map[string]int
}

// Resolve walks the import graph rooted at path, whose content the caller
// has already read. When all three resolver rules are disabled no file is
// read and no recursion happens.
func (r *Resolver) Resolve(path string, content []byte, cfg *config.LintConfig) []diagnostic.Diagnostic {
	if !cfg.IsRuleEnabled(RuleNotFound) &&
		!cfg.IsRuleEnabled(RuleCycle) &&
		!cfg.IsRuleEnabled(RuleDepth) {
		return nil
	}

	rootCanon := canonicalize(path)
	t := &traversal{
		r:            r,
		cfg:          cfg,
		onStack:      map[string]int{rootCanon: 0},
		stack:        []string{rootCanon},
		visitedDepth: map[string]int{rootCanon: 0},
	}

	t.visit(path, rootCanon, r.cache.Seed(rootCanon, content), 0)
	return t.diags
}

func (t *traversal) visit(displayPath, canonPath string, imps []Import, depth int) {
	dir := filepath.Dir(displayPath)

	for _, imp := range imps {
		resolved := resolveTarget(imp.Path, dir)

		if !t.r.fs.Exists(resolved) {
			if t.cfg.IsRuleEnabled(RuleNotFound) {
				t.diags = append(t.diags, diagnostic.New(
					diagnostic.SeverityError, RuleNotFound, displayPath,
					fmt.Sprintf("imported file not found: %s", resolved),
					imp.Line, imp.Column,
				).WithSuggestion(fmt.Sprintf("create %s or remove the @%s reference", resolved, imp.Path)))
			}
			continue
		}

		canon := canonicalize(resolved)

		if idx, on := t.onStack[canon]; on {
			if t.cfg.IsRuleEnabled(RuleCycle) {
				chain := append(append([]string{}, t.stack[idx:]...), canon)
				t.diags = append(t.diags, diagnostic.New(
					diagnostic.SeverityError, RuleCycle, displayPath,
					fmt.Sprintf("import cycle detected: %s", strings.Join(chain, " -> ")),
					imp.Line, imp.Column,
				))
			}
			continue
		}

		if depth+1 > MaxDepth {
			if t.cfg.IsRuleEnabled(RuleDepth) {
				t.diags = append(t.diags, diagnostic.New(
					diagnostic.SeverityError, RuleDepth, displayPath,
					fmt.Sprintf("import chain exceeds maximum depth of %d", MaxDepth),
					imp.Line, imp.Column,
				).WithSuggestion("flatten the import chain; deeply nested memory files are not loaded"))
			}
			continue
		}

		if prev, seen := t.visitedDepth[canon]; seen && depth+1 >= prev {
			continue
		}
		t.visitedDepth[canon] = depth + 1

		childImps, err := t.r.cache.GetOrParse(canon, t.r.fs)
		if err != nil {
			// Exists but unreadable; the walker reports read failures, the
			// resolver just stops following the edge.
			continue
		}

		t.onStack[canon] = len(t.stack)
		t.stack = append(t.stack, canon)
		t.visit(resolved, canon, childImps, depth+1)
		t.stack = t.stack[:len(t.stack)-1]
		delete(t.onStack, canon)
	}
}

// resolveTarget turns the raw import text into a concrete path: ~/ expands
// to the home directory, absolute paths pass through, anything else is
// relative to the importing file's directory.
func resolveTarget(raw, dir string) string {
	if strings.HasPrefix(raw, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, raw[2:])
		}
	}
	if filepath.IsAbs(raw) {
		return filepath.Clean(raw)
	}
	return filepath.Join(dir, raw)
}

// canonicalize collapses .. segments and symlinks so cycle comparison sees
// one name per file. Falls back to the cleaned absolute path when the file
// cannot be resolved.
func canonicalize(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return filepath.Clean(abs)
}
