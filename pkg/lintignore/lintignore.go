// Package lintignore provides gitignore-compatible file matching for the
// project walker.
//
// Patterns come from three layers, lowest priority first: built-in defaults
// for directories that never hold agent artifacts, the project's .gitignore,
// and the project's .agentlintignore (which can negate either of the other
// layers).
//
// Pattern syntax mirrors .gitignore:
//
//	# comment
//	*.bak            match files by extension
//	node_modules/    match directories by name (trailing slash)
//	**/archive/      match at any depth
//	!keep.md         negate a previous pattern
//	/rootonly        anchored to project root (leading slash)
package lintignore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Matcher tests whether a path should be skipped by the walker.
type Matcher struct {
	rules []rule
}

type rule struct {
	glob     string // doublestar pattern matched against the full relative path
	negation bool
	dirOnly  bool
}

// BuiltinDefaults are applied even when no ignore file exists. Agent
// artifacts never live inside dependency, build, or VCS directories.
var BuiltinDefaults = []string{
	".git/",
	".svn/",
	".hg/",
	"node_modules/",
	"vendor/",
	"dist/",
	"build/",
	"target/",
	"out/",
	"__pycache__/",
	".venv/",
	"venv/",
	".tox/",
	".cache/",
	".idea/",
	".vscode/",
	".DS_Store",
}

// ignoreFileNames are loaded from the project root, in priority order.
var ignoreFileNames = []string{".gitignore", ".agentlintignore"}

// New creates a Matcher from built-in defaults plus the project's ignore
// files. Missing files are fine; the Matcher still works on defaults alone.
func New(projectRoot string) (*Matcher, error) {
	m := NewFromDefaults()
	for _, name := range ignoreFileNames {
		path := filepath.Join(projectRoot, name)
		if err := m.loadFile(path); err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}
	return m, nil
}

// NewFromDefaults creates a Matcher using only built-in defaults.
func NewFromDefaults() *Matcher {
	m := &Matcher{}
	for _, p := range BuiltinDefaults {
		m.add(p)
	}
	return m
}

// NewEmpty creates a Matcher with no rules at all; nothing is ignored.
// Useful in tests that scan fixture trees a default would exclude.
func NewEmpty() *Matcher {
	return &Matcher{}
}

// ShouldIgnore reports whether path (relative to the project root, forward
// slashes) should be skipped. isDir must be true for directories.
func (m *Matcher) ShouldIgnore(path string, isDir bool) bool {
	path = strings.TrimSuffix(filepath.ToSlash(path), "/")
	if path == "" || path == "." {
		return false
	}

	// Last matching rule wins, like gitignore.
	ignored := false
	matched := false
	for _, r := range m.rules {
		if r.dirOnly && !isDir {
			continue
		}
		if ok, _ := doublestar.Match(r.glob, path); ok {
			ignored = !r.negation
			matched = true
		}
	}
	if ignored {
		return true
	}
	// A negation that matched this exact path overrides any ignored parent.
	if matched {
		return false
	}

	// Files under an ignored directory are ignored even when the walker
	// hands us the file path directly (the watcher does exactly that).
	if !isDir {
		parts := strings.Split(path, "/")
		for i := 1; i < len(parts); i++ {
			if m.ShouldIgnore(strings.Join(parts[:i], "/"), true) {
				return true
			}
		}
	}
	return false
}

// ShouldIgnoreDir is a convenience for ShouldIgnore(path, true).
func (m *Matcher) ShouldIgnoreDir(path string) bool {
	return m.ShouldIgnore(path, true)
}

// ShouldIgnoreFile is a convenience for ShouldIgnore(path, false).
func (m *Matcher) ShouldIgnoreFile(path string) bool {
	return m.ShouldIgnore(path, false)
}

func (m *Matcher) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m.add(line)
	}
	return scanner.Err()
}

// add parses one gitignore-style pattern into a doublestar rule.
func (m *Matcher) add(pattern string) {
	r := rule{}

	if strings.HasPrefix(pattern, "!") {
		r.negation = true
		pattern = pattern[1:]
	}
	if strings.HasSuffix(pattern, "/") {
		r.dirOnly = true
		pattern = strings.TrimSuffix(pattern, "/")
	}

	anchored := strings.HasPrefix(pattern, "/")
	pattern = strings.TrimPrefix(pattern, "/")
	// A slash anywhere in the body also anchors the pattern to the root,
	// per gitignore rules.
	if !anchored && strings.Contains(pattern, "/") {
		anchored = true
	}

	if anchored {
		r.glob = pattern
	} else {
		// Basename patterns match at any depth.
		r.glob = "**/" + pattern
	}
	m.rules = append(m.rules, r)
}
