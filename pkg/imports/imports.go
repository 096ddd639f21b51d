// Package imports extracts @path cross-references from memory files and
// resolves the import graph they form: missing targets, cycles, and
// excessive chain depth.
package imports

import (
	"strings"
	"sync"
	"unicode"

	"github.com/agentlint/agentlint/pkg/lintfs"
)

// Import is one @reference token found in a file's body: the path text as
// written plus its 1-indexed position. Extraction is independent of the
// validation config.
type Import struct {
	Path   string
	Line   int
	Column int
}

// Parse extracts @path tokens from content. A token starts at the beginning
// of a line or after whitespace, and runs until the next whitespace. Code
// fences and inline code are skipped; so are bare "@" signs and handles
// embedded in words (email addresses).
func Parse(content []byte) []Import {
	var out []Import
	inFence := false

	for lineNo, line := range strings.Split(string(content), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		stripped := stripInlineCode(line)

		for i := 0; i < len(stripped); i++ {
			if stripped[i] != '@' {
				continue
			}
			if i > 0 && !unicode.IsSpace(rune(stripped[i-1])) {
				continue
			}
			end := i + 1
			for end < len(stripped) && !unicode.IsSpace(rune(stripped[end])) {
				end++
			}
			path := strings.TrimRight(stripped[i+1:end], ".,;:)")
			if path == "" {
				continue
			}
			out = append(out, Import{
				Path:   path,
				Line:   lineNo + 1,
				Column: i + 1,
			})
			i = end
		}
	}
	return out
}

// stripInlineCode blanks out `code` spans so their content keeps its byte
// positions but never matches.
func stripInlineCode(line string) string {
	var b strings.Builder
	b.Grow(len(line))
	inCode := false
	for _, c := range []byte(line) {
		if c == '`' {
			inCode = !inCode
			b.WriteByte(' ')
			continue
		}
		if inCode {
			b.WriteByte(' ')
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Cache maps a resolved file path to its parsed imports, shared across the
// whole validation run so a file imported by many others is read and
// tokenized once. Entries are written once and never mutated; a duplicate
// fill under a race recomputes the same value, so last-write-wins is
// harmless.
type Cache struct {
	mu      sync.RWMutex
	entries map[string][]Import
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string][]Import)}
}

// Get returns the cached imports for path.
func (c *Cache) Get(path string) ([]Import, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	imps, ok := c.entries[path]
	return imps, ok
}

// put stores imports for path unless another writer got there first.
func (c *Cache) put(path string, imps []Import) []Import {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[path]; ok {
		return existing
	}
	c.entries[path] = imps
	return imps
}

// GetOrParse returns path's imports, reading and parsing through fs on a
// cache miss.
func (c *Cache) GetOrParse(path string, fs lintfs.FileSystem) ([]Import, error) {
	if imps, ok := c.Get(path); ok {
		return imps, nil
	}
	content, err := fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return c.put(path, Parse(content)), nil
}

// Seed stores pre-parsed imports for a path, typically the root file whose
// content the caller already holds.
func (c *Cache) Seed(path string, content []byte) []Import {
	if imps, ok := c.Get(path); ok {
		return imps
	}
	return c.put(path, Parse(content))
}

// Len reports the number of cached files.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
