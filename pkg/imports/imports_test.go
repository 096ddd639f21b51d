package imports

import (
	"testing"

	"github.com/agentlint/agentlint/pkg/lintfs"
)

func TestParseTokens(t *testing.T) {
	content := []byte("see @notes.md for details\n@docs/style.md\nread @~/global.md.\n")
	imps := Parse(content)
	if len(imps) != 3 {
		t.Fatalf("want 3 imports, got %d: %+v", len(imps), imps)
	}

	if imps[0].Path != "notes.md" || imps[0].Line != 1 || imps[0].Column != 5 {
		t.Errorf("first import = %+v", imps[0])
	}
	if imps[1].Path != "docs/style.md" || imps[1].Line != 2 || imps[1].Column != 1 {
		t.Errorf("second import = %+v", imps[1])
	}
	// Trailing sentence punctuation is not part of the path.
	if imps[2].Path != "~/global.md" {
		t.Errorf("third import = %+v", imps[2])
	}
}

func TestParseSkipsNonImports(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"email", "mail me at alice@example.com\n"},
		{"bare at", "twitter handle: @ alone? no, just @\n"},
		{"inline code", "use `@import` syntax here\n"},
		{"code fence", "```\n@not-an-import.md\n```\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if imps := Parse([]byte(tc.content)); len(imps) != 0 {
				t.Errorf("parsed %+v from %q", imps, tc.content)
			}
		})
	}
}

func TestParseAfterFenceResumes(t *testing.T) {
	content := []byte("```\n@fenced.md\n```\n@real.md\n")
	imps := Parse(content)
	if len(imps) != 1 || imps[0].Path != "real.md" {
		t.Errorf("imports = %+v", imps)
	}
}

// countingFS wraps a FileSystem and counts the calls that touch content.
type countingFS struct {
	lintfs.FileSystem
	reads  int
	exists int
}

func (c *countingFS) ReadFile(path string) ([]byte, error) {
	c.reads++
	return c.FileSystem.ReadFile(path)
}

func (c *countingFS) Exists(path string) bool {
	c.exists++
	return c.FileSystem.Exists(path)
}

func TestCacheParsesOnce(t *testing.T) {
	fsys := &countingFS{FileSystem: lintfs.NewMemFS(map[string]string{
		"/proj/shared.md": "@leaf.md\n",
	})}
	cache := NewCache()

	first, err := cache.GetOrParse("/proj/shared.md", fsys)
	if err != nil {
		t.Fatalf("GetOrParse: %v", err)
	}
	second, err := cache.GetOrParse("/proj/shared.md", fsys)
	if err != nil {
		t.Fatalf("GetOrParse (cached): %v", err)
	}
	if fsys.reads != 1 {
		t.Errorf("file read %d times, want 1", fsys.reads)
	}
	if len(first) != 1 || len(second) != 1 || first[0].Path != second[0].Path {
		t.Errorf("cache returned different imports: %+v vs %+v", first, second)
	}
}

func TestCacheSeedWinsOverLaterRead(t *testing.T) {
	fsys := lintfs.NewMemFS(map[string]string{"/proj/a.md": "@from-disk.md\n"})
	cache := NewCache()

	seeded := cache.Seed("/proj/a.md", []byte("@from-memory.md\n"))
	if len(seeded) != 1 || seeded[0].Path != "from-memory.md" {
		t.Fatalf("seed = %+v", seeded)
	}
	got, err := cache.GetOrParse("/proj/a.md", fsys)
	if err != nil {
		t.Fatalf("GetOrParse: %v", err)
	}
	if got[0].Path != "from-memory.md" {
		t.Errorf("seeded entry replaced by disk read: %+v", got)
	}
}
