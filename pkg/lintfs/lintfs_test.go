package lintfs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestOSFSReadsRegularFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "CLAUDE.md", "# project\n")

	data, err := NewOSFS().ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "# project\n" {
		t.Errorf("content mismatch: %q", data)
	}
}

func TestOSFSRejectsSymlink(t *testing.T) {
	dir := t.TempDir()
	target := writeTempFile(t, dir, "real.md", "content")
	link := filepath.Join(dir, "link.md")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	_, err := NewOSFS().ReadFile(link)
	if !errors.Is(err, ErrSymlink) {
		t.Errorf("want ErrSymlink, got %v", err)
	}
}

func TestOSFSSizeCeilingIsInclusive(t *testing.T) {
	dir := t.TempDir()
	exact := writeTempFile(t, dir, "exact.md", strings.Repeat("a", 64))
	over := writeTempFile(t, dir, "over.md", strings.Repeat("a", 65))

	fsys := &OSFS{MaxFileSize: 64}
	if _, err := fsys.ReadFile(exact); err != nil {
		t.Errorf("file at the limit should be readable: %v", err)
	}
	_, err := fsys.ReadFile(over)
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("want ErrTooLarge, got %v", err)
	}
}

func TestOSFSWritePreservesMode(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "settings.json", "{}")
	if err := os.Chmod(path, 0o600); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	if err := NewOSFS().WriteFile(path, []byte(`{"hooks":{}}`)); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode not preserved: %v", info.Mode())
	}
}

func TestMemFSCleansPaths(t *testing.T) {
	m := NewMemFS(map[string]string{"./a/b.md": "x"})

	data, err := m.ReadFile("a/b.md")
	if err != nil {
		t.Fatalf("ReadFile after Clean: %v", err)
	}
	if string(data) != "x" {
		t.Errorf("content mismatch: %q", data)
	}
	if !m.Exists("a") {
		t.Error("parent directory should exist implicitly")
	}
	if m.Exists("a/missing.md") {
		t.Error("missing file reported as existing")
	}
}

func TestMemFSMissingFile(t *testing.T) {
	_, err := NewMemFS(nil).ReadFile("ghost.md")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("want fs.ErrNotExist, got %v", err)
	}
}

func TestMemFSReadReturnsCopy(t *testing.T) {
	m := NewMemFS(map[string]string{"f": "abc"})
	data, _ := m.ReadFile("f")
	data[0] = 'z'
	again, _ := m.ReadFile("f")
	if string(again) != "abc" {
		t.Errorf("caller mutation leaked into store: %q", again)
	}
}
