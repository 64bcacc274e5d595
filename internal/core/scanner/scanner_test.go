package scanner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/fmq/internal/core/report"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestReporter() *report.Reporter {
	return report.NewWithWriters(false, false, &bytes.Buffer{}, &bytes.Buffer{})
}

func TestNew(t *testing.T) {
	dir := t.TempDir()

	s, err := New(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, dir, s.Root())
}

func TestNewMissingRoot(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestNewRootIsFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "file.md", "x")

	_, err := New(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "x")
	writeFile(t, dir, "sub/b.md", "x")
	writeFile(t, dir, "sub/deep/c.md", "x")
	writeFile(t, dir, "notes.txt", "x")
	writeFile(t, dir, ".hidden.md", "x")
	writeFile(t, dir, ".obsidian/cache.md", "x")

	s, err := New(dir, nil)
	require.NoError(t, err)

	files, err := s.Discover()
	require.NoError(t, err)
	sort.Strings(files)

	assert.Equal(t, []string{
		filepath.Join(dir, "a.md"),
		filepath.Join(dir, "sub", "b.md"),
		filepath.Join(dir, "sub", "deep", "c.md"),
	}, files)
}

func TestDiscoverCustomExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "x")
	writeFile(t, dir, "b.markdown", "x")
	writeFile(t, dir, "c.txt", "x")

	s, err := New(dir, []string{"md", "markdown"})
	require.NoError(t, err)

	files, err := s.Discover()
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestScanEmptyVault(t *testing.T) {
	s, err := New(t.TempDir(), nil)
	require.NoError(t, err)

	notes, err := s.Scan(context.Background(), newTestReporter(), Options{Lenient: true})
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.md", "---\ntitle: Good Note\ntags: [work]\n---\nbody\n")
	writeFile(t, dir, "plain.md", "# no frontmatter\n")

	s, err := New(dir, nil)
	require.NoError(t, err)

	rep := newTestReporter()
	notes, err := s.Scan(context.Background(), rep, Options{Lenient: true, Workers: 2})
	require.NoError(t, err)
	require.Len(t, notes, 2)

	byPath := map[string]string{}
	for _, n := range notes {
		byPath[filepath.Base(n.Path)] = n.Title
	}
	assert.Equal(t, "Good Note", byPath["good.md"])
	assert.Equal(t, "plain", byPath["plain.md"])
	assert.Zero(t, rep.WarningCount())
	assert.Zero(t, rep.CriticalCount())
}

func TestScanLenientAndStrict(t *testing.T) {
	content := "---\nsource: Eberron: Rising from the Last War p. 277\n---\nbody\n"

	t.Run("lenient keeps the value", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "note.md", content)

		s, err := New(dir, nil)
		require.NoError(t, err)

		rep := newTestReporter()
		notes, err := s.Scan(context.Background(), rep, Options{Lenient: true})
		require.NoError(t, err)
		require.Len(t, notes, 1)

		v, ok := notes[0].Value("source")
		require.True(t, ok)
		assert.Equal(t, "Eberron: Rising from the Last War p. 277", v.String())
		assert.Equal(t, 1, rep.LenientCount())
	})

	t.Run("strict degrades to empty frontmatter", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "note.md", content)

		s, err := New(dir, nil)
		require.NoError(t, err)

		rep := newTestReporter()
		notes, err := s.Scan(context.Background(), rep, Options{Lenient: false})
		require.NoError(t, err)
		require.Len(t, notes, 1, "the note is retained even when parsing fails")

		assert.Zero(t, notes[0].Frontmatter.Len())
		assert.Equal(t, 1, rep.WarningCount())
		assert.Equal(t, map[string]int{report.CategoryFrontmatter: 1}, rep.Categories())
	})
}

func TestScanUnreadableFileDropped(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ok.md", "---\ntitle: Fine\n---\n")
	bad := writeFile(t, dir, "bad.md", "---\ntitle: Nope\n---\n")
	require.NoError(t, os.Chmod(bad, 0o000))
	t.Cleanup(func() { _ = os.Chmod(bad, 0o644) })

	if os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}

	s, err := New(dir, nil)
	require.NoError(t, err)

	rep := newTestReporter()
	notes, err := s.Scan(context.Background(), rep, Options{Lenient: true})
	require.NoError(t, err)

	require.Len(t, notes, 1)
	assert.Equal(t, "Fine", notes[0].Title)
	assert.Equal(t, 1, rep.CriticalCount())
}

func TestScanManyFilesConcurrently(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 40; i++ {
		writeFile(t, dir, filepath.Join("sub", noteName(i)), "---\ntitle: Note\n---\n")
	}

	s, err := New(dir, nil)
	require.NoError(t, err)

	notes, err := s.Scan(context.Background(), newTestReporter(), Options{Lenient: true, Workers: 8})
	require.NoError(t, err)
	assert.Len(t, notes, 40)
}

func noteName(i int) string {
	return "note" + string(rune('a'+i/26)) + string(rune('a'+i%26)) + ".md"
}
