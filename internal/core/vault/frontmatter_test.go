package vault

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	content := `---
title: Test Note
tags: [work, important]
status: active
---

# Test Note

This is the content of the note.`

	fm, warning := Extract(content, "test.md", false)
	require.NotNil(t, fm)
	assert.Empty(t, warning)

	title, ok := fm.Get("title")
	require.True(t, ok)
	assert.Equal(t, "Test Note", title.String())

	tags, ok := fm.Get("tags")
	require.True(t, ok)
	elems, ok := tags.Sequence()
	require.True(t, ok)
	require.Len(t, elems, 2)
	assert.Equal(t, "work", elems[0].String())
	assert.Equal(t, "important", elems[1].String())

	status, ok := fm.Get("status")
	require.True(t, ok)
	assert.Equal(t, "active", status.String())
}

func TestExtractNoFrontmatter(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "plain markdown", content: "# Just a regular markdown file\n\nWith some content."},
		{name: "empty content", content: ""},
		{name: "delimiter only", content: "---"},
		{name: "missing closing delimiter", content: "---\ntitle: Orphaned\n"},
		{name: "delimiter not first", content: "intro\n---\ntitle: Nope\n---\n"},
		{name: "sequence at document root", content: "---\n- one\n- two\n---\nbody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, warning := Extract(tt.content, "test.md", false)
			assert.Nil(t, fm)
			assert.Empty(t, warning)
		})
	}
}

func TestExtractEmptyBlock(t *testing.T) {
	fm, warning := Extract("---\n---\n\n# Note with empty frontmatter", "test.md", false)
	require.NotNil(t, fm)
	assert.Zero(t, fm.Len())
	assert.Empty(t, warning)
}

func TestExtractStrictFailure(t *testing.T) {
	content := `---
source: Eberron: Rising from the Last War p. 277
---
body`

	fm, warning := Extract(content, "note.md", false)
	require.NotNil(t, fm)
	assert.Zero(t, fm.Len(), "strict mode degrades to empty frontmatter")
	assert.Contains(t, warning, "Failed to parse")
	assert.Contains(t, warning, "note.md")
}

func TestExtractLenientRecovery(t *testing.T) {
	content := `---
title: Rulebook Note
source: Eberron: Rising from the Last War p. 277
---
body`

	fm, warning := Extract(content, "note.md", true)
	require.NotNil(t, fm)
	assert.Contains(t, warning, "Used lenient parsing")

	source, ok := fm.Get("source")
	require.True(t, ok)
	assert.Equal(t, "Eberron: Rising from the Last War p. 277", source.String())

	title, ok := fm.Get("title")
	require.True(t, ok)
	assert.Equal(t, "Rulebook Note", title.String())
}

func TestExtractLenientStillFailing(t *testing.T) {
	// An unclosed flow sequence is not a colon problem; the repair pass
	// leaves bracketed values alone and the retry fails too.
	content := "---\ntags: [unclosed: here\n---\nbody"

	fm, warning := Extract(content, "bad.md", true)
	require.NotNil(t, fm)
	assert.Zero(t, fm.Len())
	assert.Contains(t, warning, "even with lenient parsing")
}

func TestExtractWellFormedNeverRepairs(t *testing.T) {
	content := `---
title: "Quoted: with colon"
count: 3
---
body`

	fm, warning := Extract(content, "ok.md", true)
	require.NotNil(t, fm)
	assert.Empty(t, warning, "well-formed blocks must not trigger the repair pass")

	title, ok := fm.Get("title")
	require.True(t, ok)
	assert.Equal(t, "Quoted: with colon", title.String())
}

func TestExtractDropsNonStringKeys(t *testing.T) {
	content := `---
42: numeric key
title: Kept
---
body`

	fm, warning := Extract(content, "keys.md", false)
	require.NotNil(t, fm)
	assert.Empty(t, warning)
	assert.Equal(t, []string{"title"}, fm.Keys())
}

func TestExtractScalarTypes(t *testing.T) {
	content := `---
count: 12
ratio: 0.50
done: true
nothing: null
nested:
  inner: value
---
body`

	fm, warning := Extract(content, "types.md", false)
	require.NotNil(t, fm)
	assert.Empty(t, warning)

	count, _ := fm.Get("count")
	assert.Equal(t, KindInt, count.Kind())
	assert.Equal(t, "12", count.String())

	ratio, _ := fm.Get("ratio")
	assert.Equal(t, KindFloat, ratio.Kind())
	assert.Equal(t, "0.50", ratio.String(), "floats keep their source text")

	done, _ := fm.Get("done")
	assert.Equal(t, KindBool, done.Kind())

	nothing, _ := fm.Get("nothing")
	assert.True(t, nothing.IsNull())

	nested, _ := fm.Get("nested")
	inner, ok := nested.AsMapping()
	require.True(t, ok)
	v, ok := inner.Get("inner")
	require.True(t, ok)
	assert.Equal(t, "value", v.String())
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.md")
	require.NoError(t, os.WriteFile(path, []byte("---\ntitle: From File\n---\nbody\n"), 0o644))

	res, err := ParseFile(path, false)
	require.NoError(t, err)
	assert.Empty(t, res.Warning)
	assert.Equal(t, path, res.Note.Path)
	assert.Equal(t, "From File", res.Note.Title)
}

func TestParseFileNoFrontmatter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.md")
	require.NoError(t, os.WriteFile(path, []byte("# heading\n"), 0o644))

	res, err := ParseFile(path, false)
	require.NoError(t, err)
	assert.Zero(t, res.Note.Frontmatter.Len())
	assert.Equal(t, "plain", res.Note.Title, "title falls back to the filename stem")
}

func TestParseFileReadError(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.md"), false)
	require.Error(t, err)
}
