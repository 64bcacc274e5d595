package vault

import (
	"path/filepath"
	"strings"
)

// Note is a parsed document: its path, its frontmatter mapping, and a display
// title derived once at construction. Notes are immutable after NewNote.
type Note struct {
	Path        string
	Frontmatter *Mapping
	Title       string
}

// NewNote builds a note from a path and its parsed frontmatter. The title is
// the frontmatter "title" key when it holds a string, otherwise the filename
// stem of the path. fm may be nil for notes without frontmatter.
func NewNote(path string, fm *Mapping) Note {
	if fm == nil {
		fm = NewMapping()
	}

	title := ""
	if v, ok := fm.Get("title"); ok {
		if s, ok := v.AsString(); ok {
			title = s
		}
	}
	if title == "" {
		title = stem(path)
	}

	return Note{Path: path, Frontmatter: fm, Title: title}
}

// Value performs an exact-key frontmatter lookup.
func (n Note) Value(key string) (Value, bool) {
	return n.Frontmatter.Get(key)
}

// ValueFold performs a case-insensitive frontmatter lookup and reports the
// original spelling of the matched key.
func (n Note) ValueFold(key string) (Value, string, bool) {
	return n.Frontmatter.GetFold(key)
}

// Matches reports whether the frontmatter value at key contains sub. With
// caseSensitive false both the key resolution and the containment test fold
// case.
func (n Note) Matches(key, sub string, caseSensitive bool) bool {
	if caseSensitive {
		v, ok := n.Value(key)
		return ok && v.Contains(sub)
	}
	v, _, ok := n.ValueFold(key)
	return ok && v.ContainsFold(sub)
}

// stem returns the filename without its extension.
func stem(path string) string {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
