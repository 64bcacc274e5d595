// Package query filters and aggregates notes by their frontmatter.
package query

import (
	"sort"

	"github.com/colonyops/fmq/internal/core/vault"
)

// Filter is a single key/substring constraint.
type Filter struct {
	Key   string
	Value string
}

// Criteria is a conjunction of filters applied to a note collection. The
// zero value (no filters) matches every note.
type Criteria struct {
	filters    []Filter
	ignoreCase bool
}

// NewCriteria builds criteria from filters. With ignoreCase set, both key
// resolution and substring matching fold case.
func NewCriteria(filters []Filter, ignoreCase bool) Criteria {
	return Criteria{filters: filters, ignoreCase: ignoreCase}
}

// Apply returns the notes matching every filter, preserving input order.
func (c Criteria) Apply(notes []vault.Note) []vault.Note {
	if len(c.filters) == 0 {
		return notes
	}

	var out []vault.Note
	for _, n := range notes {
		if c.matches(n) {
			out = append(out, n)
		}
	}
	return out
}

func (c Criteria) matches(n vault.Note) bool {
	for _, f := range c.filters {
		if !n.Matches(f.Key, f.Value, !c.ignoreCase) {
			return false
		}
	}
	return true
}

// Fields returns the sorted set of frontmatter keys present in any note.
func Fields(notes []vault.Note) []string {
	seen := map[string]struct{}{}
	for _, n := range notes {
		for _, k := range n.Frontmatter.Keys() {
			seen[k] = struct{}{}
		}
	}

	fields := make([]string, 0, len(seen))
	for k := range seen {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}

// FieldValues returns the sorted set of distinct string-rendered values for
// field across all notes, matching the field name exactly. Sequence values
// contribute one entry per element.
func FieldValues(notes []vault.Note, field string) []string {
	seen := map[string]struct{}{}
	for _, n := range notes {
		v, ok := n.Value(field)
		if !ok {
			continue
		}
		for _, e := range v.Flatten() {
			seen[e.String()] = struct{}{}
		}
	}
	return sortedSet(seen)
}

// FieldValuesFold is FieldValues under case-insensitive key resolution,
// merging values held under any cased variant of field. The second return is
// the original spelling of the first key variant encountered (field itself
// when nothing matched), reported for display.
func FieldValuesFold(notes []vault.Note, field string) ([]string, string) {
	seen := map[string]struct{}{}
	actual := field
	found := false

	for _, n := range notes {
		v, key, ok := n.ValueFold(field)
		if !ok {
			continue
		}
		if !found {
			actual = key
			found = true
		}
		for _, e := range v.Flatten() {
			seen[e.String()] = struct{}{}
		}
	}
	return sortedSet(seen), actual
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
