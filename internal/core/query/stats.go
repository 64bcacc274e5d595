package query

import (
	"sort"

	"github.com/colonyops/fmq/internal/core/vault"
)

// FieldStats accumulates per-field value frequencies. A scalar value counts
// once; a sequence counts once per element. Elements that are not plain
// scalars are tallied under their JSON fallback rendering rather than
// dropped.
type FieldStats struct {
	TotalCount  int
	ValueCounts map[string]int
}

func newFieldStats() *FieldStats {
	return &FieldStats{ValueCounts: map[string]int{}}
}

func (s *FieldStats) add(v vault.Value) {
	for _, e := range v.Flatten() {
		s.TotalCount++
		s.ValueCounts[e.String()]++
	}
}

// Unique returns the distinct value renderings, sorted.
func (s *FieldStats) Unique() []string {
	out := make([]string, 0, len(s.ValueCounts))
	for v := range s.ValueCounts {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// FieldCounts aggregates value frequencies for a single field. With
// caseSensitive false the field name resolves case-insensitively, merging
// counts held under any cased variant of the key.
func FieldCounts(notes []vault.Note, field string, caseSensitive bool) *FieldStats {
	stats := newFieldStats()
	for _, n := range notes {
		var (
			v  vault.Value
			ok bool
		)
		if caseSensitive {
			v, ok = n.Value(field)
		} else {
			v, _, ok = n.ValueFold(field)
		}
		if !ok {
			continue
		}
		stats.add(v)
	}
	return stats
}

// Statistics builds per-field frequency statistics over notes in one pass.
func Statistics(notes []vault.Note) map[string]*FieldStats {
	stats := map[string]*FieldStats{}
	for _, n := range notes {
		for _, key := range n.Frontmatter.Keys() {
			v, _ := n.Value(key)
			fs, ok := stats[key]
			if !ok {
				fs = newFieldStats()
				stats[key] = fs
			}
			fs.add(v)
		}
	}
	return stats
}
