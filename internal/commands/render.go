package commands

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/colonyops/fmq/internal/core/config"
	"github.com/colonyops/fmq/internal/core/query"
	"github.com/colonyops/fmq/internal/core/vault"
	"github.com/colonyops/fmq/pkg/iojson"
)

const (
	maxPathWidth  = 50
	maxTitleWidth = 30
	maxKeySummary = 3
)

var (
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	stylePath   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleValue  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleNotice = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleMuted  = lipgloss.NewStyle().Faint(true)
)

// renderer writes command output, optionally styled when the target is a
// terminal.
type renderer struct {
	out    io.Writer
	styled bool
}

func newRenderer(out io.Writer, colorMode string) renderer {
	styled := false
	switch colorMode {
	case config.ColorAlways:
		styled = true
	case config.ColorNever:
		styled = false
	default:
		styled = isTerminal(out)
	}
	return renderer{out: out, styled: styled}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (r renderer) paint(st lipgloss.Style, s string) string {
	if !r.styled {
		return s
	}
	return st.Render(s)
}

// NotesTable renders matched notes as a PATH/TITLE/FRONTMATTER table.
func (r renderer) NotesTable(notes []vault.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(r.out, r.paint(styleNotice, "No notes match the specified criteria."))
		return
	}

	fmt.Fprintln(r.out, r.paint(styleHeader, fmt.Sprintf("Found %d matching notes:", len(notes))))
	fmt.Fprintln(r.out)

	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tTITLE\tFRONTMATTER")

	for _, n := range notes {
		title := n.Title
		if title == "" {
			title = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			r.paint(stylePath, truncateLeft(n.Path, maxPathWidth)),
			r.paint(styleValue, truncateRight(title, maxTitleWidth)),
			r.paint(styleMuted, summarizeKeys(n.Frontmatter.Keys())),
		)
	}
	_ = w.Flush()
}

// Paths renders one note path per line.
func (r renderer) Paths(notes []vault.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(r.out, r.paint(styleNotice, "No notes match the specified criteria."))
		return
	}
	for _, n := range notes {
		fmt.Fprintln(r.out, n.Path)
	}
}

// noteDoc is the JSON output shape for a note.
type noteDoc struct {
	Path        string         `json:"path"`
	Frontmatter map[string]any `json:"frontmatter"`
	Title       *string        `json:"title"`
}

// NotesJSON renders notes as a pretty-printed JSON array.
func (r renderer) NotesJSON(notes []vault.Note) error {
	docs := make([]noteDoc, 0, len(notes))
	for _, n := range notes {
		doc := noteDoc{Path: n.Path, Frontmatter: n.Frontmatter.JSON()}
		if n.Title != "" {
			title := n.Title
			doc.Title = &title
		}
		docs = append(docs, doc)
	}
	return iojson.WriteWith(r.out, docs)
}

// FieldsTable renders the field overview: one row per frontmatter key with
// its occurrence count and distinct value count.
func (r renderer) FieldsTable(notes []vault.Note) {
	fields := query.Fields(notes)
	if len(fields) == 0 {
		fmt.Fprintln(r.out, r.paint(styleNotice, "No frontmatter fields found in any notes."))
		return
	}

	stats := query.Statistics(notes)

	fmt.Fprintln(r.out, r.paint(styleHeader, "Available frontmatter fields:"))
	fmt.Fprintln(r.out)

	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tNOTES\tVALUES")
	for _, field := range fields {
		st := stats[field]
		fmt.Fprintf(w, "%s\t%d\t%d\n", r.paint(styleValue, field), st.TotalCount, len(st.ValueCounts))
	}
	_ = w.Flush()

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Total: %d unique fields across %d notes\n", len(fields), len(notes))
}

// ValuesTable renders every value of one field with its occurrence count,
// ordered by count descending then value ascending.
func (r renderer) ValuesTable(notes []vault.Note, field string, caseSensitive bool) {
	display := field
	if !caseSensitive {
		_, actual := query.FieldValuesFold(notes, field)
		if actual != field {
			display = fmt.Sprintf("%s (matched: %s)", field, actual)
		}
	}

	stats := query.FieldCounts(notes, field, caseSensitive)
	if stats.TotalCount == 0 {
		msg := fmt.Sprintf("No values found for field '%s'.", field)
		if !caseSensitive {
			msg = fmt.Sprintf("No values found for field '%s' (case-insensitive search).", field)
		}
		fmt.Fprintln(r.out, r.paint(styleNotice, msg))
		return
	}

	fmt.Fprintln(r.out, r.paint(styleHeader, fmt.Sprintf("Values for field '%s':", display)))
	fmt.Fprintln(r.out)

	type row struct {
		value string
		count int
	}
	rows := make([]row, 0, len(stats.ValueCounts))
	for value, count := range stats.ValueCounts {
		rows = append(rows, row{value: value, count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].value < rows[j].value
	})

	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tCOUNT")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%d\n", r.paint(styleValue, row.value), row.count)
	}
	_ = w.Flush()

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Total: %d unique values, %d total occurrences\n", len(rows), stats.TotalCount)
}

// truncateLeft shortens s to max runes keeping the tail, which for paths is
// the interesting end.
func truncateLeft(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return "..." + string(runes[len(runes)-max+3:])
}

// truncateRight shortens s to max runes keeping the head.
func truncateRight(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// summarizeKeys joins up to three keys, noting how many were left out.
func summarizeKeys(keys []string) string {
	if len(keys) == 0 {
		return "-"
	}
	if len(keys) <= maxKeySummary {
		return strings.Join(keys, ", ")
	}
	return fmt.Sprintf("%s, ... (+%d)", strings.Join(keys[:maxKeySummary], ", "), len(keys)-maxKeySummary)
}
