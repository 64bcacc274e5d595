// Package report collects per-note diagnostics during a scan and renders the
// final summary. A single Reporter is shared by every scan worker; all state
// is guarded by one mutex and each record call is O(1).
package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
)

// Level classifies a diagnostic entry.
type Level int

const (
	LevelCritical Level = iota
	LevelWarning
	LevelInfo
)

// Summary categories for genuinely failed notes. Warnings are classified by
// message sniffing; the names are part of the user-facing output format.
const (
	CategoryFrontmatter = "Frontmatter parsing errors"
	CategoryFileParse   = "File parsing errors"
	CategoryFileRead    = "File read errors"
	CategoryOther       = "Other errors"
)

// lenientMarker identifies warnings that record a successful lenient repair.
// Those are tallied separately from genuine parse failures.
const lenientMarker = "Used lenient parsing"

// Entry is one recorded diagnostic.
type Entry struct {
	Level   Level
	Message string
	Path    string
}

// Reporter is the shared diagnostics sink for one scan run. Critical entries
// print immediately; warnings and info print only in verbose mode; silent
// mode additionally suppresses info and the summary.
type Reporter struct {
	mu         sync.Mutex
	verbose    bool
	silent     bool
	out        io.Writer
	errw       io.Writer
	entries    []Entry
	categories map[string]int
	lenient    int
}

// New returns a reporter writing to stdout/stderr.
func New(verbose, silent bool) *Reporter {
	return NewWithWriters(verbose, silent, os.Stdout, os.Stderr)
}

// NewWithWriters returns a reporter with explicit writers, for tests.
func NewWithWriters(verbose, silent bool, out, errw io.Writer) *Reporter {
	return &Reporter{
		verbose:    verbose,
		silent:     silent,
		out:        out,
		errw:       errw,
		categories: map[string]int{},
	}
}

// Critical records a fatal-per-note diagnostic. Always printed.
func (r *Reporter) Critical(message, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, Entry{Level: LevelCritical, Message: message, Path: path})
	if path != "" {
		fmt.Fprintf(r.errw, "Error: %s (%s)\n", message, path)
	} else {
		fmt.Fprintf(r.errw, "Error: %s\n", message)
	}
}

// Warning records a non-fatal diagnostic. Printed only in verbose mode.
// Lenient-repair warnings feed the repaired counter; everything else is
// classified into a summary category.
func (r *Reporter) Warning(message, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, Entry{Level: LevelWarning, Message: message, Path: path})

	if strings.Contains(message, lenientMarker) {
		r.lenient++
	} else {
		r.categories[classify(message)]++
	}

	if r.verbose {
		if path != "" {
			fmt.Fprintf(r.errw, "Warning: %s (%s)\n", message, path)
		} else {
			fmt.Fprintf(r.errw, "Warning: %s\n", message)
		}
	}
}

// Info records a progress message. Printed only in verbose mode, and never
// in silent mode.
func (r *Reporter) Info(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, Entry{Level: LevelInfo, Message: message})
	if r.verbose && !r.silent {
		fmt.Fprintln(r.out, message)
	}
}

// Summary prints the final scan report. Callers must ensure every worker has
// finished recording first. Silent mode suppresses the whole summary.
func (r *Reporter) Summary(total, succeeded int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.silent {
		return
	}

	fmt.Fprintf(r.out, "Successfully parsed %d notes\n", succeeded)

	if r.lenient > 0 {
		fmt.Fprintf(r.out, "Fixed %d files with lenient parsing (frontmatter with colons in values)\n", r.lenient)
	}

	failed := 0
	for _, n := range r.categories {
		failed += n
	}
	if failed == 0 {
		return
	}

	fmt.Fprintf(r.out, "Skipped %d files due to parsing errors:\n", failed)

	names := make([]string, 0, len(r.categories))
	for name := range r.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(r.out, "  - %s: %d files\n", name, r.categories[name])
	}

	if !r.verbose {
		fmt.Fprintln(r.out, "Use --verbose/-v to see detailed error messages")
	}
}

// classify maps a warning message to its summary category. This is a display
// convenience only; the sniffed substrings match the warning texts emitted by
// the frontmatter parser and the scanner.
func classify(message string) string {
	switch {
	case strings.Contains(message, "frontmatter"):
		return CategoryFrontmatter
	case strings.Contains(message, "Failed to parse"):
		return CategoryFileParse
	case strings.Contains(message, "Failed to read"):
		return CategoryFileRead
	default:
		return CategoryOther
	}
}

// CriticalCount returns the number of critical entries recorded.
func (r *Reporter) CriticalCount() int { return r.countLevel(LevelCritical) }

// WarningCount returns the number of warning entries recorded.
func (r *Reporter) WarningCount() int { return r.countLevel(LevelWarning) }

// LenientCount returns the number of successful lenient repairs recorded.
func (r *Reporter) LenientCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lenient
}

// Categories returns a copy of the per-category failure counts.
func (r *Reporter) Categories() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]int, len(r.categories))
	for k, v := range r.categories {
		out[k] = v
	}
	return out
}

func (r *Reporter) countLevel(level Level) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, e := range r.entries {
		if e.Level == level {
			n++
		}
	}
	return n
}
