// Package scanner discovers notes under a vault root and parses their
// frontmatter across a bounded worker pool.
package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/colonyops/fmq/internal/core/report"
	"github.com/colonyops/fmq/internal/core/vault"
)

const defaultWorkers = 4

// Scanner walks one vault root. Construction validates the root; scans are
// otherwise stateless and safe to repeat.
type Scanner struct {
	root string
	exts []string
}

// Options controls one scan run.
type Options struct {
	// Lenient enables the colon-repair retry after a strict parse failure.
	Lenient bool
	// Workers bounds the parse fan-out. Zero or negative selects the default.
	Workers int
}

// New validates root and returns a scanner over it. extensions lists the
// file extensions (without dot) to pick up; empty defaults to "md".
func New(root string, extensions []string) (*Scanner, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("vault path does not exist: %s", root)
		}
		return nil, fmt.Errorf("stat vault path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault path is not a directory: %s", root)
	}

	if len(extensions) == 0 {
		extensions = []string{"md"}
	}
	return &Scanner{root: root, exts: extensions}, nil
}

// Root returns the validated vault root.
func (s *Scanner) Root() string { return s.root }

// Discover enumerates candidate note files under the root, excluding hidden
// files and directories. Paths are returned in glob order, prefixed with the
// root.
func (s *Scanner) Discover() ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(s.root), s.pattern())
	if err != nil {
		return nil, fmt.Errorf("glob vault: %w", err)
	}

	files := make([]string, 0, len(matches))
	for _, rel := range matches {
		if hasHiddenSegment(rel) {
			continue
		}
		files = append(files, filepath.Join(s.root, filepath.FromSlash(rel)))
	}

	log.Debug().Str("root", s.root).Int("files", len(files)).Msg("discovered candidate notes")
	return files, nil
}

// Scan parses every discovered note concurrently, feeding diagnostics into
// rep and returning the successfully parsed notes. A note whose frontmatter
// fails to parse is still returned (with empty frontmatter); only unreadable
// files are dropped. Result order is unspecified.
func (s *Scanner) Scan(ctx context.Context, rep *report.Reporter, opts Options) ([]vault.Note, error) {
	rep.Info(fmt.Sprintf("Scanning vault: %s", s.root))

	files, err := s.Discover()
	if err != nil {
		return nil, err
	}
	rep.Info(fmt.Sprintf("Found %d markdown files", len(files)))

	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	var (
		mu    sync.Mutex
		notes []vault.Note
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, path := range files {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			res, err := vault.ParseFile(path, opts.Lenient)
			if err != nil {
				rep.Critical(fmt.Sprintf("Failed to parse file: %v", err), path)
				return nil
			}
			if res.Warning != "" {
				rep.Warning(res.Warning, path)
			}

			mu.Lock()
			notes = append(notes, res.Note)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// All workers have joined; the reporter is exclusively ours again.
	rep.Summary(len(files), len(notes))
	return notes, nil
}

func (s *Scanner) pattern() string {
	if len(s.exts) == 1 {
		return "**/*." + s.exts[0]
	}
	return "**/*.{" + strings.Join(s.exts, ",") + "}"
}

func hasHiddenSegment(rel string) bool {
	for _, seg := range strings.Split(rel, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}
