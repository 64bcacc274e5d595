package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/fmq/internal/core/query"
	"github.com/colonyops/fmq/internal/core/report"
	"github.com/colonyops/fmq/internal/core/scanner"
	"github.com/colonyops/fmq/internal/core/vault"
)

// scanFlags are the flags shared by every vault-scanning command.
type scanFlags struct {
	filters    []string
	ignoreCase bool
	verbose    bool
	silent     bool
	strict     bool
}

func (s *scanFlags) cliFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "filter",
			Usage:       "filter by field=value pairs (repeatable)",
			Destination: &s.filters,
		},
		&cli.BoolFlag{
			Name:        "ignore-case",
			Aliases:     []string{"i"},
			Usage:       "case-insensitive matching for field names and filters",
			Destination: &s.ignoreCase,
		},
		&cli.BoolFlag{
			Name:        "verbose",
			Aliases:     []string{"v"},
			Usage:       "show detailed warning messages",
			Destination: &s.verbose,
		},
		&cli.BoolFlag{
			Name:        "silent",
			Aliases:     []string{"s"},
			Usage:       "suppress the scan summary and info messages",
			Destination: &s.silent,
		},
		&cli.BoolFlag{
			Name:        "strict",
			Usage:       "strict YAML parsing (disable lenient handling of colons in values)",
			Destination: &s.strict,
		},
	}
}

// parseFilters converts raw field=value arguments into query filters.
func parseFilters(raw []string) ([]query.Filter, error) {
	filters := make([]query.Filter, 0, len(raw))
	for _, r := range raw {
		key, value, ok := strings.Cut(r, "=")
		if !ok {
			return nil, fmt.Errorf("invalid filter format %q: use field=value", r)
		}
		filters = append(filters, query.Filter{Key: key, Value: value})
	}
	return filters, nil
}

// scanVault runs the shared discover-and-parse flow for a command.
func (f *Flags) scanVault(ctx context.Context, root string, sf *scanFlags) ([]vault.Note, error) {
	if root == "" {
		root = "."
	}

	sc, err := scanner.New(root, f.Config.Scan.Extensions)
	if err != nil {
		return nil, err
	}

	rep := report.New(sf.verbose, sf.silent)
	return sc.Scan(ctx, rep, scanner.Options{
		Lenient: !sf.strict,
		Workers: f.Config.Scan.Workers,
	})
}
