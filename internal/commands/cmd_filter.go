package commands

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/fmq/internal/core/config"
	"github.com/colonyops/fmq/internal/core/query"
	"github.com/colonyops/fmq/internal/core/vault"
)

type FilterCmd struct {
	flags *Flags

	// flags
	scan   scanFlags
	format string
}

// NewFilterCmd creates a new filter command
func NewFilterCmd(flags *Flags) *FilterCmd {
	return &FilterCmd{flags: flags}
}

// Register adds the filter command to the application
func (cmd *FilterCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "filter",
		Usage:     "Filter notes by frontmatter fields",
		UsageText: "fmq filter [vault-path] [--filter field=value]... [--format table|paths|json]",
		Description: `Scans the vault, parses every note's YAML frontmatter, and prints the notes
matching all given filters. A filter matches when the note has a value at
the field whose text contains the filter value.

With no filters, every note is listed.

Examples:
  fmq filter ~/vault --filter status=active
  fmq filter --filter tag=work --filter status=active -i
  fmq filter --format paths | xargs grep -l TODO`,
		Flags: append(cmd.scan.cliFlags(),
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "output format: table, paths, json",
				Destination: &cmd.format,
			},
		),
		Action: cmd.run,
	})

	return app
}

func (cmd *FilterCmd) run(ctx context.Context, c *cli.Command) error {
	filters, err := parseFilters(cmd.scan.filters)
	if err != nil {
		return err
	}

	notes, err := cmd.flags.scanVault(ctx, c.Args().First(), &cmd.scan)
	if err != nil {
		return err
	}

	matched := query.NewCriteria(filters, cmd.scan.ignoreCase).Apply(notes)

	// Scan order is unspecified; sort for stable output.
	slices.SortFunc(matched, func(a, b vault.Note) int { return strings.Compare(a.Path, b.Path) })

	r := newRenderer(c.Root().Writer, cmd.flags.Config.Output.Color)

	format := cmd.format
	if format == "" {
		format = cmd.flags.Config.Output.Format
	}

	switch strings.ToLower(format) {
	case config.FormatTable:
		r.NotesTable(matched)
	case config.FormatPaths:
		r.Paths(matched)
	case config.FormatJSON:
		return r.NotesJSON(matched)
	default:
		fmt.Fprintf(os.Stderr, "Unknown format: %s. Using table format.\n", format)
		r.NotesTable(matched)
	}

	return nil
}
