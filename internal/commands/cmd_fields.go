package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/fmq/internal/core/query"
)

type FieldsCmd struct {
	flags *Flags

	// flags
	scan scanFlags
}

// NewFieldsCmd creates a new fields command
func NewFieldsCmd(flags *Flags) *FieldsCmd {
	return &FieldsCmd{flags: flags}
}

// Register adds the fields command to the application
func (cmd *FieldsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "fields",
		Usage:     "List all frontmatter fields in the vault",
		UsageText: "fmq fields [vault-path] [--filter field=value]...",
		Description: `Lists every frontmatter key found across the vault, with the number of
occurrences and distinct values per key. Filters narrow the note set before
counting.`,
		Flags:  cmd.scan.cliFlags(),
		Action: cmd.run,
	})

	return app
}

func (cmd *FieldsCmd) run(ctx context.Context, c *cli.Command) error {
	filters, err := parseFilters(cmd.scan.filters)
	if err != nil {
		return err
	}

	notes, err := cmd.flags.scanVault(ctx, c.Args().First(), &cmd.scan)
	if err != nil {
		return err
	}

	matched := query.NewCriteria(filters, cmd.scan.ignoreCase).Apply(notes)

	r := newRenderer(c.Root().Writer, cmd.flags.Config.Output.Color)
	r.FieldsTable(matched)
	return nil
}
