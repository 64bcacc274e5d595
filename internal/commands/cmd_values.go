package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/fmq/internal/core/query"
)

type ValuesCmd struct {
	flags *Flags

	// flags
	scan  scanFlags
	field string
}

// NewValuesCmd creates a new values command
func NewValuesCmd(flags *Flags) *ValuesCmd {
	return &ValuesCmd{flags: flags}
}

// Register adds the values command to the application
func (cmd *ValuesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "values",
		Usage:     "List all values of a frontmatter field",
		UsageText: "fmq values [vault-path] --field <name>",
		Description: `Lists every distinct value of one frontmatter field across the vault with
occurrence counts. With --ignore-case the field name matches any cased
variant and values from all variants are merged.

Examples:
  fmq values --field status
  fmq values ~/vault -f tags -i`,
		Flags: append(cmd.scan.cliFlags(),
			&cli.StringFlag{
				Name:        "field",
				Aliases:     []string{"f"},
				Usage:       "the field to list values for",
				Required:    true,
				Destination: &cmd.field,
			},
		),
		Action: cmd.run,
	})

	return app
}

func (cmd *ValuesCmd) run(ctx context.Context, c *cli.Command) error {
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
	r.ValuesTable(matched, cmd.field, !cmd.scan.ignoreCase)
	return nil
}
