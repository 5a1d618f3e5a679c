package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/mediagrid/pkg/errors"
	mio "github.com/matzehuels/mediagrid/pkg/io"
	"github.com/matzehuels/mediagrid/pkg/pipeline"
)

// layoutSuffix marks files written by the layout command.
const layoutSuffix = ".layout.json"

// Output formats of the inspect command.
const (
	formatTable = "table"
	formatJSON  = "json"
)

// inspectCommand prints the tiles of a layout as a table.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		noCache bool
		format  string
		flags   constraintFlags
	)

	cmd := &cobra.Command{
		Use:   "inspect <items.json|file.layout.json>",
		Short: "Show the tiles of a layout",
		Long: `Show the tiles of a layout as a table.

An items file is laid out first, using the preset and override flags. A
*.layout.json file written by the layout command is shown as is.

With --format json the layout is printed as JSON instead of a table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if err := errs.ValidatePath(input); err != nil {
				return err
			}
			if err := errs.ValidateFormat(format); err != nil {
				return err
			}

			if strings.HasSuffix(input, layoutSuffix) {
				l, err := mio.ImportLayout(input)
				if err != nil {
					return err
				}
				return showLayout(cmd, l, format)
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			constraints, err := flags.resolve(cmd, cfg)
			if err != nil {
				return err
			}
			items, err := mio.ImportItems(input)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			res, err := runner.Execute(cmd.Context(), items, pipeline.Options{Constraints: constraints, Logger: c.Logger})
			if err != nil {
				return err
			}
			if res.Layout == nil {
				printWarning("%d item(s), nothing to lay out", res.Stats.Items)
				return nil
			}

			if format == formatJSON {
				return mio.WriteLayout(res.Layout, cmd.OutOrStdout())
			}
			printLayout(cmd, res.Layout)
			printKeyValue("Hash", res.ItemsHash[:12])
			printKeyValue("Cached", fmt.Sprint(res.CacheHit))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: table or json")
	flags.register(cmd)

	return cmd
}

// showLayout prints l in the requested format.
func showLayout(cmd *cobra.Command, l *mio.Layout, format string) error {
	if format == formatJSON {
		return mio.WriteLayout(l, cmd.OutOrStdout())
	}
	printLayout(cmd, l)
	return nil
}

// printLayout prints the tile table and a canvas summary.
func printLayout(cmd *cobra.Command, l *mio.Layout) {
	rows := make([][]string, len(l.Tiles))
	for i, t := range l.Tiles {
		width := "-"
		if t.Width > 0 {
			width = itoa(t.Width)
		}
		rows[i] = []string{
			itoa(i),
			t.Element.ID,
			itoa(t.StartRow),
			itoa(t.StartCol),
			itoa(t.RowSpan),
			itoa(t.ColSpan),
			width,
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Tile", "Item", "Row", "Col", "Rows", "Cols", "Width"},
		rows, 0, 2, 3, 4, 5, 6,
	))
	printKeyValue("Canvas", canvas(l))
	printKeyValue("Columns", joinInts(l.ColumnSizes))
	printKeyValue("Rows", joinInts(l.RowSizes))
}

// joinInts formats track sizes as "120 240 120".
func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = itoa(n)
	}
	return strings.Join(parts, " ")
}
