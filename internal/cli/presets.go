package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// presetsCommand lists the constraint presets from the config file.
func (c *CLI) presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List constraint presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			names := cfg.PresetNames()
			rows := make([][]string, 0, len(names))
			for _, name := range names {
				p := cfg.Presets[name]
				label := name
				if name == cfg.DefaultPreset {
					label += " " + StyleDim.Render("(default)")
				}
				rows = append(rows, []string{label, px(p.MaxWidth), px(p.MaxHeight), px(p.MinHeight), px(p.Gap)})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Preset", "Max width", "Max height", "Min height", "Gap"},
				rows, 1, 2, 3, 4,
			))
			return nil
		},
	}
}

// px formats a constraint value without trailing zeros.
func px(v float64) string {
	return fmt.Sprintf("%g", v)
}
