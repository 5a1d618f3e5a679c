package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/mediagrid/pkg/config"
	errs "github.com/matzehuels/mediagrid/pkg/errors"
	"github.com/matzehuels/mediagrid/pkg/mediagrid"
)

// constraintFlags are the --preset and per-field override flags shared by
// the layout and inspect commands.
type constraintFlags struct {
	preset    string
	maxWidth  float64
	maxHeight float64
	minHeight float64
	gap       float64
}

func (f *constraintFlags) register(cmd *cobra.Command) {
	def := mediagrid.Default()
	cmd.Flags().StringVarP(&f.preset, "preset", "p", "", "constraints preset (default: the config's default_preset)")
	cmd.Flags().Float64Var(&f.maxWidth, "max-width", def.MaxWidth, "maximum canvas width in pixels")
	cmd.Flags().Float64Var(&f.maxHeight, "max-height", def.MaxHeight, "maximum canvas height in pixels")
	cmd.Flags().Float64Var(&f.minHeight, "min-height", def.MinHeight, "minimum canvas height in pixels")
	cmd.Flags().Float64Var(&f.gap, "gap", def.Gap, "gap between tiles in pixels")

	_ = cmd.RegisterFlagCompletionFunc("preset", func(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(path)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return cfg.PresetNames(), cobra.ShellCompDirectiveNoFileComp
	})
}

// resolve starts from the selected preset and applies the override flags
// that were set explicitly.
func (f *constraintFlags) resolve(cmd *cobra.Command, cfg *config.Config) (mediagrid.Constraints, error) {
	if f.preset != "" {
		if err := errs.ValidatePresetName(f.preset); err != nil {
			return mediagrid.Constraints{}, err
		}
	}
	c, err := cfg.Preset(f.preset)
	if err != nil {
		return mediagrid.Constraints{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("max-width") {
		c.MaxWidth = f.maxWidth
	}
	if flags.Changed("max-height") {
		c.MaxHeight = f.maxHeight
	}
	if flags.Changed("min-height") {
		c.MinHeight = f.minHeight
	}
	if flags.Changed("gap") {
		c.Gap = f.gap
	}
	return c, c.Validate()
}
