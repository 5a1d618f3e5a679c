package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	errs "github.com/matzehuels/mediagrid/pkg/errors"
	mio "github.com/matzehuels/mediagrid/pkg/io"
	"github.com/matzehuels/mediagrid/pkg/pipeline"
)

// stdio names standard input as a layout input.
const stdio = "-"

// layoutFile is the outcome of laying out one input file.
type layoutFile struct {
	input  string
	output string
	res    *pipeline.Result
}

// layoutCommand creates the layout command for computing grids from item lists.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output      string
		noCache     bool
		refresh     bool
		concurrency int
		flags       constraintFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [items.json...]",
		Short: "Compute mosaic layouts for item lists",
		Long: `Compute mosaic layouts for item lists.

Each input is a JSON list of items with an id, width and height:

  [{"id": "a", "width": 1600, "height": 900}, ...]

The layout is written next to the input as <input>.layout.json, or to the
file given with -o when there is a single input. Use "-" to read items from
stdin and write the layout to stdout.

Several inputs are laid out concurrently. Groups with fewer than two items
have no layout; they are reported and skipped.

Results are cached using the backend from the config file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			constraints, err := flags.resolve(cmd, cfg)
			if err != nil {
				return err
			}
			if output != "" && len(args) > 1 {
				return errs.New(errs.ErrCodeInvalidInput, "--output needs exactly one input, got %d", len(args))
			}

			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			opts := pipeline.Options{Constraints: constraints, Refresh: refresh, Logger: c.Logger}
			return c.runLayout(cmd.Context(), runner, args, output, opts, concurrency)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when a cached layout exists")
	cmd.Flags().IntVarP(&concurrency, "jobs", "j", runtime.GOMAXPROCS(0), "number of inputs laid out at once")
	flags.register(cmd)

	return cmd
}

// runLayout lays out every input and writes the results.
func (c *CLI) runLayout(ctx context.Context, runner *pipeline.Runner, inputs []string, output string, opts pipeline.Options, jobs int) error {
	if len(inputs) == 1 && inputs[0] == stdio {
		return c.layoutStdio(ctx, runner, opts)
	}

	prog := newProgress(c.Logger)
	files := make([]layoutFile, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, input := range inputs {
		g.Go(func() error {
			if err := errs.ValidatePath(input); err != nil {
				return err
			}
			items, err := mio.ImportItems(input)
			if err != nil {
				return err
			}

			res, err := runner.Execute(gctx, items, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			files[i] = layoutFile{input: input, res: res}
			if res.Layout == nil {
				return nil
			}

			out := output
			if out == "" {
				out = layoutPath(input)
			}
			if err := mio.ExportLayout(res.Layout, out); err != nil {
				return fmt.Errorf("write output %s: %w", out, err)
			}
			files[i].output = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	written := 0
	for _, f := range files {
		if f.output == "" {
			printWarning("%s: %d item(s), nothing to lay out", f.input, f.res.Stats.Items)
			continue
		}
		written++
		printFile(f.output)
		printStats(f.res.Stats, f.res.Layout, f.res.CacheHit)
	}
	prog.done(fmt.Sprintf("Laid out %d of %d file(s)", written, len(files)))

	if written > 0 {
		printNewline()
		printNextStep("Inspect", appName+" inspect "+files[0].input)
	}
	return nil
}

// layoutStdio reads items from stdin and writes the layout JSON to stdout.
func (c *CLI) layoutStdio(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) error {
	items, err := mio.ReadItems(os.Stdin)
	if err != nil {
		return fmt.Errorf("stdin: %w", err)
	}
	res, err := runner.Execute(ctx, items, opts)
	if err != nil {
		return err
	}
	return mio.WriteLayout(res.Layout, os.Stdout)
}

// layoutPath derives the default output path for an input file.
func layoutPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + layoutSuffix
}

// canvas formats the canvas size of a layout.
func canvas(l *mio.Layout) string {
	return fmt.Sprintf("%dx%d", l.Width, l.Height)
}
