package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridpath/pkg/graph"
	"github.com/matzehuels/gridpath/pkg/pipeline"
	"github.com/matzehuels/gridpath/pkg/render"
)

// labelLimit is the vertex count up to which ids are drawn by default.
const labelLimit = 100

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output string  // output file; the extension picks the format
	labels bool    // draw vertex ids
	width  float64 // drawing width in inches
	noPath bool    // draw the graph without searching
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags searchFlags
	opts := renderOpts{width: render.DefaultWidth}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Draw an instance with its shortest path highlighted",
		Long: `Render searches the instance and draws it with Graphviz, every vertex pinned
at its coordinate. The output format follows the file extension: .svg, .dot,
.pdf or .png (pdf and png need rsvg-convert from librsvg).`,
		Example: `  gridpath render 100.txt
  gridpath render 100.txt --k 0 -o unit.svg
  gridpath render 100.txt -o grid.dot --no-path`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sopts, err := flags.options(cmd, args[0], c.Config)
			if err != nil {
				return err
			}
			return c.runRender(cmd, sopts, flags.noCache, opts)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <input>.svg)")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, fmt.Sprintf("draw vertex ids (default on for up to %d vertices)", labelLimit))
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "drawing width in inches")
	cmd.Flags().BoolVar(&opts.noPath, "no-path", false, "draw the graph only, without searching")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, sopts pipeline.Options, noCache bool, opts renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	var (
		g    *graph.Graph[string]
		path []string
	)
	if opts.noPath {
		runner, err := c.newRunner(ctx, true)
		if err != nil {
			return err
		}
		defer runner.Close()
		inst, err := runner.Load(ctx, sopts.Path)
		if err != nil {
			return err
		}
		if g, err = sopts.Apply(inst.Graph); err != nil {
			return err
		}
	} else {
		result, err := c.execute(ctx, sopts, noCache)
		if err != nil {
			return err
		}
		g, path = result.Graph, result.Search.Path
		if !result.Search.Reachable() {
			printWarning("Target %s is unreachable; drawing the graph only", g.Target())
		}
	}

	if !cmd.Flags().Changed("labels") {
		opts.labels = g.N() <= labelLimit
	}
	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(sopts.Path, filepath.Ext(sopts.Path)) + ".svg"
	}
	format := render.FormatFromPath(out)

	dot := render.ToDOT(g, path, render.Options{Labels: opts.labels, Width: opts.width})
	data, err := render.Export(ctx, dot, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	logger.Debug("rendered", "format", format, "bytes", len(data))

	printSuccess("Rendered %d vertices, %d edges", g.N(), g.M())
	printFile(out)
	return nil
}
