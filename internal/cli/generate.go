package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridpath/pkg/gridgen"
	gridio "github.com/matzehuels/gridpath/pkg/io"
	"github.com/matzehuels/gridpath/pkg/metric"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	side      int
	k         string
	source    int
	target    int
	span      float64
	diagonals bool
	output    string // "-" writes to stdout; empty means <n>.txt
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{k: "2", target: -1, span: gridgen.DefaultSpan}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a square grid instance",
		Long: `Generate writes a side x side grid spread evenly over [0, span] on both
axes. Vertex (i, j) gets id i*side+j. By default the source is the first
vertex and the target the last, so the path runs corner to corner.`,
		Example: `  gridpath generate --side 10            # writes 100.txt
  gridpath generate --side 30 --k inf --diagonals -o grid.txt
  gridpath generate --side 5 -o -          # print to stdout`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.side, "side", "n", 0, "vertices per grid side (required)")
	cmd.Flags().StringVarP(&opts.k, "k", "k", opts.k, "metric exponent written to the header (accepts inf)")
	cmd.Flags().IntVar(&opts.source, "source", 0, "source vertex id")
	cmd.Flags().IntVar(&opts.target, "target", opts.target, "target vertex id (-1 = last vertex)")
	cmd.Flags().Float64Var(&opts.span, "span", opts.span, "coordinate range of each axis")
	cmd.Flags().BoolVar(&opts.diagonals, "diagonals", false, "also join diagonal neighbors")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <n>.txt, - for stdout)")
	_ = cmd.MarkFlagRequired("side")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, opts generateOpts) error {
	logger := loggerFromContext(cmd.Context())

	k, err := metric.ParseExponent(opts.k)
	if err != nil {
		return fmt.Errorf("--k: %w", err)
	}
	gopts := gridgen.Options{
		Side:   opts.side,
		Span:   opts.span,
		Conn:   gridgen.Conn4,
		K:      k,
		Source: opts.source,
		Target: opts.target,
	}
	if opts.diagonals {
		gopts.Conn = gridgen.Conn8
	}

	g, err := gridgen.Generate(gopts)
	if err != nil {
		return err
	}
	logger.Debug("generated grid", "vertices", g.N(), "edges", g.M(), "k", metric.FormatExponent(k))

	if opts.output == "-" {
		return gridio.WriteInstance(cmd.OutOrStdout(), g)
	}

	out := opts.output
	if out == "" {
		out = strconv.Itoa(g.N()) + ".txt"
	}
	if err := gridio.ExportInstance(g, out); err != nil {
		return err
	}

	printSuccess("Generated %d vertices, %d edges", g.N(), g.M())
	printFile(out)
	printNextStep("Search it", fmt.Sprintf("%s search %s", appName, out))
	return nil
}
