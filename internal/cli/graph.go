package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowlens/flowlens/pkg/config"
	"github.com/flowlens/flowlens/pkg/errors"
	flowio "github.com/flowlens/flowlens/pkg/io"
	"github.com/flowlens/flowlens/pkg/render"
	"github.com/flowlens/flowlens/pkg/workflow"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	format   string  // output format: json, dot, svg, png
	output   string  // output file path (stdout if empty)
	detailed bool    // include tool metadata in node labels
	scale    float64 // PNG resolution multiplier
}

// newGraphCmd creates the graph command.
// It extracts the tool graph from a workflow and renders it in the
// requested format. The default format comes from the config file.
func newGraphCmd() *cobra.Command {
	opts := graphOpts{scale: 2.0}

	cmd := &cobra.Command{
		Use:   "graph <workflow.yxmd>",
		Short: "Render the tool graph as JSON, DOT, SVG, or PNG",
		Long: `Extract the tool graph from a workflow document and render it.

Formats:
  json  nodes and edges with tool metadata (machine-readable)
  dot   Graphviz source for further processing
  svg   vector diagram (rendered with embedded Graphviz)
  png   raster diagram (requires librsvg)

Examples:
  flowlens graph pipeline.yxmd                      # JSON to stdout
  flowlens graph pipeline.yxmd --format dot
  flowlens graph pipeline.yxmd --format svg -o pipeline.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runGraph(c.Context(), &opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: json, dot, svg, png (default from config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include tool metadata in node labels")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG resolution multiplier")

	return cmd
}

func runGraph(ctx context.Context, opts *graphOpts, path string) error {
	logger := loggerFromContext(ctx)

	format := opts.format
	if format == "" {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		format = cfg.Render.Format
	}

	logger.Infof("Parsing %s", path)
	wf, err := workflow.Parse(path)
	if err != nil {
		return err
	}

	g, err := workflow.ToGraph(wf)
	if err != nil {
		return err
	}
	logger.Debugf("Graph has %d tools and %d connections", g.NodeCount(), g.EdgeCount())

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	prog := newProgress(logger)
	switch format {
	case "json":
		err = flowio.WriteGraphJSON(g, out)
	case "dot":
		_, err = fmt.Fprint(out, render.ToDOT(g, render.Options{Detailed: opts.detailed}))
	case "svg":
		var svg []byte
		if svg, err = render.RenderSVG(render.ToDOT(g, render.Options{Detailed: opts.detailed})); err == nil {
			_, err = out.Write(svg)
		}
	case "png":
		var png []byte
		if png, err = render.RenderPNG(render.ToDOT(g, render.Options{Detailed: opts.detailed}), opts.scale); err == nil {
			_, err = out.Write(png)
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported graph format %q (json, dot, svg, png)", format)
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s graph", format))

	if opts.output != "" {
		printFile(opts.output)
	}
	return nil
}
