package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/auspexlabs/imager/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string // output file path; derived from input when empty
	styleConfig string // optional TOML style file layered under request overrides
}

// newRenderCmd creates the render command for generating a wheel chart
// from a JSON request file.
func newRenderCmd() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [request.json]",
		Short: "Render a chart request file to SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (defaults to the input name with .svg)")
	cmd.Flags().StringVar(&opts.styleConfig, "style-config", "", "TOML style file applied before request style_options")

	return cmd
}

// outputPath derives the output file path from the output flag and the
// input file name. An empty output swaps the input extension for .svg.
func outputPath(output, input string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".svg"
}

// runRender loads the request from input, merges any style config, runs
// the pipeline, and writes the SVG next to the input file.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	var req pipeline.Request
	if err := json.Unmarshal(data, &req); err != nil {
		printError("Request file is not valid JSON")
		return err
	}

	if opts.styleConfig != "" {
		base, err := loadStyleConfig(opts.styleConfig)
		if err != nil {
			return err
		}
		// File config is the base layer; request overrides win.
		if req.StyleOptions != nil {
			base = base.Merge(*req.StyleOptions)
		}
		req.StyleOptions = &base
		logger.Debugf("Applied style config %s", opts.styleConfig)
	}

	res, err := pipeline.Render(&req, logger)
	if err != nil {
		printError("Render failed")
		return err
	}
	logger.Debugf("Generated svg: %d bytes", len(res.SVG))

	out := outputPath(opts.output, input)
	if err := os.WriteFile(out, res.SVG, 0o644); err != nil {
		return err
	}

	printSuccess("Rendered %s chart", res.Type)
	printFile(out)
	if res.Metadata.GeneratedAt != "" {
		printDetail("chart date %s", res.Metadata.GeneratedAt)
	}
	return nil
}
