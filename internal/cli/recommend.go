package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/pickwise/internal/model"
	"github.com/ppiankov/pickwise/internal/pipeline"
)

var (
	attributes   []string
	evidencePath string
	outputFormat string
	outputPath   string
	timeout      time.Duration
	noCache      bool
	noReddit     bool
	noYouTube    bool
)

// recommendCmd represents the recommend command
var recommendCmd = &cobra.Command{
	Use:   "recommend <product> [--attr <attribute>...]",
	Short: "Pick the best-supported product for a category",
	Long: `Recommend searches discussion threads and review videos for a product
category, extracts the models people mention, and prints one pick per source.

Example:
  pickwise recommend "vacuum cleaner" --attr cordless --attr cheap
  pickwise recommend headphones --attr wireless --format markdown -o picks.md
  pickwise recommend "gaming pc" --evidence captured.yaml
  pickwise recommend laptop --llm-provider openai`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringSliceVarP(&attributes, "attr", "a", nil, "desired attribute (repeatable)")
	recommendCmd.Flags().StringVar(&evidencePath, "evidence", "", "read evidence from a YAML/JSON file instead of the network")
	recommendCmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format: json, markdown, summary")
	recommendCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path (default stdout)")
	recommendCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall request timeout")
	recommendCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the language model response cache")
	recommendCmd.Flags().BoolVar(&noReddit, "no-reddit", false, "skip the forum stream")
	recommendCmd.Flags().BoolVar(&noYouTube, "no-youtube", false, "skip the video stream")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	req := model.Request{Product: strings.Join(args, " "), Attributes: attributes}
	if err := req.Validate(); err != nil {
		return err
	}

	render, err := rendererFor(outputFormat, req)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if noReddit {
		cfg.Sources.Reddit.Enabled = false
	}
	if noYouTube {
		cfg.Sources.YouTube.Enabled = false
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Searching: %s\n", req.Product)
		if len(req.Attributes) > 0 {
			fmt.Fprintf(os.Stderr, "Attributes: %s\n", strings.Join(req.Attributes, ", "))
		}
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintln(os.Stderr)
	}

	p, err := buildPipeline(cfg, evidencePath)
	if err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result, err := p.Recommend(ctx, req)
	if err != nil {
		return fmt.Errorf("recommend failed: %w", err)
	}

	if result.Empty() {
		fmt.Fprintf(os.Stderr, "No results found for %q\n", req.Product)
	}

	if err := writeOutput(outputPath, func(w io.Writer) error { return render(w, result) }); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	if verbose && outputPath != "" {
		fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", outputPath)
	}
	return nil
}

// rendererFor maps an output format name to a render function
func rendererFor(format string, req model.Request) (func(io.Writer, *model.Result) error, error) {
	r := pipeline.NewRenderer()
	switch strings.ToLower(format) {
	case "json":
		return r.RenderJSON, nil
	case "markdown", "md":
		return func(w io.Writer, result *model.Result) error {
			return r.RenderMarkdown(w, req, result)
		}, nil
	case "summary":
		return func(w io.Writer, result *model.Result) error {
			r.RenderSummary(w, req, result)
			return nil
		}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (supported: json, markdown, summary)", format)
	}
}
