package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/pickwise/internal/pipeline"
	"github.com/ppiankov/pickwise/internal/recommend"
	"github.com/ppiankov/pickwise/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Run many recommendation requests from a YAML file in parallel",
	Long: `Batch reads requests from a YAML file and runs them concurrently:
- Requests are listed under "requests:" or as a bare list
- Each entry has a product and optional attributes
- Identical requests run once
- One JSON result is written per request

Example file:
  requests:
    - product: vacuum cleaner
      attributes: [cordless]
    - product: headphones

Example:
  pickwise batch requests.yaml
  pickwise batch requests.yaml --concurrency 2 --output-dir ./picks`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent requests (default from config)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./pickwise-results", "output directory for results")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the language model response cache")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Pickwise Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	if cfg.LLM.Provider != "" {
		fmt.Fprintf(os.Stderr, "  LLM:          %s\n", cfg.LLM.Provider)
	}
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := buildPipeline(cfg, "")
	if err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	renderer := pipeline.NewRenderer()
	successCount, failureCount, emptyCount := 0, 0, 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Request.Product, result.Error)
			continue
		}

		path := filepath.Join(outputDir, resultFilename(result.Index, result.Request.Product))
		err := writeOutput(path, func(w io.Writer) error { return renderer.RenderJSON(w, result.Result) })
		if err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Request.Product, err)
			continue
		}

		successCount++
		if result.Result.Empty() {
			emptyCount++
			fmt.Fprintf(os.Stderr, "- %s: no results found\n", result.Request.Product)
			continue
		}
		fmt.Fprintf(os.Stderr, "✓ %s\n", result.Request.Product)
		renderer.RenderSummary(os.Stderr, result.Request, result.Result)
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:       %d requests\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:     %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  No results:  %d\n", emptyCount)
	fmt.Fprintf(os.Stderr, "  Failures:    %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:      %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// resultFilename builds a filesystem-safe name like "01-vacuum-cleaner.json"
func resultFilename(index int, product string) string {
	slug := strings.ToLower(strings.ReplaceAll(recommend.Sanitize(product), " ", "-"))
	if r := []rune(slug); len(r) > 80 {
		slug = strings.TrimRight(string(r[:80]), "-")
	}
	if slug == "" {
		slug = "request"
	}
	return fmt.Sprintf("%02d-%s.json", index+1, slug)
}
