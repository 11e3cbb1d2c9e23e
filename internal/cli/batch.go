package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Gbollysearch7/exa-hallucination-detector/internal/pipeline"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/worker"
)

var (
	batchWorkers int
	batchOutDir  string
	batchTimeout time.Duration
	batchNoCache bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Fact-check multiple documents from a list file in parallel",
	Long: `Batch processes multiple documents concurrently:
- Read document paths from the input file (one per line, # for comments)
- Check documents in parallel with a configurable worker count
- Generate individual JSON and Markdown reports for each document

Example:
  factcheck batch docs.txt
  factcheck batch docs.txt --workers 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().StringVar(&batchOutDir, "output-dir", "./factcheck-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&batchNoCache, "no-cache", false, "disable cache (force fresh search/fetch)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if batchNoCache {
		cfg.Cache.Enabled = false
	}
	if batchWorkers > 0 {
		cfg.Concurrency.BatchWorkers = batchWorkers
	}

	fmt.Fprintf(os.Stderr, "Input file:  %s\n", file)
	fmt.Fprintf(os.Stderr, "Workers:     %d\n", cfg.Concurrency.BatchWorkers)
	fmt.Fprintf(os.Stderr, "Output dir:  %s\n", batchOutDir)
	fmt.Fprintln(os.Stderr)

	if err := os.MkdirAll(batchOutDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("initialize pipeline: %w", err)
	}

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.BatchWorkers)
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", result.Path, result.Err)
			continue
		}

		successCount++

		slug := sanitizeFilename(result.Path)
		jsonPath := filepath.Join(batchOutDir, slug+".json")
		mdPath := filepath.Join(batchOutDir, slug+".md")

		if err := p.RenderReport(result.Report, jsonPath, mdPath, false); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: write report: %v\n", result.Path, err)
			continue
		}

		stats := result.Report.Stats
		fmt.Fprintf(os.Stderr, "OK   %s (%d claims, %d true, %d false, %d insufficient)\n",
			result.Path, stats.Claims, stats.True, stats.False, stats.Insufficient)
	}

	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "Total:    %d documents\n", len(results))
	fmt.Fprintf(os.Stderr, "Success:  %d\n", successCount)
	fmt.Fprintf(os.Stderr, "Failures: %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "Output:   %s\n", batchOutDir)

	return nil
}

// sanitizeFilename turns a document path into a safe report file name
func sanitizeFilename(s string) string {
	s = filepath.Base(s)
	if ext := filepath.Ext(s); ext != "" {
		s = strings.TrimSuffix(s, ext)
	}

	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_", " ", "-",
	)
	s = replacer.Replace(s)

	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "report"
	}
	return s
}
