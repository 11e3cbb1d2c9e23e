package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Gbollysearch7/exa-hallucination-detector/internal/model"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/pipeline"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/review"
)

var (
	checkJSON    string
	checkMD      string
	checkTimeout time.Duration
	checkNoCache bool
	checkQueue   bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <file-or-url>",
	Short: "Fact-check a document or web page",
	Long: `Check extracts the verifiable claims from a text file or web page,
gathers candidate sources for each claim, and verifies every claim
against its sources.

Example:
  factcheck check article.txt
  factcheck check https://example.com/post --json report.json --md report.md
  factcheck check article.txt --queue`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkJSON, "json", "", "output JSON report path")
	checkCmd.Flags().StringVar(&checkMD, "md", "", "output Markdown report path")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 5*time.Minute, "overall check timeout")
	checkCmd.Flags().BoolVar(&checkNoCache, "no-cache", false, "disable cache (force fresh search/fetch)")
	checkCmd.Flags().BoolVar(&checkQueue, "queue", false, "print the review queue after checking")
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if checkNoCache {
		cfg.Cache.Enabled = false
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("initialize pipeline: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Checking: %s\n", target)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", checkTimeout)
		fmt.Fprintln(os.Stderr)
	}

	var report *model.Report
	if isURL(target) {
		report, err = p.CheckURL(ctx, target)
	} else {
		report, err = p.CheckFile(ctx, target)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if err := p.RenderReport(report, checkJSON, checkMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if checkQueue {
		printQueue(review.FromResults(report.Results))
	}
	return nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// printQueue renders the review queue the dashboard would show
func printQueue(claims []review.Claim) {
	if len(claims) == 0 {
		fmt.Println("No claims to review.")
		return
	}
	fmt.Println("Review queue:")
	for _, c := range claims {
		fmt.Printf("  %s [%s] %s\n", c.ID, c.Severity, c.Claim.Claim)
		fmt.Printf("      %s (confidence %.0f)\n", c.Status, c.Confidence)
		if c.Correction != "" {
			fmt.Printf("      Suggested fix: %s\n", c.Correction)
		}
	}
}
