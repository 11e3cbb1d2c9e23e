package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Gbollysearch7/exa-hallucination-detector/internal/model"
)

// Checker runs the full fact-check pipeline against one file
type Checker interface {
	CheckFile(ctx context.Context, path string) (*model.Report, error)
}

// CheckJob fact-checks a single document
type CheckJob struct {
	Path    string
	Checker Checker
}

// Execute runs the check job
func (j *CheckJob) Execute(ctx context.Context) Result {
	report, err := j.Checker.CheckFile(ctx, j.Path)
	return &CheckResult{Path: j.Path, Report: report, Err: err}
}

// CheckResult is the outcome of checking one document
type CheckResult struct {
	Path   string
	Report *model.Report
	Err    error
}

// GetError returns the error from the check result
func (r *CheckResult) GetError() error {
	return r.Err
}

// BatchProcessor fact-checks multiple documents concurrently
type BatchProcessor struct {
	checker     Checker
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(checker Checker, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		checker:     checker,
		concurrency: concurrency,
	}
}

// ProcessPaths checks the given documents concurrently
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*CheckResult {
	if len(paths) == 0 {
		return []*CheckResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&CheckJob{Path: path, Checker: b.checker})
	}

	results := pool.Wait()

	checkResults := make([]*CheckResult, len(results))
	for i, result := range results {
		checkResults[i] = result.(*CheckResult)
	}

	return checkResults
}

// ProcessFile reads document paths from a list file and checks them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]*CheckResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read paths: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads document paths from a file (one per line),
// skipping blanks, comments and duplicates
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
