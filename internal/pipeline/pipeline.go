// Package pipeline orchestrates the end-to-end fact-check flow used by
// the CLI: text in, extracted claims, sources per claim, verdicts, and a
// rendered report out.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Gbollysearch7/exa-hallucination-detector/internal/cache"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/extract"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/fault"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/ingest"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/llm"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/model"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/search"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/verify"
)

// Pipeline wires the services together for in-process checking
type Pipeline struct {
	extractor *extract.Extractor
	verifier  *verify.Verifier
	searcher  *search.Client
	crawler   *search.Crawler
	validator *search.Validator
	renderer  *Renderer
	config    *model.Config
}

// NewPipeline creates a pipeline from configuration
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM, cfg.HTTP))
	if err != nil {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}

	var pageCache cache.Cache
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			if home, err := os.UserHomeDir(); err == nil {
				dir = filepath.Join(home, ".factcheck", "cache")
			}
		}
		pageCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
	}

	return &Pipeline{
		extractor: extract.NewExtractor(provider),
		verifier:  verify.NewVerifier(provider),
		searcher: search.NewClient(cfg.Search.APIKey, cfg.Search.BaseURL, cfg.Search.MaxResults,
			cfg.HTTP.Timeout, pageCache, cfg.Cache.DiskTTL),
		crawler: search.NewCrawler(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes,
			cfg.Search.RatePerSec, cfg.Search.RateBurst, pageCache, cfg.Cache.DiskTTL),
		validator: search.NewValidator(10*time.Second, cfg.Concurrency.ValidationWorkers, cfg.HTTP.UserAgent),
		renderer:  NewRenderer(),
		config:    cfg,
	}, nil
}

// CheckText fact-checks a block of text end to end
func (p *Pipeline) CheckText(ctx context.Context, subject, text string) (*model.Report, error) {
	text = ingest.NormalizeWhitespace(text)

	claims, err := p.extractor.Extract(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("extract claims: %w", err)
	}

	report := &model.Report{
		Subject:     subject,
		CheckedAt:   time.Now().UTC(),
		TextPreview: ingest.Preview(text, p.config.Ingest.PreviewChars),
		Results:     make([]model.ClaimResult, 0, len(claims)),
	}

	for _, claim := range claims {
		result := model.ClaimResult{Claim: claim}

		sources, err := p.searcher.Search(ctx, claim.Claim)
		switch {
		case fault.IsKind(err, fault.KindMissingCredential):
			// No search key configured: verify without sources
			sources = nil
		case err != nil:
			result.Error = fmt.Sprintf("search: %v", err)
			report.Results = append(report.Results, result)
			continue
		default:
			sources = p.validator.FilterAccessible(ctx, sources)
		}
		result.Sources = sources

		verdict, err := p.verifier.Verify(ctx, claim.Claim, claim.OriginalText, sources)
		if err != nil {
			result.Error = fmt.Sprintf("verify: %v", err)
		} else {
			result.Verdict = verdict
		}

		report.Results = append(report.Results, result)
	}

	report.Tally()
	return report, nil
}

// CheckFile fact-checks a local document
func (p *Pipeline) CheckFile(ctx context.Context, path string) (*model.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	if mime := mimeForPath(path); mime != ingest.MIMETextPlain {
		return nil, fault.Newf(fault.KindUnsupportedFileType,
			"cannot check %s files from the CLI: only plain text is supported", filepath.Ext(path))
	}

	return p.CheckText(ctx, filepath.Base(path), string(data))
}

// CheckURL crawls a page and fact-checks its visible text
func (p *Pipeline) CheckURL(ctx context.Context, rawURL string) (*model.Report, error) {
	text, err := p.crawler.FetchText(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}

	report, err := p.CheckText(ctx, rawURL, text)
	if err != nil {
		return nil, err
	}
	report.SourceURL = rawURL
	return report, nil
}

// RenderReport renders the report to the configured outputs
func (p *Pipeline) RenderReport(report *model.Report, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(os.Stdout, report)
	return nil
}

func mimeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".text", ".md":
		return ingest.MIMETextPlain
	case ".pdf":
		return ingest.MIMEPDF
	case ".docx":
		return ingest.MIMEDOCX
	default:
		return ""
	}
}
