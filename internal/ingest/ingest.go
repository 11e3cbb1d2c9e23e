// Package ingest implements document ingestion: validate an upload,
// extract its plain text, normalize whitespace, and hand the text to the
// claim-extraction route.
package ingest

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Gbollysearch7/exa-hallucination-detector/internal/fault"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/model"
)

// MIME types on the ingestion allow-list
const (
	MIMETextPlain = "text/plain"
	MIMEPDF       = "application/pdf"
	MIMEDOCX      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ClaimSource extracts claims from text. In production this is the
// extract.Client calling the sibling route; tests substitute a stub.
type ClaimSource interface {
	Extract(ctx context.Context, content string) ([]model.Claim, error)
}

// Upload is one uploaded file
type Upload struct {
	Name     string
	MIMEType string
	Size     int64
	Data     []byte
}

// Result is the ingestion outcome returned to the upload route
type Result struct {
	Filename      string        `json:"filename"`
	FileSize      int64         `json:"fileSize"`
	FileType      string        `json:"fileType"`
	ExtractedText string        `json:"extractedText"` // Truncated preview
	Claims        []model.Claim `json:"claims"`
	ClaimCount    int           `json:"claimCount"`
}

// Ingestor validates uploads, extracts text and forwards it for claim extraction
type Ingestor struct {
	extractors   map[string]TextExtractor
	claims       ClaimSource
	maxFileBytes int64
	previewChars int
}

// NewIngestor creates an ingestor with the standard extractor registry
func NewIngestor(claims ClaimSource, cfg model.IngestConfig) *Ingestor {
	return &Ingestor{
		extractors: map[string]TextExtractor{
			MIMETextPlain: PlainTextExtractor{},
			MIMEPDF:       UnimplementedExtractor{Format: "PDF"},
			MIMEDOCX:      UnimplementedExtractor{Format: "DOCX"},
		},
		claims:       claims,
		maxFileBytes: cfg.MaxFileBytes,
		previewChars: cfg.PreviewChars,
	}
}

// Ingest validates the upload, extracts its text and returns the claims.
// The 5 MiB limit here is the single authoritative size check.
func (i *Ingestor) Ingest(ctx context.Context, up Upload) (*Result, error) {
	extractor, ok := i.extractors[up.MIMEType]
	if !ok {
		return nil, fault.New(fault.KindUnsupportedFileType,
			"Unsupported file type. Please upload PDF, DOCX, or TXT files.")
	}

	if err := i.CheckSize(up.Size); err != nil {
		return nil, err
	}

	text, err := extractor.ExtractText(up)
	if err != nil {
		// PDF/DOCX extraction is a declared capability gap: fall back to
		// the placeholder the route contract promises instead of failing.
		if fault.IsKind(err, fault.KindUnimplemented) {
			text = fmt.Sprintf("Document content from %s. This is a placeholder since PDF/DOCX parsing requires additional server-side libraries.", up.Name)
		} else {
			return nil, fmt.Errorf("extract text: %w", err)
		}
	}

	text = NormalizeWhitespace(text)

	claims, err := i.claims.Extract(ctx, text)
	if err != nil {
		return nil, fault.Wrap(fault.KindExtractionFailed, "Text extraction failed", err)
	}

	return &Result{
		Filename:      up.Name,
		FileSize:      up.Size,
		FileType:      up.MIMEType,
		ExtractedText: Preview(text, i.previewChars),
		Claims:        claims,
		ClaimCount:    len(claims),
	}, nil
}

// CheckSize rejects payloads over the configured limit. The upload route
// calls it from the declared size before buffering the request body, so
// an oversized file is never read into memory.
func (i *Ingestor) CheckSize(size int64) error {
	if size > i.maxFileBytes {
		return fault.Newf(fault.KindFileTooLarge,
			"File too large. Maximum size is %dMB.", i.maxFileBytes/(1024*1024))
	}
	return nil
}

var (
	spaceRuns = regexp.MustCompile(`[ \t]+`)
	blankRuns = regexp.MustCompile(`\n\s*\n`)
)

// NormalizeWhitespace collapses runs of spaces/tabs to a single space,
// collapses multiple blank lines to one blank line, and trims
func NormalizeWhitespace(text string) string {
	text = spaceRuns.ReplaceAllString(text, " ")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Preview truncates text to n characters with a trailing ellipsis marker.
// Truncation counts runes, not bytes, so a multi-byte character is never
// split into invalid UTF-8.
func Preview(text string, n int) string {
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}
	return string([]rune(text)[:n]) + "..."
}
