package ingest

import (
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/fault"
)

// TextExtractor extracts plain text from one upload format.
// Variants are registered per MIME type so callers can tell real
// extraction from a stub.
type TextExtractor interface {
	ExtractText(up Upload) (string, error)
}

// PlainTextExtractor decodes the upload bytes directly
type PlainTextExtractor struct{}

// ExtractText returns the upload bytes as text
func (PlainTextExtractor) ExtractText(up Upload) (string, error) {
	return string(up.Data), nil
}

// UnimplementedExtractor marks a format the service accepts but cannot
// yet parse. It always fails with an Unimplemented fault rather than
// fabricating content.
type UnimplementedExtractor struct {
	Format string
}

// ExtractText always returns an Unimplemented fault
func (e UnimplementedExtractor) ExtractText(Upload) (string, error) {
	return "", fault.Newf(fault.KindUnimplemented, "%s text extraction is not implemented", e.Format)
}
