// Package fault carries the error taxonomy shared by the services and the
// HTTP layer. Services return *Error values wrapped in the usual
// fmt.Errorf("verb: %w", err) chains; the HTTP layer recovers the kind
// with KindOf to pick a status code.
package fault

import (
	"errors"
	"fmt"
)

// Kind classifies an error for status mapping
type Kind int

const (
	// KindUnknown is any error that did not originate in this taxonomy
	KindUnknown Kind = iota
	// KindInvalidInput means the caller-supplied payload is missing required fields
	KindInvalidInput
	// KindMissingCredential means a required API key is not configured
	KindMissingCredential
	// KindUpstreamUnavailable means the upstream endpoint returned a non-success status
	KindUpstreamUnavailable
	// KindUpstreamParse means the model output was empty or not valid JSON
	KindUpstreamParse
	// KindSchemaViolation means the model output parsed but did not match the required shape
	KindSchemaViolation
	// KindUnsupportedFileType means the uploaded MIME type is not on the allow-list
	KindUnsupportedFileType
	// KindFileTooLarge means the upload exceeds the ingestion size limit
	KindFileTooLarge
	// KindExtractionFailed wraps a claim-extraction failure during ingestion
	KindExtractionFailed
	// KindUnimplemented marks a declared but unimplemented capability (PDF/DOCX extraction)
	KindUnimplemented
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindMissingCredential:
		return "missing_credential"
	case KindUpstreamUnavailable:
		return "upstream_unavailable"
	case KindUpstreamParse:
		return "upstream_parse"
	case KindSchemaViolation:
		return "schema_violation"
	case KindUnsupportedFileType:
		return "unsupported_file_type"
	case KindFileTooLarge:
		return "file_too_large"
	case KindExtractionFailed:
		return "extraction_failed"
	case KindUnimplemented:
		return "unimplemented"
	default:
		return "unknown"
	}
}

// Error is a classified error with an optional wrapped cause
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a classified error
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates a classified error with a formatted message
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a classified error around a cause
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

// IsKind reports whether err's chain contains an *Error of the given kind
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
