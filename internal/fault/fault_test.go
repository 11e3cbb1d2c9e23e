package fault

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Message(t *testing.T) {
	e := New(KindInvalidInput, "content is required")
	if e.Error() != "content is required" {
		t.Errorf("unexpected message: %s", e.Error())
	}

	wrapped := Wrap(KindUpstreamUnavailable, "search request failed", errors.New("connection refused"))
	if wrapped.Error() != "search request failed: connection refused" {
		t.Errorf("unexpected message: %s", wrapped.Error())
	}
}

func TestKindOf_ThroughChain(t *testing.T) {
	base := New(KindMissingCredential, "missing Exa API key")
	chained := fmt.Errorf("search sources: %w", fmt.Errorf("client: %w", base))

	if KindOf(chained) != KindMissingCredential {
		t.Errorf("expected missing credential through chain, got %v", KindOf(chained))
	}
	if !IsKind(chained, KindMissingCredential) {
		t.Error("IsKind should match through wrapping")
	}
	if IsKind(chained, KindInvalidInput) {
		t.Error("IsKind should not match a different kind")
	}
}

func TestKindOf_PlainError(t *testing.T) {
	if KindOf(errors.New("plain")) != KindUnknown {
		t.Error("expected unknown kind for a plain error")
	}
	if KindOf(nil) != KindUnknown {
		t.Error("expected unknown kind for nil")
	}
}

func TestWrap_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	e := Wrap(KindUpstreamUnavailable, "fetch page", cause)

	if !errors.Is(e, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindInvalidInput, "invalid_input"},
		{KindFileTooLarge, "file_too_large"},
		{KindUnimplemented, "unimplemented"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %s, want %s", tt.kind, got, tt.want)
		}
	}
}
