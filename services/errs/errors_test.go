package errs

import (
	"errors"
	"fmt"
	"testing"

	"freelancehub/database/repository"
)

func TestCodeOfWrapped(t *testing.T) {
	base := Conflict("Rate", ReasonDuplicateRating, "client %s already rated", "c1")
	wrapped := fmt.Errorf("handler: %w", base)

	if !IsCode(wrapped, CodeConflict) {
		t.Fatalf("expected conflict code, got %q", CodeOf(wrapped))
	}
	if got := ReasonOf(wrapped); got != ReasonDuplicateRating {
		t.Fatalf("unexpected reason: got=%q", got)
	}
	if got := MessageOf(wrapped); got != "client c1 already rated" {
		t.Fatalf("unexpected message: got=%q", got)
	}
}

func TestForeignErrorHasNoCode(t *testing.T) {
	err := errors.New("boom")
	if CodeOf(err) != "" {
		t.Fatalf("expected empty code for foreign error")
	}
	if MessageOf(err) != "boom" {
		t.Fatalf("expected passthrough message")
	}
}

func TestUpstreamKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Upstream("Hire", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected upstream error to unwrap to cause")
	}
	if Upstream("Hire", nil) != nil {
		t.Fatalf("expected nil for nil cause")
	}
}

func TestErrorString(t *testing.T) {
	err := Validation("Rate", "value must be between 1 and 5")
	want := "Rate: value must be between 1 and 5 (validation)"
	if err.Error() != want {
		t.Fatalf("unexpected string: got=%q want=%q", err.Error(), want)
	}
}

func TestFromStore(t *testing.T) {
	nf := FromStore("GetProfile", fmt.Errorf("profile f1: %w", repository.ErrNotFound), "freelancer")
	if !IsCode(nf, CodeNotFound) || MessageOf(nf) != "freelancer not found" {
		t.Fatalf("unexpected classification: %v", nf)
	}
	up := FromStore("GetProfile", errors.New("socket closed"), "freelancer")
	if !IsCode(up, CodeUpstream) {
		t.Fatalf("expected upstream, got %v", up)
	}
	if FromStore("GetProfile", nil, "freelancer") != nil {
		t.Fatalf("expected nil passthrough")
	}
}
