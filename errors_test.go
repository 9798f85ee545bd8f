package control

import (
	"errors"
	"testing"
)

func TestWrapEvaluationErrorCreatesMetadata(t *testing.T) {
	base := errors.New("boom")
	err := wrapEvaluationError("expr", "a && missing", "obj-1", base)

	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected EvaluationError, got %T", err)
	}
	if evalErr.Engine != "expr" || evalErr.Expr != "a && missing" || evalErr.ObjectID != "obj-1" {
		t.Fatalf("unexpected metadata: %+v", evalErr)
	}
	if !errors.Is(err, base) {
		t.Fatalf("wrapped error should unwrap to base error")
	}
	if wrapEvaluationError("expr", "a", "obj", nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}

func TestWrapEvaluationErrorAugmentsExisting(t *testing.T) {
	base := errors.New("compile failure")
	existing := &EvaluationError{Engine: "expr", Err: base}

	err := wrapEvaluationError("cel", "rule", "obj-9", existing)
	if !errors.Is(err, base) {
		t.Fatalf("expected base error to unwrap")
	}
	if existing.Engine != "expr" {
		t.Fatalf("existing engine should not be overwritten, got %q", existing.Engine)
	}
	if existing.Expr != "rule" || existing.ObjectID != "obj-9" {
		t.Fatalf("expected missing metadata filled, got %+v", existing)
	}
}

func TestKeyErrorMessage(t *testing.T) {
	err := &KeyError{Op: OpResume, Key: "x"}
	if err.Error() != `control: resume: unknown key "x"` {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected KeyError to match ErrUnknownKey")
	}
}
