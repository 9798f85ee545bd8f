package control

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownKey reports a key outside the tracked set in strict mode.
	ErrUnknownKey = errors.New("control: unknown key")
	// ErrFactoryRequired reports a Wrap call without a reactive store factory.
	ErrFactoryRequired = errors.New("control: reactive store factory is required")
	// ErrNilStore reports a factory that returned neither a store nor an error.
	ErrNilStore = errors.New("control: factory returned a nil store")
	// ErrNoEvaluator reports that no expression evaluator could be resolved.
	ErrNoEvaluator = errors.New("control: evaluator not configured")
)

// KeyError describes a rejected key and the operation that rejected it.
type KeyError struct {
	Op  string
	Key string
}

func (e *KeyError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("control: %s: unknown key %q", e.Op, e.Key)
}

// Unwrap exposes ErrUnknownKey to errors.Is.
func (e *KeyError) Unwrap() error {
	return ErrUnknownKey
}

// EvaluationError captures evaluator metadata alongside the originating error.
type EvaluationError struct {
	Engine   string
	Expr     string
	ObjectID string
	Err      error
}

func (e *EvaluationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("control: %s evaluator %s object=%s: %v", e.Engine, describeExpression(e.Expr), e.ObjectID, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeExpression(expr string) string {
	if expr == "" {
		return "expr=<empty>"
	}
	return fmt.Sprintf("expr=%q", expr)
}

func wrapEvaluationError(engine, expr, objectID string, err error) error {
	if err == nil {
		return nil
	}
	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		if evalErr.Engine == "" {
			evalErr.Engine = engine
		}
		if evalErr.Expr == "" {
			evalErr.Expr = expr
		}
		if evalErr.ObjectID == "" {
			evalErr.ObjectID = objectID
		}
		return evalErr
	}
	return &EvaluationError{
		Engine:   engine,
		Expr:     expr,
		ObjectID: objectID,
		Err:      err,
	}
}
