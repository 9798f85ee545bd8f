//go:build !js_eval

package control

// JSEvaluatorOption configures the JS evaluator.
type JSEvaluatorOption func(*struct{})

// JSWithProgramCache is accepted for API parity; it has no effect without
// the js_eval build tag.
func JSWithProgramCache(ProgramCache) JSEvaluatorOption {
	return nil
}

// NewJSEvaluator is unavailable without the js_eval build tag and returns nil.
func NewJSEvaluator(...JSEvaluatorOption) Evaluator {
	return nil
}

func isJSEvaluator(Evaluator) bool {
	return false
}

func jsEvaluatorAvailable() bool {
	return false
}
