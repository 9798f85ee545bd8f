package control

import (
	"fmt"
	"time"
)

// Evaluator executes expressions against a rule context.
type Evaluator interface {
	Evaluate(ctx RuleContext, expr string) (any, error)
}

// RuleContext carries the inputs visible to an expression. Snapshot keys are
// exposed as top-level variables; control state is exposed under "control"
// unless a snapshot key shadows it.
type RuleContext struct {
	Snapshot map[string]any
	Now      *time.Time
	Args     map[string]any
	ObjectID string
	Paused   []string
	Pending  []string
}

func (ctx RuleContext) withDefaults() RuleContext {
	if ctx.Now == nil {
		now := time.Now()
		ctx.Now = &now
	}
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Snapshot == nil {
		ctx.Snapshot = map[string]any{}
	}
	return ctx
}

func (ctx RuleContext) environment() map[string]any {
	ctx = ctx.withDefaults()
	env := map[string]any{
		"now":  *ctx.Now,
		"args": ctx.Args,
		"control": map[string]any{
			"object_id": ctx.ObjectID,
			"paused":    stringsOrEmpty(ctx.Paused),
			"pending":   stringsOrEmpty(ctx.Pending),
		},
	}
	for key, value := range ctx.Snapshot {
		env[key] = value
	}
	return env
}

func stringsOrEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

// Evaluate runs expr against the current snapshot.
func (c *Controlled) Evaluate(expr string) (any, error) {
	return c.EvaluateWith(RuleContext{}, expr)
}

// EvaluateWith runs expr against ctx. A nil ctx.Snapshot falls back to the
// current snapshot; control state always reflects the wrapper.
func (c *Controlled) EvaluateWith(ctx RuleContext, expr string) (any, error) {
	if expr == "" {
		return nil, fmt.Errorf("control: expression must not be empty")
	}
	evaluator, err := c.resolveEvaluator()
	if err != nil {
		return nil, err
	}
	if ctx.Snapshot == nil {
		ctx.Snapshot = c.Snapshot()
	}
	ctx.ObjectID = c.id
	ctx.Paused = c.Paused()
	ctx.Pending = c.Pending()

	engine := evaluatorEngineName(evaluator)
	start := time.Now()
	value, evalErr := evaluator.Evaluate(ctx, expr)
	duration := time.Since(start)
	evalErr = wrapEvaluationError(engine, expr, c.id, evalErr)
	c.logger().LogControl(ControlLogEvent{
		Op:       OpEvaluate,
		ObjectID: c.id,
		Engine:   engine,
		Expr:     expr,
		Duration: duration,
		Err:      evalErr,
	})
	if evalErr != nil {
		return nil, evalErr
	}
	return value, nil
}

func (c *Controlled) resolveEvaluator() (Evaluator, error) {
	if c.cfg.evaluator != nil {
		return c.cfg.evaluator, nil
	}
	var exprOpts []ExprEvaluatorOption
	if c.cfg.programCache != nil {
		exprOpts = append(exprOpts, ExprWithProgramCache(c.cfg.programCache))
	}
	evaluator := NewExprEvaluator(exprOpts...)
	if evaluator == nil {
		return nil, ErrNoEvaluator
	}
	c.cfg.evaluator = evaluator
	return evaluator, nil
}

func evaluatorEngineName(e Evaluator) string {
	switch e.(type) {
	case nil:
		return "unknown"
	case *exprEvaluator:
		return "expr"
	case *celEvaluator:
		return "cel"
	default:
		if isJSEvaluator(e) {
			return "js"
		}
		return "custom"
	}
}
