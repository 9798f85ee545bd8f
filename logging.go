package control

import "time"

// Operation names reported in ControlLogEvent.Op.
const (
	OpWrap      = "wrap"
	OpPause     = "pause"
	OpResume    = "resume"
	OpPauseAll  = "pause_all"
	OpResumeAll = "resume_all"
	OpEvaluate  = "evaluate"
)

// ControlLogEvent describes one control operation for logging.
type ControlLogEvent struct {
	Op       string
	ObjectID string
	Keys     []string
	Replayed []string
	Engine   string
	Expr     string
	Duration time.Duration
	Err      error
}

// ControlLogger records control events.
type ControlLogger interface {
	LogControl(ControlLogEvent)
}

// ControlLoggerFunc adapts a function to ControlLogger.
type ControlLoggerFunc func(ControlLogEvent)

// LogControl implements ControlLogger.
func (f ControlLoggerFunc) LogControl(event ControlLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopControlLogger struct{}

func (noopControlLogger) LogControl(ControlLogEvent) {}

// WithLogger attaches a control logger to the wrapper.
func WithLogger(logger ControlLogger) Option {
	return func(cfg *config) {
		if logger == nil {
			cfg.logger = noopControlLogger{}
			return
		}
		cfg.logger = logger
	}
}

func (c *Controlled) logger() ControlLogger {
	if c.cfg.logger != nil {
		return c.cfg.logger
	}
	return noopControlLogger{}
}
