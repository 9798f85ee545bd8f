// Package zerologsink writes control log events through a zerolog.Logger.
package zerologsink

import (
	control "github.com/goliatone/go-reaction-control"
	"github.com/rs/zerolog"
)

// Logger adapts zerolog to control.ControlLogger. Failed operations log at
// error level, evaluations at debug level and everything else at info level.
type Logger struct {
	Log zerolog.Logger
}

// New returns a Logger writing to log.
func New(log zerolog.Logger) Logger {
	return Logger{Log: log}
}

// LogControl implements control.ControlLogger.
func (l Logger) LogControl(event control.ControlLogEvent) {
	var entry *zerolog.Event
	switch {
	case event.Err != nil:
		entry = l.Log.Error().Err(event.Err)
	case event.Op == control.OpEvaluate:
		entry = l.Log.Debug()
	default:
		entry = l.Log.Info()
	}

	entry = entry.Str("op", event.Op).Str("object_id", event.ObjectID)
	if len(event.Keys) > 0 {
		entry = entry.Strs("keys", event.Keys)
	}
	if len(event.Replayed) > 0 {
		entry = entry.Strs("replayed", event.Replayed)
	}
	if event.Engine != "" {
		entry = entry.Str("engine", event.Engine).Str("expr", event.Expr).Dur("duration", event.Duration)
	}
	entry.Msg("reaction control")
}

var _ control.ControlLogger = Logger{}
