package control

import (
	"github.com/goliatone/go-reaction-control/pkg/activity"
	"github.com/goliatone/go-reaction-control/pkg/reactive"
)

// Object is the plain property bag handed to the wrappers. Tracked keys are
// moved out of the map into the wrapper; every other key stays in place and is
// read and written directly.
type Object = map[string]any

// Option configures wrapper construction.
type Option func(*config)

type config struct {
	replayOnResume bool
	strictKeys     bool
	objectID       string
	actorID        string
	logger         ControlLogger
	evaluator      Evaluator
	programCache   ProgramCache
	overrides      reactive.Annotations
	storeOptions   []reactive.Option
	activityHooks  activity.Hooks
	activity       activity.Config
}

func applyOptions(opts []Option) config {
	cfg := config{
		activity: activity.Config{Enabled: true},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithReplayOnResume makes resuming a key with a buffered value push that
// value into the reactive store, producing one notification per key.
func WithReplayOnResume(enabled bool) Option {
	return func(cfg *config) {
		cfg.replayOnResume = enabled
	}
}

// WithStrictKeys rejects untracked keys in pause/resume calls and keys missing
// from the object at construction with ErrUnknownKey. The default accepts
// them silently.
func WithStrictKeys(strict bool) Option {
	return func(cfg *config) {
		cfg.strictKeys = strict
	}
}

// WithObjectID sets the identifier reported in logs and activity events.
// A random UUID is used otherwise.
func WithObjectID(id string) Option {
	return func(cfg *config) {
		cfg.objectID = id
	}
}

// WithOverrides sets per-key annotations for the auto-tracking wrapper.
func WithOverrides(overrides reactive.Annotations) Option {
	return func(cfg *config) {
		if len(overrides) == 0 {
			cfg.overrides = nil
			return
		}
		cfg.overrides = make(reactive.Annotations, len(overrides))
		for key, annotation := range overrides {
			cfg.overrides[key] = annotation
		}
	}
}

// WithStoreOptions forwards options to the reactive store factory.
func WithStoreOptions(opts ...reactive.Option) Option {
	return func(cfg *config) {
		cfg.storeOptions = append(cfg.storeOptions, opts...)
	}
}

// WithEvaluator configures the expression evaluator used by Evaluate.
func WithEvaluator(e Evaluator) Option {
	return func(cfg *config) {
		cfg.evaluator = e
	}
}
