package control

import "github.com/goliatone/go-reaction-control/pkg/activity"

// WithActivityHooks attaches activity hooks notified on pause, resume and
// replay. Nil entries are dropped.
func WithActivityHooks(hooks activity.Hooks) Option {
	normalized := hooks.Compact()
	return func(cfg *config) {
		cfg.activityHooks = normalized
	}
}

// WithActivityConfig replaces the emission settings. Emission is enabled by
// default whenever hooks are configured.
func WithActivityConfig(activityCfg activity.Config) Option {
	return func(cfg *config) {
		cfg.activity = activityCfg
	}
}

// WithActivityChannel sets the channel stamped on emitted events.
func WithActivityChannel(channel string) Option {
	return func(cfg *config) {
		cfg.activity.Channel = channel
	}
}

// WithActivityActor sets the actor reported on emitted events.
func WithActivityActor(actorID string) Option {
	return func(cfg *config) {
		cfg.actorID = actorID
	}
}

// ActivityHooks returns a copy of the configured hooks.
func (c *Controlled) ActivityHooks() activity.Hooks {
	if c == nil {
		return nil
	}
	return c.cfg.activityHooks.Compact()
}
