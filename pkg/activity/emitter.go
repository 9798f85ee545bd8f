package activity

import (
	"context"
	"slices"
	"strings"
)

// DefaultChannel is applied to events emitted without an explicit channel.
const DefaultChannel = "reactions"

// Config controls activity emission for one wrapper.
type Config struct {
	Enabled bool
	Channel string
}

// Source identifies the wrapper and actor stamped on every emitted event.
type Source struct {
	ObjectID string
	ActorID  string
}

// Emitter reports the transitions of a single wrapper to hooks.
type Emitter struct {
	hooks   Hooks
	enabled bool
	channel string
	source  Source
}

// NewEmitter constructs an emitter bound to source. It is disabled when cfg
// disables it or no non-nil hook remains.
func NewEmitter(hooks Hooks, cfg Config, source Source) *Emitter {
	channel := strings.TrimSpace(cfg.Channel)
	if channel == "" {
		channel = DefaultChannel
	}
	compacted := hooks.Compact()
	return &Emitter{
		hooks:   compacted,
		enabled: cfg.Enabled && len(compacted) > 0,
		channel: channel,
		source:  source,
	}
}

// Enabled reports whether emissions should be attempted.
func (e *Emitter) Enabled() bool {
	return e != nil && e.enabled
}

// Paused reports keys moving to the inactive state. all marks PauseAll.
func (e *Emitter) Paused(ctx context.Context, keys []string, all bool) error {
	return e.emit(ctx, Event{Verb: VerbPaused, Keys: keys, All: all})
}

// Resumed reports keys moving back to the active state. all marks ResumeAll.
func (e *Emitter) Resumed(ctx context.Context, keys []string, all bool) error {
	return e.emit(ctx, Event{Verb: VerbResumed, Keys: keys, All: all})
}

// Replayed reports a buffered value pushed into the reactive store.
func (e *Emitter) Replayed(ctx context.Context, key string, value any) error {
	return e.emit(ctx, Event{Verb: VerbReplayed, Keys: []string{key}, Value: value})
}

func (e *Emitter) emit(ctx context.Context, event Event) error {
	if !e.Enabled() || len(event.Keys) == 0 {
		return nil
	}
	event.ObjectID = e.source.ObjectID
	event.ActorID = e.source.ActorID
	event.Channel = e.channel
	event.Keys = slices.Clone(event.Keys)
	return e.hooks.Notify(ctx, event)
}
