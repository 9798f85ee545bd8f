package control

import (
	"context"
	"errors"

	"github.com/goliatone/go-reaction-control/internal/clone"
	"github.com/goliatone/go-reaction-control/pkg/activity"
	"github.com/goliatone/go-reaction-control/pkg/reactive"
	"github.com/google/uuid"
)

// Controlled is a plain object whose tracked keys can be paused and resumed.
// Writes to a paused key land in a shadow store and never reach the reactive
// store; reads always return the latest written value.
//
// A Controlled value is not safe for concurrent use.
type Controlled struct {
	obj     Object
	keys    []string
	states  map[string]*keyState
	store   reactive.Store
	cfg     config
	id      string
	emitter *activity.Emitter
}

type keyState struct {
	active   bool
	buffered bool
	shadow   any
}

// Wrap takes control of keys on obj. The current value of every key is
// captured into a fresh snapshot, handed to factory to build the reactive
// store, and removed from obj. obj is kept by reference and continues to hold
// untracked keys. Errors from factory are returned unchanged.
func Wrap(obj Object, keys []string, factory reactive.Factory, opts ...Option) (*Controlled, error) {
	if factory == nil {
		return nil, ErrFactoryRequired
	}
	if obj == nil {
		obj = Object{}
	}
	cfg := applyOptions(opts)

	tracked := make([]string, 0, len(keys))
	states := make(map[string]*keyState, len(keys))
	snapshot := make(map[string]any, len(keys))
	for _, key := range keys {
		if _, seen := states[key]; seen {
			continue
		}
		value, ok := obj[key]
		if !ok && cfg.strictKeys {
			return nil, &KeyError{Op: OpWrap, Key: key}
		}
		tracked = append(tracked, key)
		states[key] = &keyState{active: true}
		snapshot[key] = clone.Value(value)
	}

	store, err := factory(snapshot)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrNilStore
	}
	for _, key := range tracked {
		delete(obj, key)
	}

	id := cfg.objectID
	if id == "" {
		id = uuid.NewString()
	}
	c := &Controlled{
		obj:     obj,
		keys:    tracked,
		states:  states,
		store:   store,
		cfg:     cfg,
		id:      id,
		emitter: activity.NewEmitter(cfg.activityHooks, cfg.activity, activity.Source{ObjectID: id, ActorID: cfg.actorID}),
	}
	c.logger().LogControl(ControlLogEvent{Op: OpWrap, ObjectID: id, Keys: c.Keys()})
	return c, nil
}

// Get returns the value of key. Tracked keys return the buffered shadow
// value when one exists, otherwise the reactive value.
func (c *Controlled) Get(key string) (any, bool) {
	state, ok := c.states[key]
	if !ok {
		value, found := c.obj[key]
		return value, found
	}
	if state.buffered {
		return state.shadow, true
	}
	return c.store.Get(key)
}

// Set writes value to key. A paused key buffers the value silently; an active
// key drops any buffered value and writes through the reactive store inside a
// transaction. Untracked keys are written to the object directly.
func (c *Controlled) Set(key string, value any) {
	state, ok := c.states[key]
	if !ok {
		c.obj[key] = value
		return
	}
	if !state.active {
		state.shadow = value
		state.buffered = true
		return
	}
	state.shadow = nil
	state.buffered = false
	c.store.Transaction(func() {
		c.store.Set(key, value)
	})
}

// PauseKey marks keys inactive. Pausing an inactive key is a no-op.
func (c *Controlled) PauseKey(keys ...string) error {
	var errs []error
	var paused []string
	for _, key := range keys {
		state, ok := c.states[key]
		if !ok {
			if c.cfg.strictKeys {
				errs = append(errs, &KeyError{Op: OpPause, Key: key})
			}
			continue
		}
		if state.active {
			state.active = false
			paused = append(paused, key)
		}
	}
	return c.finishPause(OpPause, paused, false, errs)
}

// PauseAll marks every tracked key inactive.
func (c *Controlled) PauseAll() error {
	var paused []string
	for _, key := range c.keys {
		state := c.states[key]
		if state.active {
			state.active = false
			paused = append(paused, key)
		}
	}
	return c.finishPause(OpPauseAll, paused, true, nil)
}

// ResumeKey marks keys active again. With replay enabled, a key holding a
// buffered value has it written through the reactive store.
func (c *Controlled) ResumeKey(keys ...string) error {
	var errs []error
	known := make([]string, 0, len(keys))
	for _, key := range keys {
		if _, ok := c.states[key]; !ok {
			if c.cfg.strictKeys {
				errs = append(errs, &KeyError{Op: OpResume, Key: key})
			}
			continue
		}
		known = append(known, key)
	}
	return c.resume(OpResume, known, false, errs)
}

// ResumeAll marks every tracked key active, applying the same replay rule as
// ResumeKey to each.
func (c *Controlled) ResumeAll() error {
	return c.resume(OpResumeAll, c.keys, true, nil)
}

func (c *Controlled) resume(op string, keys []string, all bool, errs []error) error {
	var resumed, replayed []string
	for _, key := range keys {
		state := c.states[key]
		if !state.active {
			state.active = true
			resumed = append(resumed, key)
		}
		if c.cfg.replayOnResume && state.buffered {
			value := state.shadow
			c.Set(key, value)
			replayed = append(replayed, key)
			errs = append(errs, c.emitter.Replayed(context.Background(), key, value))
		}
	}
	if len(resumed) > 0 {
		errs = append(errs, c.emitter.Resumed(context.Background(), resumed, all))
	}
	err := errors.Join(errs...)
	c.logger().LogControl(ControlLogEvent{Op: op, ObjectID: c.id, Keys: resumed, Replayed: replayed, Err: err})
	return err
}

func (c *Controlled) finishPause(op string, paused []string, all bool, errs []error) error {
	if len(paused) > 0 {
		errs = append(errs, c.emitter.Paused(context.Background(), paused, all))
	}
	err := errors.Join(errs...)
	c.logger().LogControl(ControlLogEvent{Op: op, ObjectID: c.id, Keys: paused, Err: err})
	return err
}

// Subscribe registers fn with the reactive store for changes on keys.
func (c *Controlled) Subscribe(fn reactive.Listener, keys ...string) func() {
	return c.store.Subscribe(fn, keys...)
}

// Keys returns the tracked keys in tracking order.
func (c *Controlled) Keys() []string {
	return append([]string(nil), c.keys...)
}

// Tracked reports whether key is under pause/resume control.
func (c *Controlled) Tracked(key string) bool {
	_, ok := c.states[key]
	return ok
}

// IsPaused reports whether key is tracked and currently inactive.
func (c *Controlled) IsPaused(key string) bool {
	state, ok := c.states[key]
	return ok && !state.active
}

// Paused returns the inactive keys in tracking order.
func (c *Controlled) Paused() []string {
	var out []string
	for _, key := range c.keys {
		if !c.states[key].active {
			out = append(out, key)
		}
	}
	return out
}

// Pending returns the keys whose latest write is buffered and has not reached
// the reactive store.
func (c *Controlled) Pending() []string {
	var out []string
	for _, key := range c.keys {
		if c.states[key].buffered {
			out = append(out, key)
		}
	}
	return out
}

// ObjectID returns the identifier used in logs and activity events.
func (c *Controlled) ObjectID() string {
	return c.id
}

// Object returns the wrapped object, which holds the untracked keys.
func (c *Controlled) Object() Object {
	return c.obj
}

// Store returns the reactive store backing the tracked keys.
func (c *Controlled) Store() reactive.Store {
	return c.store
}
