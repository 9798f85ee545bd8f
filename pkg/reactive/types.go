package reactive

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownAnnotation indicates an override names a key outside the
	// snapshot handed to the factory.
	ErrUnknownAnnotation = errors.New("reactive: annotation for unknown key")
	// ErrInvalidAnnotation indicates an annotation value outside the known set.
	ErrInvalidAnnotation = errors.New("reactive: invalid annotation")
)

// Annotation describes how writes to a key propagate to listeners.
type Annotation string

const (
	// Observable notifies listeners on every write.
	Observable Annotation = "observable"
	// Structural skips writes that are deeply equal to the current value.
	Structural Annotation = "structural"
	// Plain stores the value without ever notifying.
	Plain Annotation = "plain"
)

// Valid reports whether a is one of the known annotations.
func (a Annotation) Valid() bool {
	switch a {
	case Observable, Structural, Plain:
		return true
	default:
		return false
	}
}

// Annotations maps keys to their annotation.
type Annotations map[string]Annotation

// Keys returns the annotated keys sorted alphabetically.
func (a Annotations) Keys() []string {
	if len(a) == 0 {
		return nil
	}
	keys := make([]string, 0, len(a))
	for key := range a {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (a Annotations) validate() error {
	for _, key := range a.Keys() {
		if !a[key].Valid() {
			return fmt.Errorf("%w: %q for key %q", ErrInvalidAnnotation, a[key], key)
		}
	}
	return nil
}

// Change records a single applied mutation.
type Change struct {
	Key      string
	OldValue any
	NewValue any
}

// Listener receives the changes batched by one transaction.
type Listener func(changes []Change)

// Store is the observable engine the control wrapper writes through.
type Store interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	Transaction(fn func())
	Subscribe(fn Listener, keys ...string) (unsubscribe func())
	Keys() []string
}

// Factory builds an observable store from a plain snapshot. The snapshot is
// owned by the factory after the call.
type Factory func(snapshot map[string]any) (Store, error)

// Option configures store construction.
type Option func(*storeConfig)

type storeConfig struct {
	name              string
	defaultAnnotation Annotation
}

// WithName labels the store, mostly for diagnostics.
func WithName(name string) Option {
	return func(cfg *storeConfig) {
		cfg.name = name
	}
}

// WithDefaultAnnotation sets the annotation applied to keys without an
// explicit override when using AutoFactory.
func WithDefaultAnnotation(annotation Annotation) Option {
	return func(cfg *storeConfig) {
		cfg.defaultAnnotation = annotation
	}
}

func applyOptions(opts []Option) storeConfig {
	cfg := storeConfig{defaultAnnotation: Observable}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
