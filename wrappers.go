package control

import (
	"sort"

	"github.com/goliatone/go-reaction-control/internal/hydrate"
	"github.com/goliatone/go-reaction-control/pkg/reactive"
)

// NewAuto tracks every key present on obj at call time. Overrides set with
// WithOverrides and store options set with WithStoreOptions are forwarded to
// reactive.AutoFactory.
func NewAuto(obj Object, opts ...Option) (*Controlled, error) {
	cfg := applyOptions(opts)
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return Wrap(obj, keys, reactive.AutoFactory(cfg.overrides, cfg.storeOptions...), opts...)
}

// New tracks exactly the keys named by annotations. A nil or empty
// annotation set tracks nothing and the wrapper is a pure pass-through.
func New(obj Object, annotations reactive.Annotations, opts ...Option) (*Controlled, error) {
	cfg := applyOptions(opts)
	return Wrap(obj, annotations.Keys(), reactive.ExplicitFactory(annotations, cfg.storeOptions...), opts...)
}

// NewAutoFrom flattens value (a struct or map) into an Object keyed by its
// JSON field names and wraps it with NewAuto.
func NewAutoFrom(value any, opts ...Option) (*Controlled, error) {
	obj, err := hydrate.Encode(value)
	if err != nil {
		return nil, err
	}
	return NewAuto(obj, opts...)
}
