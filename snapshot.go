package control

import (
	"github.com/goliatone/go-reaction-control/internal/clone"
	"github.com/goliatone/go-reaction-control/internal/hydrate"
)

// Snapshot returns a detached copy of every property as readers see it:
// untracked keys from the object plus tracked keys resolved through Get.
func (c *Controlled) Snapshot() map[string]any {
	out := clone.Map(c.obj)
	if out == nil {
		out = make(map[string]any, len(c.keys))
	}
	for _, key := range c.keys {
		value, _ := c.Get(key)
		out[key] = clone.Value(value)
	}
	return out
}

// DecodeOption configures how Decode hydrates a snapshot.
type DecodeOption[T any] func(*hydrate.Decoder[T])

// DecodeStrict rejects snapshot keys that T has no field for.
func DecodeStrict[T any]() DecodeOption[T] {
	return DecodeOption[T](hydrate.WithDisallowUnknownFields[T]())
}

// DecodeUseNumber decodes numbers held in interface values as json.Number.
func DecodeUseNumber[T any]() DecodeOption[T] {
	return DecodeOption[T](hydrate.WithUseNumber[T]())
}

// DecodeWithPreHook lets hook rewrite a copy of the snapshot before it is
// decoded. Returning a nil map keeps the payload unchanged.
func DecodeWithPreHook[T any](hook func(map[string]any) (map[string]any, error)) DecodeOption[T] {
	return DecodeOption[T](hydrate.WithPreHook[T](func(_ hydrate.Context, payload map[string]any) (map[string]any, error) {
		return hook(payload)
	}))
}

// Decode hydrates the current snapshot into T. When T (or *T) implements
// Validate() error, the decoded value is validated after opts are applied.
func Decode[T any](c *Controlled, opts ...DecodeOption[T]) (T, error) {
	decoderOpts := make([]hydrate.DecoderOption[T], 0, len(opts)+1)
	for _, opt := range opts {
		if opt != nil {
			decoderOpts = append(decoderOpts, hydrate.DecoderOption[T](opt))
		}
	}
	decoderOpts = append(decoderOpts, hydrate.WithPostHook[T](func(_ hydrate.Context, value *T) error {
		return validateValue(value)
	}))
	return hydrate.NewDecoder[T](decoderOpts...).Decode(hydrate.Context{ObjectID: c.id, Keys: c.Keys()}, c.Snapshot())
}

func validateValue[T any](value *T) error {
	if v, ok := any(*value).(interface{ Validate() error }); ok {
		return v.Validate()
	}
	if v, ok := any(value).(interface{ Validate() error }); ok {
		return v.Validate()
	}
	return nil
}
