package reactive

import (
	"reflect"
	"sort"

	"github.com/eapache/queue"
)

// MemoryStore is the default in-process Store. Changes applied inside a
// transaction are queued and flushed once the outermost transaction returns.
// It is not safe for concurrent use; callers own a store from a single
// goroutine.
type MemoryStore struct {
	name        string
	values      map[string]any
	annotations Annotations
	subs        []*subscription
	nextID      int
	depth       int
	pending     *queue.Queue
}

type subscription struct {
	id     int
	fn     Listener
	keys   map[string]struct{}
	closed bool
}

func (s *subscription) dependsOn(key string) bool {
	if len(s.keys) == 0 {
		return true
	}
	_, ok := s.keys[key]
	return ok
}

// NewMemoryStore builds a store seeded with snapshot. Keys missing from
// annotations behave as Observable.
func NewMemoryStore(snapshot map[string]any, annotations Annotations, opts ...Option) *MemoryStore {
	cfg := applyOptions(opts)
	values := make(map[string]any, len(snapshot))
	for key, value := range snapshot {
		values[key] = value
	}
	resolved := make(Annotations, len(annotations))
	for key, annotation := range annotations {
		resolved[key] = annotation
	}
	return &MemoryStore{
		name:        cfg.name,
		values:      values,
		annotations: resolved,
		pending:     queue.New(),
	}
}

// Name returns the label configured through WithName.
func (s *MemoryStore) Name() string {
	return s.name
}

// Get returns the current value for key.
func (s *MemoryStore) Get(key string) (any, bool) {
	value, ok := s.values[key]
	return value, ok
}

// Keys returns the stored keys sorted alphabetically.
func (s *MemoryStore) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for key := range s.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Annotation reports the annotation in effect for key.
func (s *MemoryStore) Annotation(key string) Annotation {
	if annotation, ok := s.annotations[key]; ok {
		return annotation
	}
	return Observable
}

// Set applies value to key. Outside a transaction the change is flushed
// immediately.
func (s *MemoryStore) Set(key string, value any) {
	old, existed := s.values[key]
	s.values[key] = value

	switch s.Annotation(key) {
	case Plain:
		return
	case Structural:
		if existed && reflect.DeepEqual(old, value) {
			return
		}
	}

	s.pending.Add(Change{Key: key, OldValue: old, NewValue: value})
	if s.depth == 0 {
		s.flush()
	}
}

// Transaction runs fn and delivers the batched notifications after the
// outermost transaction returns.
func (s *MemoryStore) Transaction(fn func()) {
	s.depth++
	defer func() {
		s.depth--
		if s.depth == 0 {
			s.flush()
		}
	}()
	if fn != nil {
		fn()
	}
}

// Subscribe registers fn for changes on keys. With no keys the listener
// depends on every key. The returned function removes the subscription.
func (s *MemoryStore) Subscribe(fn Listener, keys ...string) func() {
	if fn == nil {
		return func() {}
	}
	s.nextID++
	sub := &subscription{id: s.nextID, fn: fn}
	if len(keys) > 0 {
		sub.keys = make(map[string]struct{}, len(keys))
		for _, key := range keys {
			sub.keys[key] = struct{}{}
		}
	}
	s.subs = append(s.subs, sub)
	return func() {
		s.unsubscribe(sub.id)
	}
}

// Listeners returns the number of active subscriptions.
func (s *MemoryStore) Listeners() int {
	return len(s.subs)
}

func (s *MemoryStore) unsubscribe(id int) {
	for i, sub := range s.subs {
		if sub.id != id {
			continue
		}
		sub.closed = true
		s.subs = append(s.subs[:i], s.subs[i+1:]...)
		return
	}
}

func (s *MemoryStore) flush() {
	for s.pending.Length() > 0 {
		batch := make([]Change, 0, s.pending.Length())
		for s.pending.Length() > 0 {
			batch = append(batch, s.pending.Remove().(Change))
		}

		// listeners registered while notifying only see later batches
		subs := append([]*subscription(nil), s.subs...)
		for _, sub := range subs {
			if sub.closed {
				continue
			}
			relevant := relevantChanges(sub, batch)
			if len(relevant) == 0 {
				continue
			}
			sub.fn(relevant)
		}
	}
}

func relevantChanges(sub *subscription, batch []Change) []Change {
	if len(sub.keys) == 0 {
		return append([]Change(nil), batch...)
	}
	var out []Change
	for _, change := range batch {
		if sub.dependsOn(change.Key) {
			out = append(out, change)
		}
	}
	return out
}
