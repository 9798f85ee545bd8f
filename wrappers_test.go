package control

import (
	"errors"
	"slices"
	"testing"

	"github.com/goliatone/go-reaction-control/pkg/reactive"
)

func TestNewWithAnnotationsPauseAndResume(t *testing.T) {
	c, err := New(Object{"a": 1}, reactive.Annotations{"a": reactive.Observable})
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	counter := &callCounter{}
	c.Subscribe(counter.listen, "a")

	c.Set("a", 2)
	if mustGet(t, c, "a") != 2 || counter.calls != 1 {
		t.Fatalf("expected a=2 with 1 notification, got %v/%d", mustGet(t, c, "a"), counter.calls)
	}
	_ = c.PauseKey("a")
	c.Set("a", 3)
	if mustGet(t, c, "a") != 3 || counter.calls != 1 {
		t.Fatalf("expected a=3 silently, got %v/%d", mustGet(t, c, "a"), counter.calls)
	}
	_ = c.ResumeKey("a")
	c.Set("a", 4)
	if mustGet(t, c, "a") != 4 || counter.calls != 2 {
		t.Fatalf("expected a=4 with 2 notifications, got %v/%d", mustGet(t, c, "a"), counter.calls)
	}
}

func TestNewWithoutAnnotationsIsPassThrough(t *testing.T) {
	obj := Object{"a": 1}
	c, err := New(obj, nil)
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	counter := &callCounter{}
	c.Subscribe(counter.listen)

	c.Set("a", 2)
	if mustGet(t, c, "a") != 2 {
		t.Fatalf("expected a=2, got %v", mustGet(t, c, "a"))
	}
	if counter.calls != 0 {
		t.Fatalf("expected no notification without tracked keys, got %d", counter.calls)
	}
	if len(c.Keys()) != 0 {
		t.Fatalf("expected no tracked keys, got %v", c.Keys())
	}
	if obj["a"] != 2 {
		t.Fatalf("expected write to land on the object, got %v", obj["a"])
	}
}

func TestNewAutoTracksSortedOwnKeys(t *testing.T) {
	c := mustAuto(t, Object{"b": 1, "a": 1, "c": 1})
	if !slices.Equal(c.Keys(), []string{"a", "b", "c"}) {
		t.Fatalf("expected sorted keys, got %v", c.Keys())
	}
}

func TestNewAutoForwardsOverridesAndStoreOptions(t *testing.T) {
	c := mustAuto(t, Object{"a": 1, "b": 1},
		WithOverrides(reactive.Annotations{"b": reactive.Plain}),
		WithStoreOptions(reactive.WithName("counters")),
	)
	counter := &callCounter{}
	c.Subscribe(counter.listen)

	c.Set("b", 2)
	if counter.calls != 0 {
		t.Fatalf("expected plain override to stay silent, got %d", counter.calls)
	}
	c.Set("a", 2)
	if counter.calls != 1 {
		t.Fatalf("expected observable key to notify, got %d", counter.calls)
	}
	mem, ok := c.Store().(*reactive.MemoryStore)
	if !ok || mem.Name() != "counters" {
		t.Fatalf("expected named memory store, got %T", c.Store())
	}

	_, err := NewAuto(Object{"a": 1}, WithOverrides(reactive.Annotations{"zzz": reactive.Plain}))
	if !errors.Is(err, reactive.ErrUnknownAnnotation) {
		t.Fatalf("expected factory error to propagate, got %v", err)
	}
}

func TestNewAutoFromStruct(t *testing.T) {
	type counters struct {
		Clicks int    `json:"clicks"`
		Label  string `json:"label"`
	}
	c, err := NewAutoFrom(counters{Clicks: 1, Label: "home"})
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	if !slices.Equal(c.Keys(), []string{"clicks", "label"}) {
		t.Fatalf("expected json keys, got %v", c.Keys())
	}
	if mustGet(t, c, "label") != "home" {
		t.Fatalf("expected label home, got %v", mustGet(t, c, "label"))
	}
	if _, err := NewAutoFrom(42); err == nil {
		t.Fatalf("expected error for non-object value")
	}
}

func TestNewAutoFromKeepsFieldTypes(t *testing.T) {
	type counters struct {
		Clicks int `json:"clicks"`
	}
	c, err := NewAutoFrom(&counters{Clicks: 1},
		WithStoreOptions(reactive.WithDefaultAnnotation(reactive.Structural)),
	)
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	clicks, ok := mustGet(t, c, "clicks").(int)
	if !ok || clicks != 1 {
		t.Fatalf("expected int 1, got %T %v", mustGet(t, c, "clicks"), mustGet(t, c, "clicks"))
	}

	counter := &callCounter{}
	c.Subscribe(counter.listen, "clicks")
	c.Set("clicks", 1)
	if counter.calls != 0 {
		t.Fatalf("expected equal write to stay silent, got %d notifications", counter.calls)
	}
	c.Set("clicks", 2)
	if counter.calls != 1 {
		t.Fatalf("expected 1 notification, got %d", counter.calls)
	}
}
