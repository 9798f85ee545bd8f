package clone

import (
	"testing"
	"time"
)

func TestValueDetachesNestedContainers(t *testing.T) {
	origin := map[string]any{
		"tags":   []string{"a", "b"},
		"nested": map[string]any{"n": 1},
	}
	got := Value(origin)

	got["tags"].([]string)[0] = "changed"
	got["nested"].(map[string]any)["n"] = 2

	if origin["tags"].([]string)[0] != "a" {
		t.Fatalf("expected original slice untouched, got %v", origin["tags"])
	}
	if origin["nested"].(map[string]any)["n"] != 1 {
		t.Fatalf("expected original map untouched, got %v", origin["nested"])
	}
}

func TestValueKeepsUnexportedStructState(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	got := Value(now)
	if !got.Equal(now) {
		t.Fatalf("expected %v, got %v", now, got)
	}
}

func TestValueNil(t *testing.T) {
	var v any
	if got := Value(v); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
	if got := Map(nil); got != nil {
		t.Fatalf("expected nil map, got %v", got)
	}
}

func TestValuePointerIsCopied(t *testing.T) {
	type point struct{ X int }
	p := &point{X: 1}
	got := Value(p)
	got.X = 5
	if p.X != 1 {
		t.Fatalf("expected original pointer target untouched, got %d", p.X)
	}
}
