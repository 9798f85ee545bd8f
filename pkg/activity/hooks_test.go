package activity

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"
)

func TestEventValidate(t *testing.T) {
	if err := (Event{Verb: VerbPaused}).Validate(); !errors.Is(err, ErrIncompleteEvent) {
		t.Fatalf("expected incomplete event error, got %v", err)
	}
	if err := (Event{Verb: "options.updated", ObjectID: "1"}).Validate(); !errors.Is(err, ErrUnknownVerb) {
		t.Fatalf("expected unknown verb error, got %v", err)
	}
	if err := (Event{Verb: " " + VerbReplayed, ObjectID: "1"}).Validate(); err != nil {
		t.Fatalf("expected valid event, got %v", err)
	}
}

func TestNormalizeEventTrimsAndDetaches(t *testing.T) {
	keys := []string{"a"}
	meta := map[string]any{"k": "v"}
	evt := Event{
		Verb:     " reaction.paused ",
		ActorID:  " actor ",
		ObjectID: " 42 ",
		Channel:  " reactions ",
		Keys:     keys,
		Metadata: meta,
	}

	got := NormalizeEvent(evt)

	if got.Verb != VerbPaused || got.ObjectID != "42" || got.ActorID != "actor" || got.Channel != "reactions" {
		t.Fatalf("unexpected normalized fields: %+v", got)
	}
	if got.OccurredAt.IsZero() {
		t.Fatalf("expected OccurredAt to be set")
	}
	got.Metadata["k"] = "changed"
	got.Keys[0] = "changed"
	if meta["k"] != "v" || keys[0] != "a" {
		t.Fatalf("expected caller data untouched: %v %v", meta, keys)
	}
}

func TestEventData(t *testing.T) {
	data := Event{
		Verb:     VerbReplayed,
		Keys:     []string{"a"},
		Value:    3,
		Metadata: map[string]any{"value": "shadowed", "source": "ui"},
	}.Data()
	if data["value"] != 3 || data["source"] != "ui" {
		t.Fatalf("unexpected replay data: %v", data)
	}
	if _, ok := data["all"]; ok {
		t.Fatalf("expected no all flag")
	}

	paused := Event{Verb: VerbPaused, Keys: []string{"a", "b"}, All: true}.Data()
	if paused["all"] != true || !slices.Equal(paused["keys"].([]string), []string{"a", "b"}) {
		t.Fatalf("unexpected paused data: %v", paused)
	}
	if _, ok := paused["value"]; ok {
		t.Fatalf("expected no value outside replay")
	}
	if (Event{Verb: VerbResumed}).Data() != nil {
		t.Fatalf("expected nil data for empty event")
	}
}

func TestHooksNotifyRejectsInvalidEvents(t *testing.T) {
	capture := &CaptureHook{}
	err := (Hooks{capture}).Notify(context.Background(), Event{Verb: VerbPaused})
	if !errors.Is(err, ErrIncompleteEvent) {
		t.Fatalf("expected incomplete event error, got %v", err)
	}
	if len(capture.Events) != 0 {
		t.Fatalf("expected no events captured, got %d", len(capture.Events))
	}
}

func TestHooksNotifyFanOutAndJoinErrors(t *testing.T) {
	capture := &CaptureHook{}
	boom1 := errors.New("boom1")
	boom2 := errors.New("boom2")
	var ctxSeen bool
	hooks := Hooks{
		HookFunc(func(ctx context.Context, _ Event) error {
			ctxSeen = ctx != nil
			return nil
		}),
		capture,
		HookFunc(func(context.Context, Event) error { return boom1 }),
		nil,
		HookFunc(func(context.Context, Event) error { return boom2 }),
	}

	err := hooks.Notify(nil, Event{Verb: VerbResumed, ObjectID: "1", Keys: []string{"a"}})
	if !errors.Is(err, boom1) || !errors.Is(err, boom2) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if !ctxSeen {
		t.Fatalf("expected context fallback to be non-nil")
	}
	if len(capture.Events) != 1 {
		t.Fatalf("expected event to be captured once, got %d", len(capture.Events))
	}
}

func TestHooksCompact(t *testing.T) {
	if (Hooks{nil, nil}).Compact() != nil {
		t.Fatalf("expected nil when no hook remains")
	}
	if got := (Hooks{nil, &CaptureHook{}}).Compact(); len(got) != 1 {
		t.Fatalf("expected one hook, got %d", len(got))
	}
}

func TestEmitterStampsSource(t *testing.T) {
	capture := &CaptureHook{}
	emitter := NewEmitter(Hooks{capture}, Config{Enabled: true}, Source{ObjectID: "obj", ActorID: "actor"})
	keys := []string{"a", "b"}

	if err := emitter.Paused(context.Background(), keys, true); err != nil {
		t.Fatalf("paused: %v", err)
	}
	if err := emitter.Replayed(context.Background(), "a", 2); err != nil {
		t.Fatalf("replayed: %v", err)
	}
	if err := emitter.Resumed(context.Background(), []string{"a"}, false); err != nil {
		t.Fatalf("resumed: %v", err)
	}

	want := []string{VerbPaused, VerbReplayed, VerbResumed}
	if got := capture.Verbs(); !slices.Equal(got, want) {
		t.Fatalf("expected verbs %v, got %v", want, got)
	}
	paused := capture.Events[0]
	if paused.ObjectID != "obj" || paused.ActorID != "actor" || paused.Channel != DefaultChannel || !paused.All {
		t.Fatalf("unexpected paused event: %+v", paused)
	}
	keys[0] = "changed"
	if paused.Keys[0] != "a" {
		t.Fatalf("expected keys detached from caller, got %v", paused.Keys)
	}
	if capture.Events[1].Value != 2 {
		t.Fatalf("expected replayed value 2, got %v", capture.Events[1].Value)
	}
}

func TestEmitterDisabledOrEmpty(t *testing.T) {
	capture := &CaptureHook{}
	source := Source{ObjectID: "obj"}

	disabled := NewEmitter(Hooks{capture}, Config{Enabled: false}, source)
	if disabled.Enabled() {
		t.Fatalf("expected emitter to be disabled")
	}
	if err := disabled.Paused(context.Background(), []string{"a"}, false); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if NewEmitter(Hooks{nil}, Config{Enabled: true}, source).Enabled() {
		t.Fatalf("expected emitter without hooks to be disabled")
	}

	enabled := NewEmitter(Hooks{capture}, Config{Enabled: true, Channel: " ui "}, source)
	if err := enabled.Resumed(context.Background(), nil, true); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(capture.Events) != 0 {
		t.Fatalf("expected no event without keys, got %d", len(capture.Events))
	}
	_ = enabled.Paused(context.Background(), []string{"a"}, false)
	if capture.Events[0].Channel != "ui" {
		t.Fatalf("expected trimmed channel, got %q", capture.Events[0].Channel)
	}
}

func TestCaptureHookPreservesTimestamp(t *testing.T) {
	capture := &CaptureHook{}
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_ = capture.Notify(context.Background(), Event{Verb: VerbPaused, OccurredAt: at})
	_ = capture.Notify(context.Background(), Event{Verb: VerbResumed})
	if got := capture.Verbs(); !slices.Equal(got, []string{VerbPaused, VerbResumed}) {
		t.Fatalf("unexpected verbs: %v", got)
	}
	if !capture.Events[0].OccurredAt.Equal(at) {
		t.Fatalf("expected occurred_at preserved, got %v", capture.Events[0].OccurredAt)
	}
}
