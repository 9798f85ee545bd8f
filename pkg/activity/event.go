package activity

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// ObjectTypeControl identifies events emitted by a reaction control wrapper.
const ObjectTypeControl = "reaction.control"

const (
	VerbPaused   = "reaction.paused"
	VerbResumed  = "reaction.resumed"
	VerbReplayed = "reaction.replayed"
)

var (
	ErrIncompleteEvent = errors.New("activity: event requires a verb and an object id")
	ErrUnknownVerb     = errors.New("activity: unknown verb")
)

// Event is one control transition on a wrapper. Keys lists the keys that
// changed state, All marks a whole-object pause or resume and Value carries
// the replayed value for VerbReplayed.
type Event struct {
	Verb       string
	ObjectID   string
	ActorID    string
	UserID     string
	TenantID   string
	Channel    string
	Keys       []string
	All        bool
	Value      any
	Metadata   map[string]any
	OccurredAt time.Time
}

// Validate reports whether the event is a complete control transition.
func (e Event) Validate() error {
	if strings.TrimSpace(e.Verb) == "" || strings.TrimSpace(e.ObjectID) == "" {
		return ErrIncompleteEvent
	}
	switch strings.TrimSpace(e.Verb) {
	case VerbPaused, VerbResumed, VerbReplayed:
		return nil
	}
	return fmt.Errorf("%w %q", ErrUnknownVerb, e.Verb)
}

// Data flattens the transition fields and metadata into one payload. Metadata
// never overrides keys, all or value.
func (e Event) Data() map[string]any {
	data := make(map[string]any, len(e.Metadata)+3)
	for key, value := range e.Metadata {
		data[key] = value
	}
	if len(e.Keys) > 0 {
		data["keys"] = slices.Clone(e.Keys)
	}
	if e.All {
		data["all"] = true
	}
	if e.Verb == VerbReplayed {
		data["value"] = e.Value
	}
	if len(data) == 0 {
		return nil
	}
	return data
}

// NormalizeEvent trims identifiers, detaches keys and metadata from the
// caller and stamps OccurredAt when unset.
func NormalizeEvent(event Event) Event {
	normalized := event
	normalized.Verb = strings.TrimSpace(event.Verb)
	normalized.ObjectID = strings.TrimSpace(event.ObjectID)
	normalized.ActorID = strings.TrimSpace(event.ActorID)
	normalized.UserID = strings.TrimSpace(event.UserID)
	normalized.TenantID = strings.TrimSpace(event.TenantID)
	normalized.Channel = strings.TrimSpace(event.Channel)
	if len(event.Keys) > 0 {
		normalized.Keys = slices.Clone(event.Keys)
	}
	if len(event.Metadata) > 0 {
		normalized.Metadata = make(map[string]any, len(event.Metadata))
		for key, value := range event.Metadata {
			normalized.Metadata[key] = value
		}
	}
	if normalized.OccurredAt.IsZero() {
		normalized.OccurredAt = time.Now()
	}
	return normalized
}
