package testhelper

import (
	"context"
	"sync"

	"github.com/soldout/backend/internal/events"
)

// EventRecorder is an events.Publisher keeping every published event
type EventRecorder struct {
	mu     sync.Mutex
	events []events.Event
	// Err, when set, is returned by Publish after recording
	Err error
}

// NewEventRecorder creates an empty recorder
func NewEventRecorder() *EventRecorder {
	return &EventRecorder{}
}

func (r *EventRecorder) Publish(_ context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events.Prepare(event))
	return r.Err
}

func (r *EventRecorder) Close() error { return nil }

// Events returns a copy of the recorded events
func (r *EventRecorder) Events() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.Event(nil), r.events...)
}

// Types returns the recorded event types in publish order
func (r *EventRecorder) Types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		types = append(types, e.Type)
	}
	return types
}
