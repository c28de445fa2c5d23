package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTransition EventType = "transition"
	EventRequest    EventType = "request"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// TransitionEvent is emitted every time a screen writes its state slot.
type TransitionEvent struct {
	EventBase
	Screen  string  `json:"screen"`
	UserID  string  `json:"user_id,omitempty"`
	From    Kind    `json:"from"`
	To      Kind    `json:"to"`
	Message Message `json:"message,omitempty"`
}

// RequestEvent is emitted once per call made by the network boundary.
type RequestEvent struct {
	EventBase
	Op         string        `json:"op"`
	RequestID  string        `json:"request_id"`
	StatusCode int           `json:"status_code,omitempty"`
	Duration   time.Duration `json:"duration"`
	Err        error         `json:"-"`
}

// LifecycleHooks defines callbacks for observability. Hooks run synchronously
// on the writer's goroutine and must not block.
type LifecycleHooks struct {
	OnTransition func(context.Context, *TransitionEvent)
	OnRequest    func(context.Context, *RequestEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnTransition: chain(h.OnTransition, other.OnTransition),
		OnRequest:    chain(h.OnRequest, other.OnRequest),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
