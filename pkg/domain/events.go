package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStateAdded    EventType = "state_added"
	EventStateRemoved  EventType = "state_removed"
	EventSync          EventType = "sync"
	EventDecodeFailure EventType = "decode_failure"
	EventComputeError  EventType = "compute_error"
)

// SyncDirection tells which reaction produced a sync event.
type SyncDirection string

const (
	SyncOutbound SyncDirection = "outbound"
	SyncInbound  SyncDirection = "inbound"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// StateEvent reports a mutation of the state collection.
type StateEvent struct {
	EventBase
	State StateDefinition `json:"state"`
	Fluid string          `json:"fluid"`
}

// SyncEvent reports a write between memory and the persisted query.
type SyncEvent struct {
	EventBase
	Direction SyncDirection `json:"direction"`
	Query     string        `json:"query"`
}

// FailureEvent reports a recovered failure (decode or compute).
type FailureEvent struct {
	EventBase
	Kind   string `json:"kind"`
	Detail string `json:"detail,omitempty"`
}

// WorkspaceHooks defines callbacks for workspace observability.
type WorkspaceHooks struct {
	OnStateAdded    func(context.Context, *StateEvent)
	OnStateRemoved  func(context.Context, *StateEvent)
	OnSync          func(context.Context, *SyncEvent)
	OnDecodeFailure func(context.Context, *FailureEvent)
	OnComputeError  func(context.Context, *FailureEvent)
}

// NewEventBase stamps an event of the given type.
func NewEventBase(t EventType) EventBase {
	return EventBase{Timestamp: time.Now(), Type: t}
}
