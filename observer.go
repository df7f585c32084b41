/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package slotstore

import "time"

// EventType identifies why a slot fell back to its default or skipped a write.
type EventType string

const (
	EventAbsent        EventType = "slot.absent"
	EventShapeMismatch EventType = "slot.shape_mismatch"
	EventDecodeFailure EventType = "slot.decode_failure"
	EventEncodeFailure EventType = "slot.encode_failure"
	EventRemoved       EventType = "slot.removed"
)

// Event describes something a slot handled silently.
type Event struct {
	Type      EventType
	Key       string
	Strategy  Strategy
	Err       error
	Timestamp time.Time
}

// Observer receives slot events. OnEvent is called synchronously from Get and Set and
// must not call back into the same slot.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) OnEvent(e Event) { f(e) }

// NoOpObserver discards every event.
type NoOpObserver struct{}

func (NoOpObserver) OnEvent(Event) {}
