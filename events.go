package hullsat

import (
	"bytes"

	"github.com/google/uuid"
)

const (
	COLLISION_ENTER EventType = iota
	COLLISION_STAY
	COLLISION_EXIT
)

type pairKey struct {
	a uuid.UUID
	b uuid.UUID
}

// makePairKey creates a normalized pair key with consistent ordering
func makePairKey(a, b *Entity) pairKey {
	if bytes.Compare(b.ID[:], a.ID[:]) < 0 {
		a, b = b, a
	}
	return pairKey{a: a.ID, b: b.ID}
}

type EventType uint8

func (t EventType) String() string {
	switch t {
	case COLLISION_ENTER:
		return "collision_enter"
	case COLLISION_STAY:
		return "collision_stay"
	case COLLISION_EXIT:
		return "collision_exit"
	}
	return "unknown"
}

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

type CollisionEnterEvent struct {
	EntityA *Entity
	EntityB *Entity
}

func (e CollisionEnterEvent) Type() EventType { return COLLISION_ENTER }

type CollisionStayEvent struct {
	EntityA *Entity
	EntityB *Entity
}

func (e CollisionStayEvent) Type() EventType { return COLLISION_STAY }

type CollisionExitEvent struct {
	EntityA *Entity
	EntityB *Entity
}

func (e CollisionExitEvent) Type() EventType { return COLLISION_EXIT }

// EventListener - callback for events
type EventListener func(event Event)

// Events tracks the colliding pairs of consecutive steps and reports
// Enter/Stay/Exit transitions once per Step
type Events struct {
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	previousActivePairs map[pairKey]bool
	currentActivePairs  map[pairKey]bool
}

func NewEvents() Events {
	return Events{
		listeners:           make(map[EventType][]EventListener),
		buffer:              make([]Event, 0, 64),
		previousActivePairs: make(map[pairKey]bool),
		currentActivePairs:  make(map[pairKey]bool),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordCollision marks the pair as colliding during the current step
func (e *Events) recordCollision(pair Pair) {
	e.currentActivePairs[makePairKey(pair.A, pair.B)] = true
}

// forget drops every tracked pair involving the entity, without an Exit event
func (e *Events) forget(id uuid.UUID) {
	for key := range e.previousActivePairs {
		if key.a == id || key.b == id {
			delete(e.previousActivePairs, key)
		}
	}
	for key := range e.currentActivePairs {
		if key.a == id || key.b == id {
			delete(e.currentActivePairs, key)
		}
	}
}

// processCollisionEvents compares current and previous pairs to detect Enter/Stay/Exit.
// Pairs are emitted in registration order so listeners see a deterministic sequence.
func (e *Events) processCollisionEvents(order []Pair) {
	for _, pair := range order {
		key := makePairKey(pair.A, pair.B)
		current := e.currentActivePairs[key]
		previous := e.previousActivePairs[key]

		switch {
		case current && previous:
			e.buffer = append(e.buffer, CollisionStayEvent{EntityA: pair.A, EntityB: pair.B})
		case current:
			e.buffer = append(e.buffer, CollisionEnterEvent{EntityA: pair.A, EntityB: pair.B})
		case previous:
			e.buffer = append(e.buffer, CollisionExitEvent{EntityA: pair.A, EntityB: pair.B})
		}
	}

	// Swap for next step and clear current
	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	clear(e.currentActivePairs)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush(order []Pair) {
	e.processCollisionEvents(order)

	for _, event := range e.buffer {
		for _, listener := range e.listeners[event.Type()] {
			listener(event)
		}
	}
	e.buffer = e.buffer[:0]
}
