package sim

import "fmt"

// EventHandle is an offset into the EventArena.
type EventHandle int32

// NoEvent terminates a day's infected-event list.
const NoEvent EventHandle = -1

// InfectionEvent records one infection, linked into the list of the day it happened.
type InfectionEvent struct {
	Individual int32       // infected individual
	Infector   int32       // source of the infection; NoIndividual for seed infections
	Next       EventHandle // next event of the same day
}

// EventArena is a fixed pool of InfectionEvent records allocated monotonically.
// Records are never recycled; exhaustion is reported, not wrapped.
type EventArena struct {
	records []InfectionEvent
	next    int
}

// NewEventArena allocates a pool of capacity records.
func NewEventArena(capacity int) *EventArena {
	if capacity < 0 {
		panic(fmt.Sprintf("EventArena: capacity must be >= 0, got %d", capacity))
	}
	return &EventArena{records: make([]InfectionEvent, capacity)}
}

// Alloc returns the next unused record, or ErrCapacityExceeded when the pool is exhausted.
func (a *EventArena) Alloc() (EventHandle, error) {
	if a.next >= len(a.records) {
		return NoEvent, fmt.Errorf("%w: event arena exhausted after %d events", ErrCapacityExceeded, len(a.records))
	}
	h := EventHandle(a.next)
	a.records[h] = InfectionEvent{Individual: NoIndividual, Infector: NoIndividual, Next: NoEvent}
	a.next++
	return h, nil
}

// Get returns the record behind a handle.
func (a *EventArena) Get(h EventHandle) *InfectionEvent {
	return &a.records[h]
}

// Len returns the number of records handed out so far.
func (a *EventArena) Len() int {
	return a.next
}

// Capacity returns the size of the pool.
func (a *EventArena) Capacity() int {
	return len(a.records)
}
