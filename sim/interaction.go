// Implements the InteractionArena, a fixed-capacity ring buffer of interaction
// records recycled across the rolling window of days.

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// InteractionHandle is an offset into the InteractionArena.
type InteractionHandle int32

// NoInteraction terminates an adjacency list.
const NoInteraction InteractionHandle = -1

// Interaction is one directed contact on one day: the owner of the list met Individual.
type Interaction struct {
	Individual int32             // contact's index in the population
	Next       InteractionHandle // next record in the same day-slot list
	day        int32             // simulated day the record was written; -1 if never written
}

// InteractionArena owns every Interaction record of a model.
// The write cursor moves forward and wraps to zero at capacity. A record stays
// live while it was written less than window days ago; Alloc refuses to hand out
// a live record, so a wrap can never corrupt a day still inside the window.
type InteractionArena struct {
	records []Interaction
	cursor  int
	window  int
	wraps   int
}

// NewInteractionArena allocates capacity records for a rolling window of window days.
func NewInteractionArena(capacity int, window int) *InteractionArena {
	if capacity < 0 {
		panic(fmt.Sprintf("InteractionArena: capacity must be >= 0, got %d", capacity))
	}
	if window <= 0 {
		panic(fmt.Sprintf("InteractionArena: window must be > 0, got %d", window))
	}
	records := make([]Interaction, capacity)
	for i := range records {
		records[i] = Interaction{Individual: NoIndividual, Next: NoInteraction, day: -1}
	}
	return &InteractionArena{records: records, window: window}
}

// Alloc hands out the record under the cursor for a write on the given day and
// advances the cursor. Returns ErrCapacityExceeded if that record still belongs
// to a day inside the window.
func (a *InteractionArena) Alloc(day int) (InteractionHandle, error) {
	if len(a.records) == 0 {
		return NoInteraction, fmt.Errorf("%w: interaction arena has zero capacity", ErrCapacityExceeded)
	}
	if a.cursor == len(a.records) {
		a.cursor = 0
		a.wraps++
		logrus.Tracef("interaction arena wrapped (wrap #%d) on day %d", a.wraps, day)
	}
	rec := &a.records[a.cursor]
	if rec.day >= 0 && day-int(rec.day) < a.window {
		return NoInteraction, fmt.Errorf("%w: interaction arena slot %d still holds a record from day %d (window %d, writing day %d, capacity %d)",
			ErrCapacityExceeded, a.cursor, rec.day, a.window, day, len(a.records))
	}
	h := InteractionHandle(a.cursor)
	rec.day = int32(day)
	rec.Individual = NoIndividual
	rec.Next = NoInteraction
	a.cursor++
	return h, nil
}

// Get returns the record behind a handle. The pointer is valid until the record is reallocated.
func (a *InteractionArena) Get(h InteractionHandle) *Interaction {
	return &a.records[h]
}

// Capacity returns the number of records in the arena.
func (a *InteractionArena) Capacity() int {
	return len(a.records)
}

// Cursor returns the index of the next record to be written.
func (a *InteractionArena) Cursor() int {
	return a.cursor
}

// Wraps returns how many times the cursor has wrapped back to zero.
func (a *InteractionArena) Wraps() int {
	return a.wraps
}
