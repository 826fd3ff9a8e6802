package sim

import "math/rand"

// InteractionTemplate is the Possible-Interaction Template: a multiset of
// individual indices in which each individual appears MeanInteractions times.
// The template itself never changes after construction; each day's shuffle
// works on a pre-allocated scratch copy.
type InteractionTemplate struct {
	slots   []int32
	scratch []int32
}

func newInteractionTemplate(population []Individual) *InteractionTemplate {
	n := 0
	for i := range population {
		n += population[i].MeanInteractions
	}
	slots := make([]int32, 0, n)
	for i := range population {
		for k := 0; k < population[i].MeanInteractions; k++ {
			slots = append(slots, population[i].Idx)
		}
	}
	return &InteractionTemplate{slots: slots, scratch: make([]int32, n)}
}

// Len returns the number of template slots.
func (t *InteractionTemplate) Len() int {
	return len(t.slots)
}

// Slots returns the template contents in construction order.
// The returned slice is the template's storage; callers MUST NOT modify it.
func (t *InteractionTemplate) Slots() []int32 {
	return t.slots
}

// shuffled copies the template into the scratch buffer and permutes it uniformly.
// The returned slice is overwritten by the next call.
func (t *InteractionTemplate) shuffled(rng *rand.Rand) []int32 {
	buf := t.scratch
	copy(buf, t.slots)
	rng.Shuffle(len(buf), func(i, j int) {
		buf[i], buf[j] = buf[j], buf[i]
	})
	return buf
}
