// Defines the Individual and its disease status.
// Disease progression beyond the initial infected state is owned by external
// collaborators; the core only writes StatusPresymptomatic.

package sim

import "fmt"

// Status is an individual's disease state.
type Status int

const (
	StatusUninfected Status = iota
	StatusPresymptomatic
	StatusAsymptomatic
	StatusSymptomatic
	StatusHospitalised
	StatusRecovered
	StatusDeath
)

var statusNames = [...]string{
	StatusUninfected:     "uninfected",
	StatusPresymptomatic: "presymptomatic",
	StatusAsymptomatic:   "asymptomatic",
	StatusSymptomatic:    "symptomatic",
	StatusHospitalised:   "hospitalised",
	StatusRecovered:      "recovered",
	StatusDeath:          "death",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// AgeGroup selects the per-group mean interaction count.
type AgeGroup int

const (
	AgeChild AgeGroup = iota
	AgeAdult
	AgeElderly

	// NAgeGroups is the number of age groups in Parameters' per-group slices.
	NAgeGroups = 3
)

func (g AgeGroup) String() string {
	switch g {
	case AgeChild:
		return "child"
	case AgeAdult:
		return "adult"
	case AgeElderly:
		return "elderly"
	}
	return fmt.Sprintf("AgeGroup(%d)", int(g))
}

// NoIndividual marks the infector of a seed infection.
const NoIndividual int32 = -1

// Individual is one simulated person.
// Adjacency state is a set of back-references into the model's InteractionArena,
// one list per day-slot of the rolling window; the arena owns the records.
type Individual struct {
	Idx              int32    // position in the population
	AgeGroup         AgeGroup // fixes MeanInteractions
	Status           Status
	MeanInteractions int // template slots occupied by this individual

	interactions  []InteractionHandle // list head per day-slot
	nInteractions []int32             // list length per day-slot
}

// InteractionHead returns the head of the adjacency list for the given day-slot.
func (ind *Individual) InteractionHead(slot int) InteractionHandle {
	return ind.interactions[slot]
}

// NInteractions returns the number of contacts recorded for the given day-slot.
func (ind *Individual) NInteractions(slot int) int {
	return int(ind.nInteractions[slot])
}

// resetSlot empties the adjacency list of a day-slot before it is rebuilt.
func (ind *Individual) resetSlot(slot int) {
	ind.interactions[slot] = NoInteraction
	ind.nInteractions[slot] = 0
}

// addInteraction prepends an arena record to the day-slot's list.
// The caller has already pointed rec.Next at the current head.
func (ind *Individual) addInteraction(slot int, h InteractionHandle) {
	ind.interactions[slot] = h
	ind.nInteractions[slot]++
}
