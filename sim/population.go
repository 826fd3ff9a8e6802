package sim

import "math"

// newPopulation builds the population array for the parameter set.
// Per-slot adjacency heads and counts for every individual are carved out of two
// shared backing arrays, so the whole store costs three allocations.
// Parameters must already be validated.
func newPopulation(params *Parameters) []Individual {
	n := int(params.NTotal)
	window := params.DaysOfInteractions

	population := make([]Individual, n)
	heads := make([]InteractionHandle, n*window)
	counts := make([]int32, n*window)
	for i := range heads {
		heads[i] = NoInteraction
	}

	bounds := ageGroupBounds(params.PopulationFractions, n)
	group := AgeChild
	for i := 0; i < n; i++ {
		for int(group) < NAgeGroups-1 && i >= bounds[group] {
			group++
		}
		lo, hi := i*window, (i+1)*window
		population[i] = Individual{
			Idx:              int32(i),
			AgeGroup:         group,
			Status:           StatusUninfected,
			MeanInteractions: params.MeanRandomInteractions[group],
			interactions:     heads[lo:hi:hi],
			nInteractions:    counts[lo:hi:hi],
		}
	}
	return population
}

// ageGroupBounds allocates n individuals to age groups in proportion to fractions.
// bounds[g] is the exclusive upper index of group g; the last bound is always n.
// The allocation is deterministic and consumes no randomness.
func ageGroupBounds(fractions []float64, n int) [NAgeGroups]int {
	total := 0.0
	for _, f := range fractions {
		total += f
	}
	var bounds [NAgeGroups]int
	cum := 0.0
	for g := 0; g < NAgeGroups-1; g++ {
		cum += fractions[g]
		bounds[g] = int(math.Round(cum / total * float64(n)))
	}
	bounds[NAgeGroups-1] = n
	return bounds
}
