package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// uniformParams returns a parameter set where every age group has the same
// mean interaction count, so the template holds exactly n*mean slots.
func uniformParams(n int64, mean, window, endTime, seeds int) Parameters {
	return Parameters{
		RNGSeed:                42,
		NTotal:                 n,
		DaysOfInteractions:     window,
		EndTime:                endTime,
		NSeedInfection:         seeds,
		MeanRandomInteractions: []int{mean, mean, mean},
		PopulationFractions:    []float64{0.2, 0.6, 0.2},
	}
}

func newTestModel(t *testing.T, params Parameters) *Model {
	t.Helper()
	m, err := NewModel(&params, NewPartitionedRNG(NewSimulationKey(params.RNGSeed)))
	require.NoError(t, err)
	return m
}

// countStatus returns how many individuals carry the given status.
func countStatus(m *Model, s Status) int64 {
	var n int64
	for i := range m.Population() {
		if m.Population()[i].Status == s {
			n++
		}
	}
	return n
}
