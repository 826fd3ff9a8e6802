package sim

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParameters_AreValid(t *testing.T) {
	p := DefaultParameters()
	assert.NoError(t, p.Validate())
}

func TestParameters_Validate_RejectsInconsistentSets(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Parameters)
		want   string
	}{
		{"zero population", func(p *Parameters) { p.NTotal = 0 }, "n_total must be positive"},
		{"population beyond handle range", func(p *Parameters) { p.NTotal = 1 << 32 }, "n_total must not exceed"},
		{"zero window", func(p *Parameters) { p.DaysOfInteractions = 0 }, "days_of_interactions must be positive"},
		{"zero end time", func(p *Parameters) { p.EndTime = 0 }, "end_time must be positive"},
		{"negative seeds", func(p *Parameters) { p.NSeedInfection = -1 }, "n_seed_infection must be non-negative"},
		{"short interactions", func(p *Parameters) { p.MeanRandomInteractions = []int{2, 2} }, "mean_random_interactions needs 3 entries"},
		{"negative interactions", func(p *Parameters) { p.MeanRandomInteractions = []int{2, -1, 2} }, "mean_random_interactions[adult]"},
		{"missing fractions", func(p *Parameters) { p.PopulationFractions = nil }, "population_fractions needs 3 entries"},
		{"negative fraction", func(p *Parameters) { p.PopulationFractions = []float64{-0.1, 0.5, 0.6} }, "population_fractions[child]"},
		{"all-zero fractions", func(p *Parameters) { p.PopulationFractions = []float64{0, 0, 0} }, "must not all be zero"},
		{"negative interaction capacity", func(p *Parameters) { p.InteractionCapacity = -5 }, "interaction_capacity"},
		{"negative event capacity", func(p *Parameters) { p.EventCapacity = -5 }, "event_capacity"},
		{"unknown trace level", func(p *Parameters) { p.TraceLevel = "verbose" }, "unknown trace_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParameters()
			tt.mutate(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfiguration), "error must wrap ErrInvalidConfiguration: %v", err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadParameters_ValidFile_ParsesAllFields(t *testing.T) {
	// GIVEN a complete parameter file
	path := filepath.Join(t.TempDir(), "params.yaml")
	content := `
rng_seed: 7
n_total: 1000
days_of_interactions: 3
end_time: 30
n_seed_infection: 4
mean_random_interactions: [2, 4, 3]
population_fractions: [0.25, 0.5, 0.25]
event_capacity: 5000
trace_level: infections
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	// WHEN loaded
	p, err := LoadParameters(path)

	// THEN every field is populated and the set validates
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.RNGSeed)
	assert.Equal(t, int64(1000), p.NTotal)
	assert.Equal(t, 3, p.DaysOfInteractions)
	assert.Equal(t, 30, p.EndTime)
	assert.Equal(t, 4, p.NSeedInfection)
	assert.Equal(t, []int{2, 4, 3}, p.MeanRandomInteractions)
	assert.Equal(t, []float64{0.25, 0.5, 0.25}, p.PopulationFractions)
	assert.Equal(t, int64(5000), p.EventCapacity)
	assert.Equal(t, "infections", p.TraceLevel)
	assert.NoError(t, p.Validate())
}

func TestLoadParameters_UnknownKey_Rejected(t *testing.T) {
	// GIVEN a file with a typo in a key
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte("n_totl: 10\n"), 0o644))

	// WHEN loaded
	_, err := LoadParameters(path)

	// THEN strict parsing rejects it
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing parameters")
}

func TestLoadParameters_MissingFile_ReturnsError(t *testing.T) {
	_, err := LoadParameters(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading parameters")
}
