package sim

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abm-sim/abm-sim/sim/trace"
)

// Parameters is the structured parameter set consumed by NewModel.
// Loaded from YAML via LoadParameters(path) or built from DefaultParameters().
type Parameters struct {
	RNGSeed            int64 `yaml:"rng_seed"`             // seed for every random stream of the run
	NTotal             int64 `yaml:"n_total"`              // total number of people
	DaysOfInteractions int   `yaml:"days_of_interactions"` // number of days of interactions to keep
	EndTime            int   `yaml:"end_time"`             // last simulated day
	NSeedInfection     int   `yaml:"n_seed_infection"`     // number of people seeded with the infection

	// Mean number of random interactions each day, one entry per age group (child, adult, elderly).
	MeanRandomInteractions []int `yaml:"mean_random_interactions"`
	// Population stratification by age group; normalized, so only ratios matter.
	PopulationFractions []float64 `yaml:"population_fractions"`

	InteractionCapacity int64  `yaml:"interaction_capacity,omitempty"` // 0 = derive from template size x window
	EventCapacity       int64  `yaml:"event_capacity,omitempty"`       // 0 = two events per individual
	MemoryLimitBytes    uint64 `yaml:"memory_limit_bytes,omitempty"`   // 0 = unlimited

	TraceLevel string `yaml:"trace_level,omitempty"` // "none" (default) or "infections"
}

// DefaultParameters returns a baseline parameter set for a mid-sized population.
func DefaultParameters() Parameters {
	return Parameters{
		RNGSeed:                1,
		NTotal:                 100000,
		DaysOfInteractions:     5,
		EndTime:                100,
		NSeedInfection:         5,
		MeanRandomInteractions: []int{2, 4, 3},
		PopulationFractions:    []float64{0.21, 0.61, 0.18},
	}
}

// LoadParameters reads and parses a YAML parameter file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadParameters(path string) (*Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading parameters: %w", err)
	}
	var params Parameters
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&params); err != nil {
		return nil, fmt.Errorf("parsing parameters: %w", err)
	}
	return &params, nil
}

// Validate checks that the parameter set is structurally consistent.
// Every returned error wraps ErrInvalidConfiguration.
func (p *Parameters) Validate() error {
	if p.NTotal <= 0 {
		return invalidf("n_total must be positive, got %d", p.NTotal)
	}
	if p.NTotal > math.MaxInt32 {
		return invalidf("n_total must not exceed %d, got %d", math.MaxInt32, p.NTotal)
	}
	if p.DaysOfInteractions <= 0 {
		return invalidf("days_of_interactions must be positive, got %d", p.DaysOfInteractions)
	}
	if p.EndTime <= 0 {
		return invalidf("end_time must be positive, got %d", p.EndTime)
	}
	if p.NSeedInfection < 0 {
		return invalidf("n_seed_infection must be non-negative, got %d", p.NSeedInfection)
	}
	if len(p.MeanRandomInteractions) != NAgeGroups {
		return invalidf("mean_random_interactions needs %d entries (child, adult, elderly), got %d",
			NAgeGroups, len(p.MeanRandomInteractions))
	}
	for i, v := range p.MeanRandomInteractions {
		if v < 0 {
			return invalidf("mean_random_interactions[%s] must be non-negative, got %d", AgeGroup(i), v)
		}
	}
	if len(p.PopulationFractions) != NAgeGroups {
		return invalidf("population_fractions needs %d entries (child, adult, elderly), got %d",
			NAgeGroups, len(p.PopulationFractions))
	}
	total := 0.0
	for i, f := range p.PopulationFractions {
		if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
			return invalidf("population_fractions[%s] must be a finite non-negative number, got %f", AgeGroup(i), f)
		}
		total += f
	}
	if total <= 0 {
		return invalidf("population_fractions must not all be zero")
	}
	if p.InteractionCapacity < 0 {
		return invalidf("interaction_capacity must be non-negative, got %d", p.InteractionCapacity)
	}
	if p.EventCapacity < 0 {
		return invalidf("event_capacity must be non-negative, got %d", p.EventCapacity)
	}
	if !trace.IsValidTraceLevel(p.TraceLevel) {
		return invalidf("unknown trace_level %q; valid: none, infections", p.TraceLevel)
	}
	return nil
}
