// Package trace provides infection-trace recording for post-run analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// TraceLevel controls the verbosity of infection tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelInfections captures every infection event, seeds included.
	TraceLevelInfections TraceLevel = "infections"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:       true,
	TraceLevelInfections: true,
	"":                   true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects infection records during a run.
type SimulationTrace struct {
	Config     TraceConfig
	Infections []InfectionRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:     config,
		Infections: make([]InfectionRecord, 0),
	}
}

// RecordInfection appends an infection record.
func (st *SimulationTrace) RecordInfection(record InfectionRecord) {
	st.Infections = append(st.Infections, record)
}
