package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalInfections         int
	SeedInfections          int
	TransmittedInfections   int
	UniqueInfectors         int
	MeanSecondaryInfections float64 // over infectors that infected at least one contact
	MaxSecondaryInfections  int
	DailyCounts             map[int]int // day → infections recorded that day
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		DailyCounts: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	secondary := make(map[int32]int)
	for _, r := range st.Infections {
		summary.TotalInfections++
		summary.DailyCounts[r.Day]++
		if r.Seed {
			summary.SeedInfections++
			continue
		}
		summary.TransmittedInfections++
		secondary[r.Infector]++
	}

	summary.UniqueInfectors = len(secondary)
	if len(secondary) > 0 {
		for _, n := range secondary {
			if n > summary.MaxSecondaryInfections {
				summary.MaxSecondaryInfections = n
			}
		}
		summary.MeanSecondaryInfections = float64(summary.TransmittedInfections) / float64(len(secondary))
	}
	return summary
}
