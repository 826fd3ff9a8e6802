package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	sim "github.com/abm-sim/abm-sim/sim"
	"github.com/abm-sim/abm-sim/sim/trace"
)

// printSummary displays the end-of-run report.
// Trace statistics are included only when the run collected a trace.
func printSummary(w io.Writer, m *sim.Model, ts *trace.TraceSummary, elapsed time.Duration) {
	p := m.Params
	fmt.Fprintln(w, "=== Simulation Summary ===")
	fmt.Fprintf(w, "Population           : %s\n", humanize.Comma(p.NTotal))
	fmt.Fprintf(w, "Days simulated       : %d\n", m.Time())
	fmt.Fprintf(w, "Seed infections      : %s\n", humanize.Comma(m.DailyInfected(0)))
	fmt.Fprintf(w, "Total infected       : %s (%.2f%%)\n", humanize.Comma(m.TotalInfected()),
		100*float64(m.TotalInfected())/float64(p.NTotal))

	peakDay, peak := 0, int64(0)
	for day := 1; day <= m.Time(); day++ {
		if n := m.DailyInfected(day); n > peak {
			peakDay, peak = day, n
		}
	}
	fmt.Fprintf(w, "Peak daily infections: %s on day %d\n", humanize.Comma(peak), peakDay)

	if arena := m.InteractionArena(); arena != nil {
		fmt.Fprintf(w, "Interaction arena    : %s records, %d wraps\n",
			humanize.Comma(int64(arena.Capacity())), arena.Wraps())
	}
	if events := m.EventArena(); events != nil {
		fmt.Fprintf(w, "Event arena          : %s of %s records used\n",
			humanize.Comma(int64(events.Len())), humanize.Comma(int64(events.Capacity())))
	}
	if ts != nil && ts.TotalInfections > 0 {
		fmt.Fprintf(w, "Secondary infections : mean %.2f, max %d over %d infectors\n",
			ts.MeanSecondaryInfections, ts.MaxSecondaryInfections, ts.UniqueInfectors)
	}
	fmt.Fprintf(w, "Wall time            : %s\n", elapsed.Round(time.Millisecond))
}
