// Package output exports per-day results of a finished or running model.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/abm-sim/abm-sim/sim"
)

// Row is one day of the time series.
type Row struct {
	Day             int
	NewInfections   int64
	TotalInfections int64
	Interactions    int
	DroppedSlots    int
	MeanDegree      float64
	DegreeVariance  float64
}

var csvHeader = []string{
	"time", "new_infections", "total_infected", "n_interactions", "dropped_slots", "mean_degree", "degree_variance",
}

// Collect builds the time series from day 0 up to the model's current day.
// Day 0 holds the seed infections and has no network.
func Collect(m *sim.Model) []Row {
	rows := make([]Row, 0, m.Time()+1)
	var total int64
	for day := 0; day <= m.Time(); day++ {
		total += m.DailyInfected(day)
		row := Row{Day: day, NewInfections: m.DailyInfected(day), TotalInfections: total}
		if ns, ok := m.NetworkStats(day); ok {
			row.Interactions = ns.Records
			row.DroppedSlots = ns.DroppedSlots
			row.MeanDegree = ns.MeanDegree
			row.DegreeVariance = ns.DegreeVariance
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteCSV writes rows with a header line.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing time series header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Day),
			strconv.FormatInt(r.NewInfections, 10),
			strconv.FormatInt(r.TotalInfections, 10),
			strconv.Itoa(r.Interactions),
			strconv.Itoa(r.DroppedSlots),
			strconv.FormatFloat(r.MeanDegree, 'f', 4, 64),
			strconv.FormatFloat(r.DegreeVariance, 'f', 4, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing time series day %d: %w", r.Day, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes rows to path, replacing any existing file.
func WriteCSVFile(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating time series file: %w", err)
	}
	if err := WriteCSV(f, rows); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
