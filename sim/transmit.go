package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/abm-sim/abm-sim/sim/trace"
)

// transmitVirus replays every earlier day's infections over today's network.
// Each infector recorded on days time-1 down to 0 infects every contact in the
// current day-slot who is still uninfected. There is no recovery cutoff here:
// an individual stays an infector for the rest of the run.
func (m *Model) transmitVirus() error {
	slot := m.interactionDayIdx
	for day := m.time - 1; day >= 0; day-- {
		for eh := m.infected[day]; eh != NoEvent; {
			ev := m.events.Get(eh)
			infector := &m.population[ev.Individual]
			for ih := infector.InteractionHead(slot); ih != NoInteraction; {
				rec := m.interactions.Get(ih)
				if m.population[rec.Individual].Status == StatusUninfected {
					if err := m.recordInfection(rec.Individual, infector.Idx); err != nil {
						return fmt.Errorf("transmitting from %d: %w", infector.Idx, err)
					}
				}
				ih = rec.Next
			}
			eh = ev.Next
		}
	}
	return nil
}

// recordInfection moves an individual into the initial infected state and links
// a new event into today's infected list. It is the only writer of infection
// status inside the core.
func (m *Model) recordInfection(idx int32, infector int32) error {
	eh, err := m.events.Alloc()
	if err != nil {
		return err
	}
	indiv := &m.population[idx]
	indiv.Status = StatusPresymptomatic

	ev := m.events.Get(eh)
	ev.Individual = idx
	ev.Infector = infector
	ev.Next = m.infected[m.time]
	m.infected[m.time] = eh

	m.nInfectedDaily[m.time]++
	m.nInfected++

	if m.trace != nil {
		m.trace.RecordInfection(trace.InfectionRecord{
			Day:        m.time,
			Individual: idx,
			Infector:   infector,
			Seed:       infector == NoIndividual,
		})
	}
	logrus.Tracef("[day %04d] infected %d (infector %d)", m.time, idx, infector)
	return nil
}
