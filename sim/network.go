// Builds the daily random interaction network from the Possible-Interaction Template.

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// NetworkStats describes the network built for one simulated day.
type NetworkStats struct {
	Day            int
	Pairs          int     // matched pairs
	Records        int     // interaction records written (2 per pair)
	DroppedSlots   int     // template slots left unmatched (self-pairs and an odd leftover)
	MeanDegree     float64 // mean realized contacts per individual
	DegreeVariance float64 // sample variance of realized contacts
}

// buildDailyNetwork pairs up a fresh shuffle of the template for the current
// day-slot. Adjacent entries naming the same individual drop one slot rather
// than being reshuffled, which slightly lowers that individual's realized degree.
func (m *Model) buildDailyNetwork() error {
	slot := m.interactionDayIdx
	for i := range m.population {
		m.population[i].resetSlot(slot)
	}

	buf := m.template.shuffled(m.networkRNG)
	pairs := 0
	for i := 0; i+1 < len(buf); {
		a, b := buf[i], buf[i+1]
		if a == b {
			i++
			continue
		}
		if err := m.link(slot, a, b); err != nil {
			return err
		}
		pairs++
		i += 2
	}

	m.stats[m.time] = m.networkStats(slot, pairs, len(buf))
	logrus.Debugf("[day %04d] network built: %d pairs, %d dropped slots", m.time, pairs, len(buf)-2*pairs)
	return nil
}

// link records a contact in both directions, prepending each record to its owner's list.
func (m *Model) link(slot int, a, b int32) error {
	ha, err := m.interactions.Alloc(m.time)
	if err != nil {
		return fmt.Errorf("linking %d-%d: %w", a, b, err)
	}
	hb, err := m.interactions.Alloc(m.time)
	if err != nil {
		return fmt.Errorf("linking %d-%d: %w", a, b, err)
	}
	indivA, indivB := &m.population[a], &m.population[b]

	recA := m.interactions.Get(ha)
	recA.Individual = b
	recA.Next = indivA.InteractionHead(slot)
	indivA.addInteraction(slot, ha)

	recB := m.interactions.Get(hb)
	recB.Individual = a
	recB.Next = indivB.InteractionHead(slot)
	indivB.addInteraction(slot, hb)
	return nil
}

func (m *Model) networkStats(slot, pairs, slots int) NetworkStats {
	for i := range m.population {
		m.degrees[i] = float64(m.population[i].NInteractions(slot))
	}
	ns := NetworkStats{
		Day:          m.time,
		Pairs:        pairs,
		Records:      2 * pairs,
		DroppedSlots: slots - 2*pairs,
	}
	if len(m.degrees) < 2 {
		ns.MeanDegree = stat.Mean(m.degrees, nil)
		return ns
	}
	ns.MeanDegree, ns.DegreeVariance = stat.MeanVariance(m.degrees, nil)
	return ns
}
