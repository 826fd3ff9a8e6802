// sim/model.go
package sim

import (
	"fmt"
	"math"
	"math/rand"
	"unsafe"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/abm-sim/abm-sim/sim/trace"
)

// Model is the core object that holds simulation time, the population, and the
// two arenas. All storage is sized in NewModel; stepping allocates only when
// infection tracing is enabled.
// A Model is not safe for concurrent use.
type Model struct {
	Params Parameters

	time       int
	population []Individual
	template   *InteractionTemplate

	interactions      *InteractionArena
	interactionDayIdx int // day-slot written by the next network build

	events         *EventArena
	infected       []EventHandle // per-day head of the infected-event list
	nInfectedDaily []int64
	nInfected      int64

	stats   []NetworkStats // per-day network summary
	degrees []float64      // scratch for degree statistics

	networkRNG *rand.Rand
	seedRNG    *rand.Rand
	trace      *trace.SimulationTrace

	err error // sticky: set by the first failed step
}

// NewModel validates params, provisions every store, and seeds the initial
// infections by drawing n_seed_infection individuals uniformly with replacement.
// A draw that lands on an already infected individual is skipped.
func NewModel(params *Parameters, rng *PartitionedRNG) (*Model, error) {
	if params == nil {
		return nil, invalidf("parameters must not be nil")
	}
	if rng == nil {
		return nil, invalidf("random source must not be nil")
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	sizes, err := deriveSizes(params)
	if err != nil {
		return nil, err
	}
	logrus.Infof("provisioning model: %s individuals, %s template slots, %s interaction records, %s event records (~%s)",
		humanize.Comma(params.NTotal), humanize.Comma(sizes.templateSlots),
		humanize.Comma(sizes.interactionCapacity), humanize.Comma(sizes.eventCapacity),
		humanize.IBytes(sizes.bytes))

	m := &Model{
		Params:         *params,
		population:     newPopulation(params),
		interactions:   NewInteractionArena(int(sizes.interactionCapacity), params.DaysOfInteractions),
		events:         NewEventArena(int(sizes.eventCapacity)),
		infected:       make([]EventHandle, params.EndTime+1),
		nInfectedDaily: make([]int64, params.EndTime+1),
		stats:          make([]NetworkStats, params.EndTime+1),
		degrees:        make([]float64, params.NTotal),
		networkRNG:     rng.ForSubsystem(SubsystemNetwork),
		seedRNG:        rng.ForSubsystem(SubsystemSeed),
	}
	m.template = newInteractionTemplate(m.population)
	for day := range m.infected {
		m.infected[day] = NoEvent
	}
	if trace.TraceLevel(params.TraceLevel) == trace.TraceLevelInfections {
		m.trace = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelInfections})
	}

	if err := m.seedInfections(); err != nil {
		return nil, err
	}
	logrus.Infof("[day %04d] seeded %d infections", m.time, m.nInfected)
	return m, nil
}

func (m *Model) seedInfections() error {
	for i := 0; i < m.Params.NSeedInfection; i++ {
		person := int32(m.seedRNG.Int63n(m.Params.NTotal))
		if m.population[person].Status != StatusUninfected {
			logrus.Debugf("seed draw %d repeated individual %d", i, person)
			continue
		}
		if err := m.recordInfection(person, NoIndividual); err != nil {
			return fmt.Errorf("seeding infection %d: %w", i, err)
		}
	}
	return nil
}

// OneTimeStep advances the model by one day: it builds the day's network into
// the current day-slot, spreads infection over it, and moves the day-slot
// cursor on modulo days_of_interactions.
// Any failure aborts the step and is returned by every later call.
func (m *Model) OneTimeStep() error {
	if m.err != nil {
		return m.err
	}
	if m.time >= m.Params.EndTime {
		m.err = fmt.Errorf("%w: day %d is past end_time %d", ErrCapacityExceeded, m.time+1, m.Params.EndTime)
		return m.err
	}

	m.time++
	if err := m.buildDailyNetwork(); err != nil {
		m.err = fmt.Errorf("day %d: building network: %w", m.time, err)
		return m.err
	}
	if err := m.transmitVirus(); err != nil {
		m.err = fmt.Errorf("day %d: %w", m.time, err)
		return m.err
	}
	m.interactionDayIdx = (m.interactionDayIdx + 1) % m.Params.DaysOfInteractions

	logrus.Debugf("[day %04d] %d new infections, %d total", m.time, m.nInfectedDaily[m.time], m.nInfected)
	return nil
}

// Run steps the model until end_time or the first error.
func (m *Model) Run() error {
	for m.time < m.Params.EndTime {
		if err := m.OneTimeStep(); err != nil {
			return err
		}
	}
	logrus.Infof("[day %04d] simulation ended with %d infections", m.time, m.nInfected)
	return nil
}

// Destroy releases all storage owned by the model. Later steps return ErrDestroyed.
func (m *Model) Destroy() {
	m.population = nil
	m.template = nil
	m.interactions = nil
	m.events = nil
	m.infected = nil
	m.nInfectedDaily = nil
	m.stats = nil
	m.degrees = nil
	m.trace = nil
	m.err = ErrDestroyed
}

// Time returns the current simulated day.
func (m *Model) Time() int {
	return m.time
}

// InteractionDayIdx returns the day-slot the next network build will write.
func (m *Model) InteractionDayIdx() int {
	return m.interactionDayIdx
}

// TotalInfected returns the cumulative number of infections, seeds included.
func (m *Model) TotalInfected() int64 {
	return m.nInfected
}

// DailyInfected returns the number of infections recorded on day; 0 outside [0, end_time].
func (m *Model) DailyInfected(day int) int64 {
	if day < 0 || day >= len(m.nInfectedDaily) {
		return 0
	}
	return m.nInfectedDaily[day]
}

// NetworkStats returns the network summary for a day that has been simulated.
func (m *Model) NetworkStats(day int) (NetworkStats, bool) {
	if day < 1 || day > m.time || day >= len(m.stats) {
		return NetworkStats{}, false
	}
	return m.stats[day], true
}

// Population returns the individuals. Callers MUST NOT modify the slice or the
// adjacency state of its elements; Status may be updated by progression collaborators.
func (m *Model) Population() []Individual {
	return m.population
}

// Contacts returns the contacts of individual idx in the given day-slot, most
// recently linked first. It allocates and is intended for telemetry and tests.
func (m *Model) Contacts(idx int32, slot int) []int32 {
	indiv := &m.population[idx]
	contacts := make([]int32, 0, indiv.NInteractions(slot))
	for h := indiv.InteractionHead(slot); h != NoInteraction; {
		rec := m.interactions.Get(h)
		contacts = append(contacts, rec.Individual)
		h = rec.Next
	}
	return contacts
}

// InfectedOn returns the events recorded on day, most recent first.
func (m *Model) InfectedOn(day int) []InfectionEvent {
	if day < 0 || day >= len(m.infected) {
		return nil
	}
	events := make([]InfectionEvent, 0, m.nInfectedDaily[day])
	for h := m.infected[day]; h != NoEvent; {
		ev := m.events.Get(h)
		events = append(events, *ev)
		h = ev.Next
	}
	return events
}

// InteractionArena exposes the interaction arena for capacity telemetry.
func (m *Model) InteractionArena() *InteractionArena {
	return m.interactions
}

// EventArena exposes the event arena for capacity telemetry.
func (m *Model) EventArena() *EventArena {
	return m.events
}

// Template exposes the Possible-Interaction Template.
func (m *Model) Template() *InteractionTemplate {
	return m.template
}

// Trace returns the infection trace, or nil when trace_level is "none".
func (m *Model) Trace() *trace.SimulationTrace {
	return m.trace
}

// Err returns the error that stopped the model, if any.
func (m *Model) Err() error {
	return m.err
}

type modelSizes struct {
	templateSlots       int64
	interactionCapacity int64
	eventCapacity       int64
	bytes               uint64
}

// deriveSizes computes every store size up front. Handles are int32 offsets,
// so any store larger than math.MaxInt32 records cannot be addressed.
func deriveSizes(p *Parameters) (modelSizes, error) {
	var s modelSizes
	slots, ok := exactTemplateSlots(p)
	if !ok {
		return s, fmt.Errorf("%w: template slots exceed the addressable %d", ErrOutOfMemory, math.MaxInt32)
	}
	s.templateSlots = slots

	s.interactionCapacity = p.InteractionCapacity
	if s.interactionCapacity == 0 {
		c, ok := mulBounded(s.templateSlots, int64(p.DaysOfInteractions), math.MaxInt32)
		if !ok {
			return s, fmt.Errorf("%w: %d template slots x %d days of interactions exceed %d interaction records",
				ErrOutOfMemory, s.templateSlots, p.DaysOfInteractions, math.MaxInt32)
		}
		s.interactionCapacity = c
	}
	if s.interactionCapacity > math.MaxInt32 {
		return s, fmt.Errorf("%w: interaction_capacity %d exceeds %d", ErrOutOfMemory, s.interactionCapacity, math.MaxInt32)
	}

	s.eventCapacity = p.EventCapacity
	if s.eventCapacity == 0 {
		s.eventCapacity = 2 * p.NTotal
	}
	if s.eventCapacity > math.MaxInt32 {
		return s, fmt.Errorf("%w: event capacity %d exceeds %d", ErrOutOfMemory, s.eventCapacity, math.MaxInt32)
	}

	slotEntries, ok := mulBounded(p.NTotal, int64(p.DaysOfInteractions), math.MaxInt32)
	if !ok {
		return s, fmt.Errorf("%w: %d individuals x %d days of interactions exceed %d adjacency slots",
			ErrOutOfMemory, p.NTotal, p.DaysOfInteractions, math.MaxInt32)
	}
	if p.EndTime >= math.MaxInt32 {
		return s, fmt.Errorf("%w: end_time %d exceeds %d", ErrOutOfMemory, p.EndTime, math.MaxInt32-1)
	}
	days := uint64(p.EndTime + 1)

	s.bytes = uint64(p.NTotal)*uint64(unsafe.Sizeof(Individual{})+unsafe.Sizeof(float64(0))) +
		uint64(slotEntries)*uint64(unsafe.Sizeof(InteractionHandle(0))+unsafe.Sizeof(int32(0))) +
		uint64(s.templateSlots)*2*uint64(unsafe.Sizeof(int32(0))) +
		uint64(s.interactionCapacity)*uint64(unsafe.Sizeof(Interaction{})) +
		uint64(s.eventCapacity)*uint64(unsafe.Sizeof(InfectionEvent{})) +
		days*uint64(unsafe.Sizeof(EventHandle(0))+unsafe.Sizeof(int64(0))+unsafe.Sizeof(NetworkStats{}))

	if p.MemoryLimitBytes > 0 && s.bytes > p.MemoryLimitBytes {
		return s, fmt.Errorf("%w: model needs %s, limit is %s", ErrOutOfMemory,
			humanize.IBytes(s.bytes), humanize.IBytes(p.MemoryLimitBytes))
	}
	return s, nil
}

// exactTemplateSlots sums MeanInteractions over the age-group allocation used by
// newPopulation. Reports false when the sum exceeds math.MaxInt32.
func exactTemplateSlots(p *Parameters) (int64, bool) {
	bounds := ageGroupBounds(p.PopulationFractions, int(p.NTotal))
	var total int64
	lo := 0
	for g := 0; g < NAgeGroups; g++ {
		n, ok := mulBounded(int64(bounds[g]-lo), int64(p.MeanRandomInteractions[g]), math.MaxInt32)
		if !ok {
			return 0, false
		}
		total += n
		lo = bounds[g]
	}
	return total, total <= math.MaxInt32
}

// mulBounded returns a*b when it does not exceed limit. a and b must be non-negative.
func mulBounded(a, b, limit int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > limit/b {
		return 0, false
	}
	return a * b, true
}
