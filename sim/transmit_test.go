package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// emptyNetworkModel builds a model whose template is empty, so tests can lay
// out contacts by hand with link.
func emptyNetworkModel(t *testing.T, n int64, window, endTime int) *Model {
	t.Helper()
	p := uniformParams(n, 0, window, endTime, 0)
	p.InteractionCapacity = 64
	return newTestModel(t, p)
}

func TestTransmitVirus_InfectsUninfectedContacts(t *testing.T) {
	// GIVEN individual 0 infected on day 0 and in contact with 1 and 2 on day 1
	m := emptyNetworkModel(t, 4, 1, 5)
	require.NoError(t, m.recordInfection(0, NoIndividual))
	m.time = 1
	require.NoError(t, m.link(0, 0, 1))
	require.NoError(t, m.link(0, 0, 2))

	// WHEN the virus is transmitted
	require.NoError(t, m.transmitVirus())

	// THEN both contacts are infected by 0, and 3 is untouched
	assert.Equal(t, StatusPresymptomatic, m.Population()[1].Status)
	assert.Equal(t, StatusPresymptomatic, m.Population()[2].Status)
	assert.Equal(t, StatusUninfected, m.Population()[3].Status)
	assert.Equal(t, int64(2), m.DailyInfected(1))
	assert.Equal(t, int64(3), m.TotalInfected())
	for _, ev := range m.InfectedOn(1) {
		assert.Equal(t, int32(0), ev.Infector)
	}
}

func TestTransmitVirus_SameDayInfectionsDoNotSpread(t *testing.T) {
	// GIVEN a chain 0-1-2 on day 1 with only 0 infected beforehand
	m := emptyNetworkModel(t, 3, 1, 5)
	require.NoError(t, m.recordInfection(0, NoIndividual))
	m.time = 1
	require.NoError(t, m.link(0, 0, 1))
	require.NoError(t, m.link(0, 1, 2))

	// WHEN the virus is transmitted
	require.NoError(t, m.transmitVirus())

	// THEN 1 is infected today but is not an infector until tomorrow
	assert.Equal(t, StatusPresymptomatic, m.Population()[1].Status)
	assert.Equal(t, StatusUninfected, m.Population()[2].Status)
}

func TestTransmitVirus_ReplaysWholeHistory(t *testing.T) {
	// GIVEN an individual infected on day 0 and a contact on day 3
	m := emptyNetworkModel(t, 2, 1, 5)
	require.NoError(t, m.recordInfection(0, NoIndividual))
	m.time = 3
	require.NoError(t, m.link(0, 0, 1))

	// WHEN transmitting on day 3
	require.NoError(t, m.transmitVirus())

	// THEN the day-0 infector is still infectious
	assert.Equal(t, StatusPresymptomatic, m.Population()[1].Status)
	assert.Equal(t, int64(1), m.DailyInfected(3))
}

func TestTransmitVirus_ReadsCurrentSlotOnly(t *testing.T) {
	// GIVEN a contact recorded in slot 1 while the current slot is 0
	m := emptyNetworkModel(t, 2, 2, 5)
	require.NoError(t, m.recordInfection(0, NoIndividual))
	m.time = 1
	require.NoError(t, m.link(1, 0, 1))

	// WHEN transmitting
	require.NoError(t, m.transmitVirus())

	// THEN the contact from another day-slot is ignored
	assert.Equal(t, StatusUninfected, m.Population()[1].Status)
}

func TestTransmitVirus_RepeatedContactInfectsOnce(t *testing.T) {
	m := emptyNetworkModel(t, 2, 1, 5)
	require.NoError(t, m.recordInfection(0, NoIndividual))
	m.time = 1
	require.NoError(t, m.link(0, 0, 1))
	require.NoError(t, m.link(0, 0, 1))

	require.NoError(t, m.transmitVirus())

	assert.Equal(t, int64(1), m.DailyInfected(1))
}

func TestRecordInfection_PrependsToTodaysList(t *testing.T) {
	m := emptyNetworkModel(t, 3, 1, 5)
	require.NoError(t, m.recordInfection(2, NoIndividual))
	require.NoError(t, m.recordInfection(0, NoIndividual))

	events := m.InfectedOn(0)
	require.Len(t, events, 2)
	assert.Equal(t, int32(0), events[0].Individual)
	assert.Equal(t, int32(2), events[1].Individual)
	assert.Equal(t, NoIndividual, events[0].Infector)
}
