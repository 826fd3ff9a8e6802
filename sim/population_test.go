package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAgeGroupBounds_ProportionalAllocation(t *testing.T) {
	tests := []struct {
		name      string
		fractions []float64
		n         int
		want      [NAgeGroups]int
	}{
		{"even thirds", []float64{1, 1, 1}, 9, [NAgeGroups]int{3, 6, 9}},
		{"unnormalized ratios", []float64{2, 6, 2}, 10, [NAgeGroups]int{2, 8, 10}},
		{"empty child group", []float64{0, 1, 1}, 4, [NAgeGroups]int{0, 2, 4}},
		{"everyone elderly", []float64{0, 0, 1}, 5, [NAgeGroups]int{0, 0, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ageGroupBounds(tt.fractions, tt.n))
		})
	}
}

func TestNewPopulation_AssignsGroupsAndInteractions(t *testing.T) {
	// GIVEN a population of 10 split 2/6/2 with distinct per-group means
	p := uniformParams(10, 0, 3, 5, 0)
	p.MeanRandomInteractions = []int{1, 4, 2}

	// WHEN the population is built
	pop := newPopulation(&p)

	// THEN groups follow the stratification and fix MeanInteractions
	assert.Len(t, pop, 10)
	for i, ind := range pop {
		assert.Equal(t, int32(i), ind.Idx)
		assert.Equal(t, StatusUninfected, ind.Status)
		switch {
		case i < 2:
			assert.Equal(t, AgeChild, ind.AgeGroup)
			assert.Equal(t, 1, ind.MeanInteractions)
		case i < 8:
			assert.Equal(t, AgeAdult, ind.AgeGroup)
			assert.Equal(t, 4, ind.MeanInteractions)
		default:
			assert.Equal(t, AgeElderly, ind.AgeGroup)
			assert.Equal(t, 2, ind.MeanInteractions)
		}
		for slot := 0; slot < 3; slot++ {
			assert.Equal(t, NoInteraction, ind.InteractionHead(slot))
			assert.Equal(t, 0, ind.NInteractions(slot))
		}
	}
}

func TestNewPopulation_SlotStorageIsDisjoint(t *testing.T) {
	p := uniformParams(3, 1, 2, 5, 0)
	pop := newPopulation(&p)

	pop[0].addInteraction(1, 5)
	assert.Equal(t, InteractionHandle(5), pop[0].InteractionHead(1))
	assert.Equal(t, NoInteraction, pop[1].InteractionHead(0), "neighbouring individual must not share slot storage")
	assert.Equal(t, 0, pop[1].NInteractions(0))
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "uninfected", StatusUninfected.String())
	assert.Equal(t, "presymptomatic", StatusPresymptomatic.String())
	assert.Equal(t, "death", StatusDeath.String())
	assert.Equal(t, "Status(42)", Status(42).String())
	assert.Equal(t, "elderly", AgeElderly.String())
}
