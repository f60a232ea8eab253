package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hotspot/internal/models"
)

func TestDataset(t *testing.T) {
	records := append(scenario(), rec(day(2019, 9, 10), "C", "P3", models.ConfidenceNominal, 2))
	ds := NewDataset(records)

	assert.Equal(t, 4, ds.Len())
	assert.Equal(t, []int{2019, 2021}, ds.Years())
	assert.True(t, ds.HasYear(2019))
	assert.False(t, ds.HasYear(2020))

	// Mutating the caller's slice must not leak into the dataset.
	records[0].RegencyCity = "mutated"
	assert.Equal(t, "A", ds.ForYear(2021)[0].RegencyCity)

	// Nor may mutating a filtered slice.
	sub := ds.ForYear(2021)
	sub[0].Province = "mutated"
	assert.Equal(t, "P1", ds.ForYear(2021)[0].Province)

	years := ds.Years()
	years[0] = 1
	assert.Equal(t, []int{2019, 2021}, ds.Years())

	assert.Equal(t, 2021, ds.DefaultYear(2021))
	assert.Equal(t, 2021, ds.DefaultYear(2030), "falls back to the latest year")
	assert.Equal(t, 2021, NewDataset(nil).DefaultYear(2021))
}
