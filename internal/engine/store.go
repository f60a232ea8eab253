package engine

import (
	"slices"

	"hotspot/internal/models"
)

// Dataset is the full set of hotspot records, loaded once and never mutated.
// It is safe to share between concurrent render cycles.
type Dataset struct {
	records []models.FireRecord
	years   []int // distinct, ascending
}

// NewDataset copies records into an immutable Dataset.
func NewDataset(records []models.FireRecord) *Dataset {
	ds := &Dataset{records: slices.Clone(records)}

	seen := make(map[int]struct{})
	for _, r := range ds.records {
		if _, ok := seen[r.Year]; !ok {
			seen[r.Year] = struct{}{}
			ds.years = append(ds.years, r.Year)
		}
	}
	slices.Sort(ds.years)
	return ds
}

func (d *Dataset) Len() int { return len(d.records) }

// Years returns the distinct years present, ascending.
func (d *Dataset) Years() []int { return slices.Clone(d.years) }

func (d *Dataset) HasYear(year int) bool {
	_, found := slices.BinarySearch(d.years, year)
	return found
}

// ForYear returns a fresh slice with the records of the given year.
func (d *Dataset) ForYear(year int) []models.FireRecord {
	return FilterYear(d.records, year)
}

// DefaultYear returns preferred when the dataset holds it, otherwise the
// latest year. An empty dataset yields preferred.
func (d *Dataset) DefaultYear(preferred int) int {
	if len(d.years) == 0 || d.HasYear(preferred) {
		return preferred
	}
	return d.years[len(d.years)-1]
}
