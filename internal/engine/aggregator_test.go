package engine

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotspot/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rec(date time.Time, city, province string, conf models.Confidence, frp float64) models.FireRecord {
	return models.FireRecord{
		AcqDate:     date,
		Latitude:    -2.5,
		Longitude:   113.9,
		FRP:         frp,
		Confidence:  conf,
		RegencyCity: city,
		Province:    province,
		Year:        date.Year(),
	}
}

// Scenario:
// Row 0: A / P1, high, 2021-01-01
// Row 1: B / P1, low,  2021-01-01
// Row 2: A / P2, high, 2021-06-15
func scenario() []models.FireRecord {
	return []models.FireRecord{
		rec(day(2021, 1, 1), "A", "P1", models.ConfidenceHigh, 5),
		rec(day(2021, 1, 1), "B", "P1", models.ConfidenceLow, 3),
		rec(day(2021, 6, 15), "A", "P2", models.ConfidenceHigh, 10),
	}
}

func TestFilterYear(t *testing.T) {
	records := append(scenario(), rec(day(2020, 8, 1), "C", "P3", models.ConfidenceNominal, 1))

	got := FilterYear(records, 2021)
	require.Len(t, got, 3)
	assert.Equal(t, "A", got[0].RegencyCity)
	assert.Equal(t, "B", got[1].RegencyCity)
	assert.Equal(t, day(2021, 6, 15), got[2].AcqDate)

	missing := FilterYear(records, 1999)
	assert.NotNil(t, missing)
	assert.Empty(t, missing)
}

func TestTopRegions(t *testing.T) {
	t.Run("scenario cities ascending", func(t *testing.T) {
		got, err := TopRegions(scenario(), LevelRegencyCity, TopN)
		require.NoError(t, err)
		assert.Equal(t, []models.RegionCount{
			{Name: "B", Count: 1, Label: "1"},
			{Name: "A", Count: 2, Label: "2"},
		}, got)
	})

	t.Run("provinces", func(t *testing.T) {
		got, err := TopRegions(scenario(), LevelProvince, TopN)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "P1", got[1].Name)
		assert.Equal(t, 2, got[1].Count)
	})

	t.Run("truncates to n and keeps the largest", func(t *testing.T) {
		var records []models.FireRecord
		// region Rk gets k+1 detections
		for k := 0; k < 15; k++ {
			for j := 0; j <= k; j++ {
				records = append(records, rec(day(2021, 3, 1), fmt.Sprintf("R%02d", k), "P", models.ConfidenceNominal, 1))
			}
		}

		got, err := TopRegions(records, LevelRegencyCity, TopN)
		require.NoError(t, err)
		require.Len(t, got, TopN)

		for i := 1; i < len(got); i++ {
			assert.LessOrEqual(t, got[i-1].Count, got[i].Count)
		}
		assert.Equal(t, 6, got[0].Count, "smallest shown must beat every excluded region")
		assert.Equal(t, "R14", got[len(got)-1].Name)
	})

	t.Run("ties keep first-seen order", func(t *testing.T) {
		records := []models.FireRecord{
			rec(day(2021, 1, 1), "X", "P", models.ConfidenceLow, 1),
			rec(day(2021, 1, 1), "Y", "P", models.ConfidenceLow, 1),
			rec(day(2021, 1, 1), "Z", "P", models.ConfidenceLow, 1),
		}
		got, err := TopRegions(records, LevelRegencyCity, 2)
		require.NoError(t, err)
		// descending pick is X, Y; display order flips it
		assert.Equal(t, []string{"Y", "X"}, []string{got[0].Name, got[1].Name})
	})

	t.Run("labels use thousands separators", func(t *testing.T) {
		records := make([]models.FireRecord, 1234)
		for i := range records {
			records[i] = rec(day(2021, 1, 1), "Big", "P", models.ConfidenceLow, 1)
		}
		got, err := TopRegions(records, LevelRegencyCity, TopN)
		require.NoError(t, err)
		assert.Equal(t, "1,234", got[0].Label)
	})

	t.Run("empty input", func(t *testing.T) {
		got, err := TopRegions(nil, LevelProvince, TopN)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("blank region fails", func(t *testing.T) {
		_, err := TopRegions([]models.FireRecord{rec(day(2021, 1, 1), "", "P", models.ConfidenceLow, 1)}, LevelRegencyCity, TopN)
		assert.ErrorIs(t, err, ErrEmptyRegion)
	})
}

func TestDensityPoints(t *testing.T) {
	points, maxFRP, err := DensityPoints(scenario())
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, 10.0, maxFRP)
	assert.Equal(t, "B", points[1].RegencyCity)
	assert.Equal(t, 3.0, points[1].FRP)

	empty, maxFRP, err := DensityPoints(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.Zero(t, maxFRP)

	bad := scenario()
	bad[2].Latitude = math.NaN()
	_, _, err = DensityPoints(bad)
	assert.ErrorIs(t, err, ErrInvalidPoint)

	bad = scenario()
	bad[0].FRP = -1
	_, _, err = DensityPoints(bad)
	assert.ErrorIs(t, err, ErrInvalidPoint)
}

func TestDailyCounts(t *testing.T) {
	series, err := DailyCounts(scenario())
	require.NoError(t, err)

	// 2021-01-01 .. 2021-06-15 inclusive
	want := int(day(2021, 6, 15).Sub(day(2021, 1, 1)).Hours()/24) + 1
	require.Len(t, series, want)

	assert.Equal(t, day(2021, 1, 1), series[0].Date)
	assert.Equal(t, 2, series[0].Count)
	assert.Equal(t, 0, series[1].Count)
	assert.Equal(t, day(2021, 6, 15), series[len(series)-1].Date)
	assert.Equal(t, 1, series[len(series)-1].Count)

	sum := 0
	for i, p := range series {
		sum += p.Count
		if i > 0 {
			assert.True(t, p.Date.After(series[i-1].Date))
		}
	}
	assert.Equal(t, 3, sum)
}

func TestDailyCounts_UnsortedAndTimeOfDay(t *testing.T) {
	records := []models.FireRecord{
		rec(time.Date(2021, 9, 3, 18, 30, 0, 0, time.UTC), "A", "P", models.ConfidenceLow, 1),
		rec(time.Date(2021, 9, 1, 5, 42, 0, 0, time.UTC), "A", "P", models.ConfidenceLow, 1),
		rec(time.Date(2021, 9, 3, 1, 0, 0, 0, time.UTC), "A", "P", models.ConfidenceLow, 1),
	}
	series, err := DailyCounts(records)
	require.NoError(t, err)
	assert.Equal(t, []models.DailyCount{
		{Date: day(2021, 9, 1), Count: 1},
		{Date: day(2021, 9, 2), Count: 0},
		{Date: day(2021, 9, 3), Count: 2},
	}, series)
}

func TestDailyCounts_Empty(t *testing.T) {
	series, err := DailyCounts(nil)
	require.NoError(t, err)
	assert.NotNil(t, series)
	assert.Empty(t, series)

	_, err = DailyCounts([]models.FireRecord{{RegencyCity: "A", Province: "P"}})
	assert.ErrorIs(t, err, ErrMissingDate)
}

func TestConfidenceShares(t *testing.T) {
	shares, err := ConfidenceShares(scenario())
	require.NoError(t, err)
	assert.Equal(t, []models.ConfidenceShare{
		{Level: models.ConfidenceHigh, Count: 2, Percent: 66.67},
		{Level: models.ConfidenceLow, Count: 1, Percent: 33.33},
	}, shares)

	records := []models.FireRecord{
		rec(day(2021, 1, 1), "A", "P", models.ConfidenceNominal, 1),
		rec(day(2021, 1, 1), "A", "P", models.ConfidenceLow, 1),
		rec(day(2021, 1, 1), "A", "P", models.ConfidenceHigh, 1),
	}
	shares, err = ConfidenceShares(records)
	require.NoError(t, err)
	require.Len(t, shares, 3)

	levels := []models.Confidence{shares[0].Level, shares[1].Level, shares[2].Level}
	assert.Equal(t, []models.Confidence{models.ConfidenceHigh, models.ConfidenceLow, models.ConfidenceNominal}, levels)

	total := 0.0
	for _, s := range shares {
		total += s.Percent
	}
	assert.InDelta(t, 100.0, total, 0.1)
}

func TestConfidenceShares_Empty(t *testing.T) {
	shares, err := ConfidenceShares(nil)
	require.NoError(t, err)
	assert.NotNil(t, shares)
	assert.Empty(t, shares)
}
