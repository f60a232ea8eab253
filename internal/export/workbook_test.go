package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"hotspot/internal/models"
)

func sampleDashboard() *models.Dashboard {
	d0 := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	return &models.Dashboard{
		Year: 2021,
		TopCities: models.BarChart{Bars: []models.RegionCount{
			{Name: "B", Count: 1}, {Name: "A", Count: 2},
		}},
		TopProvinces: models.BarChart{Bars: []models.RegionCount{{Name: "P1", Count: 3}}},
		Density: models.DensityMap{Points: []models.DensityPoint{
			{Latitude: -2.5, Longitude: 113.9, FRP: 5, AcqDate: d0, RegencyCity: "A", Province: "P1"},
		}},
		Daily: models.LineChart{Series: []models.DailyCount{
			{Date: d0, Count: 2}, {Date: d0.AddDate(0, 0, 1), Count: 0},
		}},
		Confidence: models.PieChart{Slices: []models.ConfidenceShare{
			{Level: models.ConfidenceHigh, Count: 2, Percent: 66.67},
		}},
	}
}

func TestWorkbook(t *testing.T) {
	f, err := Workbook(sampleDashboard())
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetCities, SheetProvinces, SheetHotspots, SheetDaily, SheetConfidence}, f.GetSheetList())

	rows, err := f.GetRows(SheetCities)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Kabupaten/Kota", "Jumlah Titik Api"},
		{"A", "2"},
		{"B", "1"},
	}, rows)

	rows, err = f.GetRows(SheetDaily)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"2021-01-02", "0"}, rows[2])

	rows, err = f.GetRows(SheetConfidence)
	require.NoError(t, err)
	assert.Equal(t, []string{"high", "2", "66.67"}, rows[1])
}

func TestWrite_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleDashboard()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetHotspots)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2021-01-01", rows[1][0])
	assert.Equal(t, "A", rows[1][4])
}

func TestWorkbook_EmptyDashboard(t *testing.T) {
	f, err := Workbook(&models.Dashboard{Year: 1999})
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetProvinces)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}
