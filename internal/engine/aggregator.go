package engine

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"hotspot/internal/models"
)

// TopN is the number of regions shown in each ranked bar chart.
const TopN = 10

var (
	ErrEmptyRegion  = errors.New("empty region name")
	ErrInvalidPoint = errors.New("invalid hotspot point")
)

// RegionLevel selects the administrative level used as grouping key.
type RegionLevel int

const (
	LevelRegencyCity RegionLevel = iota
	LevelProvince
)

func (l RegionLevel) String() string {
	if l == LevelProvince {
		return colProvince
	}
	return colRegencyCity
}

func (l RegionLevel) key(r *models.FireRecord) string {
	if l == LevelProvince {
		return r.Province
	}
	return r.RegencyCity
}

var countPrinter = message.NewPrinter(language.English)

// FormatCount renders n with thousands separators, e.g. 12345 -> "12,345".
func FormatCount(n int) string {
	return countPrinter.Sprintf("%d", n)
}

// FilterYear returns the records of the given year in their original order.
func FilterYear(records []models.FireRecord, year int) []models.FireRecord {
	out := make([]models.FireRecord, 0)
	for _, r := range records {
		if r.Year == year {
			out = append(out, r)
		}
	}
	return out
}

// TopRegions counts detections per region and returns the n busiest regions
// in ascending count order, so the largest bar renders last. Ties keep the
// order in which the regions were first seen.
func TopRegions(records []models.FireRecord, level RegionLevel, n int) ([]models.RegionCount, error) {
	index := make(map[string]int)
	groups := make([]models.RegionCount, 0)

	for i := range records {
		name := level.key(&records[i])
		if name == "" {
			return nil, fmt.Errorf("record %d: %w (%s)", i, ErrEmptyRegion, level)
		}
		if idx, ok := index[name]; ok {
			groups[idx].Count++
			continue
		}
		index[name] = len(groups)
		groups = append(groups, models.RegionCount{Name: name, Count: 1})
	}

	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Count > groups[j].Count })
	if len(groups) > n {
		groups = groups[:n]
	}

	// Flip to ascending for display.
	for i, j := 0, len(groups)-1; i < j; i, j = i+1, j-1 {
		groups[i], groups[j] = groups[j], groups[i]
	}
	for i := range groups {
		groups[i].Label = FormatCount(groups[i].Count)
	}
	return groups, nil
}

// DensityPoints passes every record through as a heatmap point and reports
// the largest FRP seen.
func DensityPoints(records []models.FireRecord) ([]models.DensityPoint, float64, error) {
	points := make([]models.DensityPoint, 0, len(records))
	var maxFRP float64

	for i, r := range records {
		if !finite(r.Latitude) || !finite(r.Longitude) {
			return nil, 0, fmt.Errorf("record %d: %w: coordinates (%v, %v)", i, ErrInvalidPoint, r.Latitude, r.Longitude)
		}
		if !finite(r.FRP) || r.FRP < 0 {
			return nil, 0, fmt.Errorf("record %d: %w: frp %v", i, ErrInvalidPoint, r.FRP)
		}
		if r.FRP > maxFRP {
			maxFRP = r.FRP
		}
		points = append(points, models.DensityPoint{
			Latitude:    r.Latitude,
			Longitude:   r.Longitude,
			FRP:         r.FRP,
			AcqDate:     r.AcqDate,
			RegencyCity: r.RegencyCity,
			Province:    r.Province,
		})
	}
	return points, maxFRP, nil
}

// DailyCounts buckets detections by UTC calendar day. Every day between the
// first and last detection is present; days without detections count 0.
func DailyCounts(records []models.FireRecord) ([]models.DailyCount, error) {
	series := make([]models.DailyCount, 0)
	if len(records) == 0 {
		return series, nil
	}

	counts := make(map[time.Time]int)
	var first, last time.Time
	for i, r := range records {
		if r.AcqDate.IsZero() {
			return nil, fmt.Errorf("record %d: %w", i, ErrMissingDate)
		}
		day := truncateDay(r.AcqDate)
		counts[day]++
		if first.IsZero() || day.Before(first) {
			first = day
		}
		if day.After(last) {
			last = day
		}
	}

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		series = append(series, models.DailyCount{Date: day, Count: counts[day]})
	}
	return series, nil
}

// ConfidenceShares returns each confidence level's share of detections as a
// percentage rounded to two decimals, ordered by level name.
func ConfidenceShares(records []models.FireRecord) ([]models.ConfidenceShare, error) {
	shares := make([]models.ConfidenceShare, 0)
	if len(records) == 0 {
		return shares, nil
	}

	index := make(map[models.Confidence]int)
	for i, r := range records {
		if r.Confidence == "" {
			return nil, fmt.Errorf("record %d: %w: empty", i, ErrUnknownConfidence)
		}
		if idx, ok := index[r.Confidence]; ok {
			shares[idx].Count++
			continue
		}
		index[r.Confidence] = len(shares)
		shares = append(shares, models.ConfidenceShare{Level: r.Confidence, Count: 1})
	}

	total := float64(len(records))
	for i := range shares {
		shares[i].Percent = round2(float64(shares[i].Count) / total * 100)
	}
	sort.Slice(shares, func(i, j int) bool { return shares[i].Level < shares[j].Level })
	return shares, nil
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
