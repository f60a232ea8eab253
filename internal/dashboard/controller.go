// Package dashboard turns a year selection into the five hotspot charts.
//
// A render cycle filters the shared, read-only dataset down to one year and
// runs the five aggregations on that private subset. Each chart is built in
// isolation: a failing aggregation marks only its own chart with an error.
package dashboard

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"hotspot/internal/engine"
	"hotspot/internal/models"
	"hotspot/internal/observability"
)

var ErrUnknownChart = errors.New("unknown chart")

// State reports whether a render cycle is in flight.
type State int32

const (
	StateIdle State = iota
	StateComputing
)

func (s State) String() string {
	if s == StateComputing {
		return "computing"
	}
	return "idle"
}

// aggregators is the set of chart computations a cycle runs.
type aggregators struct {
	topRegions func([]models.FireRecord, engine.RegionLevel, int) ([]models.RegionCount, error)
	density    func([]models.FireRecord) ([]models.DensityPoint, float64, error)
	daily      func([]models.FireRecord) ([]models.DailyCount, error)
	confidence func([]models.FireRecord) ([]models.ConfidenceShare, error)
}

var defaultAggregators = aggregators{
	topRegions: engine.TopRegions,
	density:    engine.DensityPoints,
	daily:      engine.DailyCounts,
	confidence: engine.ConfidenceShares,
}

// Controller binds the year selection to the five chart outputs.
type Controller struct {
	data          *engine.Dataset
	preferredYear int
	logger        *slog.Logger
	metrics       *observability.Metrics
	clock         clockwork.Clock
	agg           aggregators

	group    singleflight.Group
	inflight atomic.Int32
}

type Option func(*Controller)

func WithLogger(l *slog.Logger) Option { return func(c *Controller) { c.logger = l } }

func WithMetrics(m *observability.Metrics) Option { return func(c *Controller) { c.metrics = m } }

func WithClock(clk clockwork.Clock) Option { return func(c *Controller) { c.clock = clk } }

// WithDefaultYear sets the year preselected in the dropdown when present in
// the dataset.
func WithDefaultYear(year int) Option { return func(c *Controller) { c.preferredYear = year } }

// New creates a Controller over a loaded dataset.
func New(data *engine.Dataset, opts ...Option) *Controller {
	c := &Controller{
		data:          data,
		preferredYear: 2021,
		logger:        slog.Default(),
		metrics:       observability.NewMetricsForTesting(),
		clock:         clockwork.NewRealClock(),
		agg:           defaultAggregators,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Dataset() *engine.Dataset { return c.data }

func (c *Controller) State() State {
	if c.inflight.Load() > 0 {
		return StateComputing
	}
	return StateIdle
}

func (c *Controller) DefaultYear() int { return c.data.DefaultYear(c.preferredYear) }

// Meta returns the static UI shell content and dropdown options.
func (c *Controller) Meta() models.Meta {
	return models.Meta{
		Title:       pageTitle,
		Description: description,
		YearLabel:   yearLabel,
		Years:       c.data.Years(),
		DefaultYear: c.DefaultYear(),
	}
}

// Render runs one cycle for year. Concurrent calls for the same year share a
// single cycle; the returned Dashboard must be treated as read-only.
func (c *Controller) Render(year int) *models.Dashboard {
	v, _, shared := c.group.Do(strconv.Itoa(year), func() (any, error) {
		return c.render(year), nil
	})
	if shared {
		c.logger.Debug("render shared with concurrent request", "year", year)
	}
	return v.(*models.Dashboard)
}

func (c *Controller) render(year int) *models.Dashboard {
	c.inflight.Add(1)
	defer c.inflight.Add(-1)

	start := c.clock.Now()
	records := c.data.ForYear(year)

	d := &models.Dashboard{
		Year:         year,
		RecordCount:  len(records),
		TopCities:    c.topRegions(ChartTopCities, year, records, engine.LevelRegencyCity, topCitiesLayout()),
		TopProvinces: c.topRegions(ChartTopProvinces, year, records, engine.LevelProvince, topProvincesLayout()),
		Density:      c.density(year, records),
		Daily:        c.daily(year, records),
		Confidence:   c.confidence(year, records),
		GeneratedAt:  start,
	}

	elapsed := c.clock.Since(start)
	c.metrics.RenderCycles.Inc()
	c.metrics.RenderDuration.Observe(elapsed.Seconds())
	c.metrics.FilteredRecords.Observe(float64(len(records)))
	c.logger.Info("dashboard rendered", "year", year, "records", len(records), "duration", elapsed)

	return d
}

func (c *Controller) topRegions(chart string, year int, records []models.FireRecord, level engine.RegionLevel, layout models.Layout) models.BarChart {
	out := models.BarChart{Layout: layout, Bars: []models.RegionCount{}}
	out.Error = c.guard(chart, year, func() error {
		bars, err := c.agg.topRegions(records, level, engine.TopN)
		if err != nil {
			return err
		}
		out.Bars = bars
		return nil
	})
	return out
}

func (c *Controller) density(year int, records []models.FireRecord) models.DensityMap {
	out := models.DensityMap{Layout: densityLayout(), View: densityView(), Points: []models.DensityPoint{}}
	out.Error = c.guard(ChartDensity, year, func() error {
		points, maxFRP, err := c.agg.density(records)
		if err != nil {
			return err
		}
		out.Points, out.MaxFRP = points, maxFRP
		return nil
	})
	return out
}

func (c *Controller) daily(year int, records []models.FireRecord) models.LineChart {
	out := models.LineChart{Layout: dailyLayout(), Series: []models.DailyCount{}}
	out.Error = c.guard(ChartDaily, year, func() error {
		series, err := c.agg.daily(records)
		if err != nil {
			return err
		}
		out.Series = series
		return nil
	})
	return out
}

func (c *Controller) confidence(year int, records []models.FireRecord) models.PieChart {
	out := models.PieChart{Layout: confidenceLayout(), Slices: []models.ConfidenceShare{}}
	out.Error = c.guard(ChartConfidence, year, func() error {
		slices, err := c.agg.confidence(records)
		if err != nil {
			return err
		}
		out.Slices = slices
		return nil
	})
	return out
}

// guard runs fn and converts an error or panic into the chart's error text.
func (c *Controller) guard(chart string, year int, fn func() error) string {
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return fn()
	}()
	if err == nil {
		return ""
	}

	c.metrics.ChartFailures.WithLabelValues(chart).Inc()
	c.logger.Error("chart aggregation failed", "chart", chart, "year", year, "error", err)
	return fmt.Sprintf("%s: %v", chart, err)
}

// Chart picks one chart out of a rendered dashboard by identifier.
func Chart(d *models.Dashboard, name string) (any, error) {
	switch name {
	case ChartTopCities:
		return d.TopCities, nil
	case ChartTopProvinces:
		return d.TopProvinces, nil
	case ChartDensity:
		return d.Density, nil
	case ChartDaily:
		return d.Daily, nil
	case ChartConfidence:
		return d.Confidence, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownChart, name)
}
