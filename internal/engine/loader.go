package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/csv"

	"hotspot/internal/models"
)

// CSV header names of the columns the dashboard reads.
const (
	colDate        = "acq_date"
	colLatitude    = "latitude"
	colLongitude   = "longitude"
	colFRP         = "frp"
	colConfidence  = "confidence"
	colRegencyCity = "regency_city"
	colProvince    = "province"
)

const chunkRows = 4096

var (
	ErrMissingDate       = errors.New("missing acquisition date")
	ErrUnknownConfidence = errors.New("unknown confidence level")
)

var columnTypes = map[string]arrow.DataType{
	colDate:        arrow.BinaryTypes.String,
	colLatitude:    arrow.PrimitiveTypes.Float64,
	colLongitude:   arrow.PrimitiveTypes.Float64,
	colFRP:         arrow.PrimitiveTypes.Float64,
	colConfidence:  arrow.BinaryTypes.String,
	colRegencyCity: arrow.BinaryTypes.String,
	colProvince:    arrow.BinaryTypes.String,
}

var includeColumns = []string{colDate, colLatitude, colLongitude, colFRP, colConfidence, colRegencyCity, colProvince}

var dateLayouts = []string{time.DateOnly, time.DateTime}

// Load reads the hotspot CSV at path into a Dataset.
func Load(path string, logger *slog.Logger) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return LoadReader(f, logger)
}

// LoadReader parses CSV from r. Rows without a regency/city or province are
// dropped; any other malformed row fails the whole load.
func LoadReader(r io.Reader, logger *slog.Logger) (*Dataset, error) {
	start := time.Now()

	reader := csv.NewInferringReader(r,
		csv.WithHeader(true),
		csv.WithChunk(chunkRows),
		csv.WithNullReader(true, ""),
		csv.WithColumnTypes(columnTypes),
		csv.WithIncludeColumns(includeColumns),
	)
	defer reader.Release()

	var (
		records []models.FireRecord
		dropped int
		row     = 1 // header
	)

	for reader.Next() {
		rec := reader.Record()
		cols, err := bindColumns(rec)
		if err != nil {
			return nil, err
		}

		for i := 0; i < int(rec.NumRows()); i++ {
			row++
			if blank(cols.regency, i) || blank(cols.province, i) {
				dropped++
				continue
			}

			fr, err := cols.record(i)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", row, err)
			}
			records = append(records, fr)
		}
	}
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	logger.Info("dataset loaded",
		"rows", len(records),
		"dropped", dropped,
		"duration", time.Since(start))

	return NewDataset(records), nil
}

type columns struct {
	date       *array.String
	lat        *array.Float64
	lon        *array.Float64
	frp        *array.Float64
	confidence *array.String
	regency    *array.String
	province   *array.String
}

func bindColumns(rec arrow.Record) (*columns, error) {
	var c columns
	var err error

	if c.date, err = column[*array.String](rec, colDate); err != nil {
		return nil, err
	}
	if c.lat, err = column[*array.Float64](rec, colLatitude); err != nil {
		return nil, err
	}
	if c.lon, err = column[*array.Float64](rec, colLongitude); err != nil {
		return nil, err
	}
	if c.frp, err = column[*array.Float64](rec, colFRP); err != nil {
		return nil, err
	}
	if c.confidence, err = column[*array.String](rec, colConfidence); err != nil {
		return nil, err
	}
	if c.regency, err = column[*array.String](rec, colRegencyCity); err != nil {
		return nil, err
	}
	if c.province, err = column[*array.String](rec, colProvince); err != nil {
		return nil, err
	}
	return &c, nil
}

func column[T arrow.Array](rec arrow.Record, name string) (T, error) {
	var zero T
	idx := rec.Schema().FieldIndices(name)
	if len(idx) == 0 {
		return zero, fmt.Errorf("column %q not found", name)
	}
	col, ok := rec.Column(idx[0]).(T)
	if !ok {
		return zero, fmt.Errorf("column %q: unexpected type %s", name, rec.Column(idx[0]).DataType())
	}
	return col, nil
}

func (c *columns) record(i int) (models.FireRecord, error) {
	if c.date.IsNull(i) {
		return models.FireRecord{}, ErrMissingDate
	}
	date, err := parseDate(c.date.Value(i))
	if err != nil {
		return models.FireRecord{}, err
	}

	switch {
	case c.lat.IsNull(i):
		return models.FireRecord{}, fmt.Errorf("missing %s", colLatitude)
	case c.lon.IsNull(i):
		return models.FireRecord{}, fmt.Errorf("missing %s", colLongitude)
	case c.frp.IsNull(i):
		return models.FireRecord{}, fmt.Errorf("missing %s", colFRP)
	case c.confidence.IsNull(i):
		return models.FireRecord{}, fmt.Errorf("missing %s", colConfidence)
	}

	conf, err := ParseConfidence(c.confidence.Value(i))
	if err != nil {
		return models.FireRecord{}, err
	}

	return models.FireRecord{
		AcqDate:     date,
		Latitude:    c.lat.Value(i),
		Longitude:   c.lon.Value(i),
		FRP:         c.frp.Value(i),
		Confidence:  conf,
		RegencyCity: strings.TrimSpace(c.regency.Value(i)),
		Province:    strings.TrimSpace(c.province.Value(i)),
		Year:        date.Year(),
	}, nil
}

func blank(col *array.String, i int) bool {
	return col.IsNull(i) || strings.TrimSpace(col.Value(i)) == ""
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid %s %q", colDate, s)
}

// ParseConfidence accepts both the full level names and the single-letter
// VIIRS codes (l, n, h).
func ParseConfidence(s string) (models.Confidence, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "low":
		return models.ConfidenceLow, nil
	case "n", "nominal":
		return models.ConfidenceNominal, nil
	case "h", "high":
		return models.ConfidenceHigh, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownConfidence, s)
}
