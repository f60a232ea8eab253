// Package export writes a rendered dashboard as an XLSX workbook.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"hotspot/internal/models"
)

// Sheet names, one per chart.
const (
	SheetCities     = "Kabupaten Kota"
	SheetProvinces  = "Provinsi"
	SheetHotspots   = "Titik Api"
	SheetDaily      = "Harian"
	SheetConfidence = "Confidence"
)

// Workbook builds a workbook with one sheet per chart. Callers must Close it.
func Workbook(d *models.Dashboard) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetCities); err != nil {
		f.Close()
		return nil, err
	}
	for _, name := range []string{SheetProvinces, SheetHotspots, SheetDaily, SheetConfidence} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("new sheet %s: %w", name, err)
		}
	}

	if err := writeSheets(f, d); err != nil {
		f.Close()
		return nil, err
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeSheets(f *excelize.File, d *models.Dashboard) error {
	regionRows := func(bars []models.RegionCount) [][]any {
		rows := make([][]any, 0, len(bars))
		// Highest count first in a table.
		for i := len(bars) - 1; i >= 0; i-- {
			rows = append(rows, []any{bars[i].Name, bars[i].Count})
		}
		return rows
	}

	if err := writeTable(f, SheetCities, []any{"Kabupaten/Kota", "Jumlah Titik Api"}, regionRows(d.TopCities.Bars)); err != nil {
		return err
	}
	if err := writeTable(f, SheetProvinces, []any{"Provinsi", "Jumlah Titik Api"}, regionRows(d.TopProvinces.Bars)); err != nil {
		return err
	}

	hotspots := make([][]any, 0, len(d.Density.Points))
	for _, p := range d.Density.Points {
		hotspots = append(hotspots, []any{p.AcqDate.Format(time.DateOnly), p.Latitude, p.Longitude, p.FRP, p.RegencyCity, p.Province})
	}
	if err := writeTable(f, SheetHotspots, []any{"acq_date", "latitude", "longitude", "frp", "regency_city", "province"}, hotspots); err != nil {
		return err
	}

	daily := make([][]any, 0, len(d.Daily.Series))
	for _, p := range d.Daily.Series {
		daily = append(daily, []any{p.Date.Format(time.DateOnly), p.Count})
	}
	if err := writeTable(f, SheetDaily, []any{"Tanggal", "Jumlah Titik Api"}, daily); err != nil {
		return err
	}

	shares := make([][]any, 0, len(d.Confidence.Slices))
	for _, s := range d.Confidence.Slices {
		shares = append(shares, []any{string(s.Level), s.Count, s.Percent})
	}
	return writeTable(f, SheetConfidence, []any{"Tingkat Confidence", "Jumlah", "Persentase"}, shares)
}

func writeTable(f *excelize.File, sheet string, header []any, rows [][]any) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

// Write streams the workbook for d to w.
func Write(w io.Writer, d *models.Dashboard) error {
	f, err := Workbook(d)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.Write(w)
}
