package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"hotspot/internal/dashboard"
	"hotspot/internal/engine"
	"hotspot/internal/export"
	"hotspot/internal/models"
	"hotspot/internal/observability"
	"hotspot/internal/render"
)

func main() {
	dataPath := flag.String("data", "data/hasil_output.csv", "hotspot CSV dataset")
	year := flag.Int("year", 2021, "year to report")
	xlsxPath := flag.String("xlsx", "", "write an XLSX workbook to this path")
	pngDir := flag.String("png", "", "write one PNG per chart into this directory")
	dump := flag.Bool("dump", false, "dump the rendered dashboard")
	flag.Parse()

	logger := observability.NewLogger(os.Stderr, "warn", "text")

	ds, err := engine.Load(*dataPath, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctrl := dashboard.New(ds, dashboard.WithLogger(logger))
	d := ctrl.Render(*year)

	if *dump {
		spew.Fdump(os.Stdout, d)
		return
	}

	printReport(os.Stdout, d)

	if *xlsxPath != "" {
		if err := writeFile(*xlsxPath, func(w io.Writer) error { return export.Write(w, d) }); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if *pngDir != "" {
		for _, name := range dashboard.Charts {
			chart, _ := dashboard.Chart(d, name)
			path := filepath.Join(*pngDir, name+".png")
			if err := writeFile(path, func(w io.Writer) error { return render.Chart(w, chart) }); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}
	}
}

func printReport(w io.Writer, d *models.Dashboard) {
	p := message.NewPrinter(language.English)

	p.Fprintf(w, "Titik api %s: %d deteksi\n", strconv.Itoa(d.Year), d.RecordCount)

	printBars(w, p, d.TopCities)
	printBars(w, p, d.TopProvinces)

	p.Fprintf(w, "\n%s\n", d.Confidence.Layout.Title)
	for _, s := range d.Confidence.Slices {
		p.Fprintf(w, "  %-10s %8d  %6.2f%%\n", s.Level, s.Count, s.Percent)
	}

	if n := len(d.Daily.Series); n > 0 {
		peak := d.Daily.Series[0]
		for _, pt := range d.Daily.Series {
			if pt.Count > peak.Count {
				peak = pt
			}
		}
		p.Fprintf(w, "\n%s\n  %s .. %s (%d hari), puncak %s: %d\n", d.Daily.Layout.Title,
			d.Daily.Series[0].Date.Format(time.DateOnly), d.Daily.Series[n-1].Date.Format(time.DateOnly), n,
			peak.Date.Format(time.DateOnly), peak.Count)
	}

	for _, msg := range []string{d.TopCities.Error, d.TopProvinces.Error, d.Density.Error, d.Daily.Error, d.Confidence.Error} {
		if msg != "" {
			p.Fprintf(w, "error: %s\n", msg)
		}
	}
}

func printBars(w io.Writer, p *message.Printer, c models.BarChart) {
	p.Fprintf(w, "\n%s\n", c.Layout.Title)
	for i := len(c.Bars) - 1; i >= 0; i-- {
		p.Fprintf(w, "  %-32s %10d\n", c.Bars[i].Name, c.Bars[i].Count)
	}
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
