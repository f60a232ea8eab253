package models

import "time"

// Confidence is the VIIRS detection quality class.
type Confidence string

const (
	ConfidenceLow     Confidence = "low"
	ConfidenceNominal Confidence = "nominal"
	ConfidenceHigh    Confidence = "high"
)

// FireRecord is one satellite hotspot detection.
type FireRecord struct {
	AcqDate     time.Time  `json:"acq_date"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	FRP         float64    `json:"frp"`
	Confidence  Confidence `json:"confidence"`
	RegencyCity string     `json:"regency_city"`
	Province    string     `json:"province"`
	Year        int        `json:"year"`
}

// Axis holds per-axis presentation settings.
type Axis struct {
	Title         string `json:"title"`
	TickFormat    string `json:"tick_format,omitempty"`
	FontSize      int    `json:"font_size,omitempty"`
	CategoryOrder string `json:"category_order,omitempty"`
}

// Layout is the static presentation metadata attached to every chart.
type Layout struct {
	Title         string `json:"title"`
	TitleFontSize int    `json:"title_font_size"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	Template      string `json:"template"`
	Background    string `json:"background"`
	ShowGrid      bool   `json:"show_grid"`
	Color         string `json:"color"`
	XAxis         Axis   `json:"x_axis"`
	YAxis         Axis   `json:"y_axis"`
}

type RegionCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Label string `json:"label"`
}

type DensityPoint struct {
	Latitude    float64   `json:"lat"`
	Longitude   float64   `json:"lon"`
	FRP         float64   `json:"frp"`
	AcqDate     time.Time `json:"acq_date"`
	RegencyCity string    `json:"regency_city"`
	Province    string    `json:"province"`
}

type DailyCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

type ConfidenceShare struct {
	Level   Confidence `json:"level"`
	Count   int        `json:"count"`
	Percent float64    `json:"percent"`
}

// MapView positions the density map viewport.
type MapView struct {
	CenterLat     float64 `json:"center_lat"`
	CenterLon     float64 `json:"center_lon"`
	Zoom          float64 `json:"zoom"`
	Radius        int     `json:"radius"`
	Style         string  `json:"style"`
	ColorScale    string  `json:"color_scale"`
	ColorbarTitle string  `json:"colorbar_title"`
}

type BarChart struct {
	Layout Layout        `json:"layout"`
	Bars   []RegionCount `json:"bars"`
	Error  string        `json:"error,omitempty"`
}

type DensityMap struct {
	Layout Layout         `json:"layout"`
	View   MapView        `json:"view"`
	Points []DensityPoint `json:"points"`
	MaxFRP float64        `json:"max_frp"`
	Error  string         `json:"error,omitempty"`
}

type LineChart struct {
	Layout Layout       `json:"layout"`
	Series []DailyCount `json:"series"`
	Error  string       `json:"error,omitempty"`
}

type PieChart struct {
	Layout Layout            `json:"layout"`
	Slices []ConfidenceShare `json:"slices"`
	Error  string            `json:"error,omitempty"`
}

// Dashboard is the full output of one render cycle.
type Dashboard struct {
	Year         int        `json:"year"`
	RecordCount  int        `json:"record_count"`
	TopCities    BarChart   `json:"top_cities"`
	TopProvinces BarChart   `json:"top_provinces"`
	Density      DensityMap `json:"density"`
	Daily        LineChart  `json:"daily"`
	Confidence   PieChart   `json:"confidence"`
	GeneratedAt  time.Time  `json:"generated_at"`
}

// Meta describes the static UI shell around the charts.
type Meta struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	YearLabel   string `json:"year_label"`
	Years       []int  `json:"years"`
	DefaultYear int    `json:"default_year"`
}
