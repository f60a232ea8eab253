package dashboard

import "hotspot/internal/models"

// Chart identifiers used by the API and exports.
const (
	ChartTopCities    = "top-cities"
	ChartTopProvinces = "top-provinces"
	ChartDensity      = "density"
	ChartDaily        = "daily"
	ChartConfidence   = "confidence"
)

// Charts lists every chart in display order.
var Charts = []string{ChartTopCities, ChartTopProvinces, ChartDensity, ChartDaily, ChartConfidence}

const (
	template    = "plotly_dark"
	transparent = "rgba(0, 0, 0, 0)"
	markColor   = "indianred"
	countLabel  = "Jumlah Titik Api"
)

const (
	pageTitle   = "Pemantauan Titik Api di Indonesia"
	yearLabel   = "Pilih Tahun"
	description = "Dashboard ini menampilkan titik api yang diamati oleh Visible Infrared Imaging Radiometer Suite (VIIRS). " +
		"VIIRS memiliki nilai confidence yang diatur ke rendah, nominal, dan tinggi; nilai tersebut didasarkan pada kumpulan " +
		"kuantitas algoritma menengah yang digunakan dalam proses deteksi dan dimaksudkan untuk membantu pengguna mengukur " +
		"kualitas piksel titik panas/api. VIIRS mendeteksi titik panas dengan resolusi 375 meter per piksel, yang berarti " +
		"dapat mendeteksi kebakaran yang lebih kecil dan berintensitas rendah dibandingkan satelit pengamatan lainnya. " +
		"Dalam skala global, VIIRS mendeteksi setiap 3 jam."
)

func barLayout(title string, height int) models.Layout {
	return models.Layout{
		Title:         title,
		TitleFontSize: 14,
		Width:         550,
		Height:        height,
		Template:      template,
		Background:    transparent,
		Color:         markColor,
		XAxis:         models.Axis{Title: countLabel, TickFormat: ",d", FontSize: 12},
		YAxis:         models.Axis{FontSize: 12, CategoryOrder: "total ascending"},
	}
}

func topCitiesLayout() models.Layout {
	return barLayout("10 Kabupaten/Kota Dengan Titik Api Terbanyak", 475)
}

func topProvincesLayout() models.Layout {
	return barLayout("10 Provinsi Dengan Titik Api Terbanyak", 400)
}

func densityLayout() models.Layout {
	return models.Layout{
		Title:      "Sebaran Titik Api",
		Width:      1000,
		Height:     475,
		Template:   template,
		Background: transparent,
		Color:      markColor,
		XAxis:      models.Axis{Title: "Longitude"},
		YAxis:      models.Axis{Title: "Latitude"},
	}
}

func densityView() models.MapView {
	return models.MapView{
		CenterLat:     -2,
		CenterLon:     118,
		Zoom:          3.8,
		Radius:        5,
		Style:         "carto-darkmatter",
		ColorScale:    "matter_r",
		ColorbarTitle: "Fire Radiative Power",
	}
}

func dailyLayout() models.Layout {
	return models.Layout{
		Title:         "Jumlah Titik Api Harian yang Terdeteksi",
		TitleFontSize: 16,
		Width:         700,
		Height:        400,
		Template:      template,
		Background:    transparent,
		Color:         markColor,
		YAxis:         models.Axis{Title: countLabel, FontSize: 12},
	}
}

func confidenceLayout() models.Layout {
	return models.Layout{
		Title:         "Proporsi Tingkat Confidence Api",
		TitleFontSize: 14,
		Width:         450,
		Height:        400,
		Template:      template,
		Background:    transparent,
		Color:         markColor,
		XAxis:         models.Axis{Title: "Tingkat Confidence"},
		YAxis:         models.Axis{Title: "Persentase"},
	}
}
