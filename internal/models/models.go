package models

import "time"

// EmissionRecord is one cleaned row of the daily emissions dataset.
// Year and MonthName are derived from Date at load time and never drift
// from it.
type EmissionRecord struct {
	Region    string    `json:"region"`
	Date      time.Time `json:"date"`
	Sector    string    `json:"sector"`
	Emissions float64   `json:"emissions"` // MtCO2 per day
	Year      int       `json:"year"`
	MonthName string    `json:"month_name"`
}

// FilterSelection narrows the dataset along three independent
// dimensions. An empty slice means "all values" for that dimension.
// Selections are built fresh per request and never mutated.
type FilterSelection struct {
	Years   []int
	Regions []string
	Sectors []string
}

// DashboardData carries every aggregate the frontend renders for one
// filter selection.
type DashboardData struct {
	RecordCount        int           `json:"record_count"`
	TotalEmissions     float64       `json:"total_emissions"`
	MeanDailyEmissions *float64      `json:"mean_daily_emissions"` // null when no records match
	TimeSeries         []TimePoint   `json:"time_series"`
	ByRegion           []RegionTotal `json:"by_region"`
	BySector           []SectorTotal `json:"by_sector"`
	TopRegions         []RegionTotal `json:"top_regions"`
}

// TimePoint is one day of the summed emissions series.
type TimePoint struct {
	Date      string  `json:"date"` // 2006-01-02
	Emissions float64 `json:"emissions"`
}

type RegionTotal struct {
	Region    string  `json:"region"`
	Emissions float64 `json:"emissions"`
}

type SectorTotal struct {
	Sector    string  `json:"sector"`
	Emissions float64 `json:"emissions"`
}

// Meta describes the loaded dataset so the frontend can build its
// filter widgets and default selection.
type Meta struct {
	DatasetID      string    `json:"dataset_id"`
	LoadedAt       time.Time `json:"loaded_at"`
	RecordCount    int       `json:"record_count"`
	Years          []int     `json:"years"`
	Regions        []string  `json:"regions"`
	Sectors        []string  `json:"sectors"`
	DefaultRegions []string  `json:"default_regions"`
}

// ScenarioResult is the what-if efficiency projection for one sector.
type ScenarioResult struct {
	Sector      string  `json:"sector"`
	GainPercent float64 `json:"gain_percent"`
	SectorTotal float64 `json:"sector_total"`
	Savings     float64 `json:"savings"`
}
