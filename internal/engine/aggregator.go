package engine

import (
	"sort"

	"co2board/internal/models"
)

// Dimension selects the grouping key for GroupSum.
type Dimension int

const (
	DimDate Dimension = iota
	DimRegion
	DimSector
)

// dateKeyLayout is the canonical key format for date-grouped sums. ISO
// order keeps lexicographic sort chronological.
const dateKeyLayout = "2006-01-02"

// TotalEmissions sums the emissions column across all records. Zero for
// an empty dataset.
func TotalEmissions(records []models.EmissionRecord) float64 {
	var total float64
	for _, r := range records {
		total += r.Emissions
	}
	return total
}

// MeanDailyEmissions is the arithmetic mean of the emissions column.
// Undefined over zero records: returns ErrEmptyDataset rather than a
// sentinel value.
func MeanDailyEmissions(records []models.EmissionRecord) (float64, error) {
	if len(records) == 0 {
		return 0, ErrEmptyDataset
	}
	return TotalEmissions(records) / float64(len(records)), nil
}

// GroupSum sums emissions grouped by the given dimension. Date keys use
// the 2006-01-02 format. Grouping is order-independent and sums
// accumulate directly, with no intermediate rounding.
func GroupSum(records []models.EmissionRecord, dim Dimension) map[string]float64 {
	sums := make(map[string]float64)
	for _, r := range records {
		var key string
		switch dim {
		case DimDate:
			key = r.Date.Format(dateKeyLayout)
		case DimRegion:
			key = r.Region
		case DimSector:
			key = r.Sector
		}
		sums[key] += r.Emissions
	}
	return sums
}

// TopNByRegion ranks regions by total emissions, descending, ties broken
// by region name ascending. Asking for more regions than exist returns
// all of them.
func TopNByRegion(records []models.EmissionRecord, n int) []models.RegionTotal {
	if n < 0 {
		n = 0
	}
	totals := regionTotals(records)
	if n < len(totals) {
		totals = totals[:n]
	}
	return totals
}

// Summarize computes every dashboard aggregate over the already-filtered
// records in one place. The mean is omitted for an empty dataset; the
// other aggregates degrade to zeros and empty tables.
func Summarize(records []models.EmissionRecord, topN int) *models.DashboardData {
	data := &models.DashboardData{
		RecordCount:    len(records),
		TotalEmissions: TotalEmissions(records),
		TimeSeries:     make([]models.TimePoint, 0),
		BySector:       make([]models.SectorTotal, 0),
	}

	if mean, err := MeanDailyEmissions(records); err == nil {
		data.MeanDailyEmissions = &mean
	}

	for date, total := range GroupSum(records, DimDate) {
		data.TimeSeries = append(data.TimeSeries, models.TimePoint{Date: date, Emissions: total})
	}
	sort.Slice(data.TimeSeries, func(i, j int) bool {
		return data.TimeSeries[i].Date < data.TimeSeries[j].Date
	})

	data.ByRegion = regionTotals(records)

	for sector, total := range GroupSum(records, DimSector) {
		data.BySector = append(data.BySector, models.SectorTotal{Sector: sector, Emissions: total})
	}
	sort.Slice(data.BySector, func(i, j int) bool {
		if data.BySector[i].Emissions != data.BySector[j].Emissions {
			return data.BySector[i].Emissions > data.BySector[j].Emissions
		}
		return data.BySector[i].Sector < data.BySector[j].Sector
	})

	data.TopRegions = TopNByRegion(records, topN)
	return data
}

// ScenarioSavings projects the emissions saved if the named sector
// improved its efficiency by gainPercent over the selected period. Gain
// is clamped to [0, 100].
func ScenarioSavings(records []models.EmissionRecord, sector string, gainPercent float64) models.ScenarioResult {
	if gainPercent < 0 {
		gainPercent = 0
	}
	if gainPercent > 100 {
		gainPercent = 100
	}

	var sectorTotal float64
	for _, r := range records {
		if r.Sector == sector {
			sectorTotal += r.Emissions
		}
	}

	return models.ScenarioResult{
		Sector:      sector,
		GainPercent: gainPercent,
		SectorTotal: sectorTotal,
		Savings:     sectorTotal * gainPercent / 100,
	}
}

func regionTotals(records []models.EmissionRecord) []models.RegionTotal {
	sums := GroupSum(records, DimRegion)
	out := make([]models.RegionTotal, 0, len(sums))
	for region, total := range sums {
		out = append(out, models.RegionTotal{Region: region, Emissions: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Emissions != out[j].Emissions {
			return out[i].Emissions > out[j].Emissions
		}
		return out[i].Region < out[j].Region
	})
	return out
}
