package engine

import (
	"sort"
	"time"

	"co2board/internal/models"

	"github.com/google/uuid"
)

// Store is the explicit handle for the loaded dataset. It is built once
// at startup and shared read-only across requests; filtering and
// aggregation never mutate it.
type Store struct {
	ID       string
	LoadedAt time.Time
	Records  []models.EmissionRecord

	// Distinct dimension values, sorted, for the filter widgets.
	Years   []int
	Regions []string
	Sectors []string
}

// NewStore indexes the cleaned records and tags the load with a fresh
// dataset id.
func NewStore(records []models.EmissionRecord) *Store {
	s := &Store{
		ID:       uuid.NewString(),
		LoadedAt: time.Now(),
		Records:  records,
		Years:    make([]int, 0),
		Regions:  make([]string, 0),
		Sectors:  make([]string, 0),
	}

	years := make(map[int]bool)
	regions := make(map[string]bool)
	sectors := make(map[string]bool)
	for _, r := range records {
		if !years[r.Year] {
			years[r.Year] = true
			s.Years = append(s.Years, r.Year)
		}
		if !regions[r.Region] {
			regions[r.Region] = true
			s.Regions = append(s.Regions, r.Region)
		}
		if !sectors[r.Sector] {
			sectors[r.Sector] = true
			s.Sectors = append(s.Sectors, r.Sector)
		}
	}
	sort.Ints(s.Years)
	sort.Strings(s.Regions)
	sort.Strings(s.Sectors)

	return s
}

// Meta builds the dimension metadata served to the frontend. The default
// region selection is the top topN emitters over the full dataset,
// mirroring the dashboard's initial view.
func (s *Store) Meta(topN int) *models.Meta {
	top := TopNByRegion(s.Records, topN)
	defaults := make([]string, 0, len(top))
	for _, rt := range top {
		defaults = append(defaults, rt.Region)
	}

	return &models.Meta{
		DatasetID:      s.ID,
		LoadedAt:       s.LoadedAt,
		RecordCount:    len(s.Records),
		Years:          s.Years,
		Regions:        s.Regions,
		Sectors:        s.Sectors,
		DefaultRegions: defaults,
	}
}
