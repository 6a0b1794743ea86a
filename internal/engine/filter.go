package engine

import "co2board/internal/models"

// ApplySelection returns the records matching the selection, preserving
// source order. For each dimension independently, an empty selection set
// means "all values in the dataset" — a fresh selection with nothing
// picked shows the full dataset instead of nothing. A non-trivial
// selection matching no records returns an empty dataset, not an error.
//
// Pure function of its inputs; applying the same selection twice is a
// no-op.
func ApplySelection(records []models.EmissionRecord, sel models.FilterSelection) []models.EmissionRecord {
	years := toIntSet(sel.Years)
	regions := toSet(sel.Regions)
	sectors := toSet(sel.Sectors)

	if years == nil && regions == nil && sectors == nil {
		return records
	}

	out := make([]models.EmissionRecord, 0, len(records))
	for _, r := range records {
		if years != nil && !years[r.Year] {
			continue
		}
		if regions != nil && !regions[r.Region] {
			continue
		}
		if sectors != nil && !sectors[r.Sector] {
			continue
		}
		out = append(out, r)
	}
	return out
}

// toSet returns nil for an empty slice so callers can tell "no
// restriction" apart from "restrict to nothing".
func toSet(vals []string) map[string]bool {
	if len(vals) == 0 {
		return nil
	}
	set := make(map[string]bool, len(vals))
	for _, v := range vals {
		set[v] = true
	}
	return set
}

func toIntSet(vals []int) map[int]bool {
	if len(vals) == 0 {
		return nil
	}
	set := make(map[int]bool, len(vals))
	for _, v := range vals {
		set[v] = true
	}
	return set
}
