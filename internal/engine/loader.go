package engine

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"co2board/internal/models"

	"go.uber.org/zap"
)

// Logical columns the loader must find in the source header. Matching is
// case-insensitive and tolerant of the raw export's names; any extra
// columns in the file are ignored.
var columnAliases = map[string][]string{
	"region":    {"state", "province", "region"},
	"date":      {"date"},
	"sector":    {"sector"},
	"emissions": {"mtco2 per day", "mtco₂ per day", "emissions"},
}

// requiredColumns fixes the reporting order for MissingColumnsError.
var requiredColumns = []string{"region", "date", "sector", "emissions"}

// Candidate date layouts, day/month/year first. The layout is locked in
// by the first non-blank value; a later value that breaks it is a
// systemic mismatch and fails the whole load. The non-padded forms
// accept both "01/01/2023" and "5/1/2023", so mixed zero-padding within
// one file is fine — only a genuinely different layout is fatal.
var dateLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2006-01-02",
}

type columnIndex struct {
	region    int
	date      int
	sector    int
	emissions int
}

// Load reads, validates and cleans the emissions source file and wraps
// the result in a Store. Rows with blank or unparseable fields are
// dropped; negative emissions values are kept as-is (the source may
// carry downward corrections). Zero surviving rows is a valid result.
func Load(path string, logger *zap.Logger) (*Store, error) {
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceUnreadableError{Path: path, Err: err}
	}
	defer f.Close()

	records, dropped, err := LoadRecords(f)
	if err != nil {
		var sue *SourceUnreadableError
		if errors.As(err, &sue) {
			sue.Path = path
		}
		return nil, err
	}

	logger.Info("dataset loaded",
		zap.String("path", path),
		zap.Int("rows", len(records)),
		zap.Int("dropped", dropped),
		zap.Duration("took", time.Since(start)))

	return NewStore(records), nil
}

// LoadRecords parses a CSV stream into cleaned emission records. It
// returns the records, the number of dropped rows, and the first fatal
// load error. A fatal error never yields a partial dataset.
func LoadRecords(r io.Reader) ([]models.EmissionRecord, int, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1 // ragged rows are handled per-field below

	header, err := cr.Read()
	if err != nil {
		return nil, 0, &SourceUnreadableError{Err: err}
	}

	cols, missing := resolveColumns(header)
	if len(missing) > 0 {
		return nil, 0, &MissingColumnsError{Missing: missing}
	}

	var (
		out     []models.EmissionRecord
		layout  string
		dropped int
	)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, &SourceUnreadableError{Err: err}
		}

		region := field(row, cols.region)
		dateStr := field(row, cols.date)
		sector := field(row, cols.sector)
		emStr := field(row, cols.emissions)

		// Missing value in any required field drops the row. This is the
		// only row-level cleaning rule.
		if region == "" || dateStr == "" || sector == "" || emStr == "" {
			dropped++
			continue
		}

		if layout == "" {
			layout, err = detectDateLayout(dateStr)
			if err != nil {
				return nil, 0, err
			}
		}
		date, err := time.Parse(layout, dateStr)
		if err != nil {
			return nil, 0, &DateParseError{Value: dateStr, Err: err}
		}

		emissions, err := strconv.ParseFloat(emStr, 64)
		if err != nil {
			// Unreadable number counts as a missing value, not a fatal
			// format mismatch.
			dropped++
			continue
		}

		out = append(out, models.EmissionRecord{
			Region:    region,
			Date:      date,
			Sector:    sector,
			Emissions: emissions,
			Year:      date.Year(),
			MonthName: date.Month().String(),
		})
	}

	return out, dropped, nil
}

// resolveColumns maps logical column names to header positions. Header
// cells are trimmed, unquoted and lowercased before matching.
func resolveColumns(header []string) (columnIndex, []string) {
	pos := make(map[string]int, len(requiredColumns))
	for i, cell := range header {
		name := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(cell), `"`, ""))
		for logical, aliases := range columnAliases {
			if _, seen := pos[logical]; seen {
				continue
			}
			for _, alias := range aliases {
				if name == alias {
					pos[logical] = i
					break
				}
			}
		}
	}

	var missing []string
	for _, logical := range requiredColumns {
		if _, ok := pos[logical]; !ok {
			missing = append(missing, logical)
		}
	}
	if len(missing) > 0 {
		return columnIndex{}, missing
	}

	return columnIndex{
		region:    pos["region"],
		date:      pos["date"],
		sector:    pos["sector"],
		emissions: pos["emissions"],
	}, nil
}

// detectDateLayout picks the layout matching the first non-blank date
// value. No match means the column format is unsupported.
func detectDateLayout(value string) (string, error) {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return layout, nil
		}
	}
	return "", &DateParseError{
		Value: value,
		Err:   errors.New("no supported day/month/year layout matches"),
	}
}

func field(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
