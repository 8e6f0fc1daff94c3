package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aquawatch/aquawatch/internal/geography"
	"github.com/aquawatch/aquawatch/internal/waterquality"
)

// Catalog resolves station ids found in the dataset.
type Catalog interface {
	Lookup(id int) (geography.Station, error)
}

// Dataset is an immutable, in-memory copy of the historical measurements.
type Dataset struct {
	records []Record
	skipped int
}

// Len returns the number of usable records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Skipped returns the number of rows dropped because their station is not
// in the catalog.
func (d *Dataset) Skipped() int {
	return d.skipped
}

// Records returns a copy of the loaded records.
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// ReadFile loads a dataset from a semicolon-separated file.
func ReadFile(ctx context.Context, path string, catalog Catalog) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(ctx, f, catalog)
}

// Read parses semicolon-separated measurements with a header row.
//
// The header must name id, date and the six pollutant columns; other columns
// are ignored. Empty pollutant cells become NaN. Rows for stations missing
// from the catalog are skipped and counted.
func Read(ctx context.Context, r io.Reader, catalog Catalog) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrMalformed)
		}
		return nil, fmt.Errorf("%w: read header: %v", ErrMalformed, err)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	d := &Dataset{}
	for line := 2; ; line++ {
		if line%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
		}
		if blank(row) {
			continue
		}

		rec, known, err := parseRow(row, cols, catalog)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
		}
		if !known {
			d.skipped++
			continue
		}
		d.records = append(d.records, rec)
	}

	return d, nil
}

type columnIndex struct {
	id, date  int
	pollutant [waterquality.PredictedCount]int
}

func mapColumns(header []string) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}

	var ci columnIndex
	var missing []string
	find := func(name string) int {
		i, ok := pos[strings.ToUpper(name)]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return i
	}

	ci.id = find("id")
	ci.date = find("date")
	for i, p := range waterquality.PredictedParameters() {
		ci.pollutant[i] = find(string(p))
	}
	if len(missing) > 0 {
		return ci, fmt.Errorf("%w: missing columns %s", ErrMalformed, strings.Join(missing, ", "))
	}
	return ci, nil
}

func parseRow(row []string, cols columnIndex, catalog Catalog) (Record, bool, error) {
	var rec Record

	id, err := strconv.Atoi(strings.TrimSpace(field(row, cols.id)))
	if err != nil {
		return rec, false, fmt.Errorf("invalid station id %q", field(row, cols.id))
	}
	date, err := time.Parse(DateLayout, strings.TrimSpace(field(row, cols.date)))
	if err != nil {
		return rec, false, fmt.Errorf("invalid date %q", field(row, cols.date))
	}

	station, err := catalog.Lookup(id)
	if err != nil {
		return rec, false, nil
	}

	rec.Station = station
	rec.Date = date
	rec.Year = date.Year()
	for i, c := range cols.pollutant {
		v, err := parseValue(field(row, c))
		if err != nil {
			return rec, false, fmt.Errorf("invalid %s value %q", waterquality.PredictedParameters()[i], field(row, c))
		}
		rec.Values[i] = v
	}
	return rec, true, nil
}

func parseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) {
		return 0, errors.New("value is not finite")
	}
	return v, nil
}

func field(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func blank(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
