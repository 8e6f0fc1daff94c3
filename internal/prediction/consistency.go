package prediction

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aquawatch/aquawatch/internal/waterquality"
)

// CheckColumns verifies that a trained column list can be used with the
// catalog. The list must contain the year column exactly once and otherwise
// only station indicator columns for stations present in the catalog.
//
// It returns the sorted ids of catalog stations the model has no column for.
// Predictions for those stations still run, using only the year.
func CheckColumns(columns []string, catalog Catalog) ([]int, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: column list is empty", ErrInconsistentColumns)
	}

	seen := make(map[string]bool, len(columns))
	trained := make(map[int]bool, len(columns))
	for _, col := range columns {
		if seen[col] {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrInconsistentColumns, col)
		}
		seen[col] = true

		if col == waterquality.YearColumn {
			continue
		}
		id, ok := stationID(col)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected column %q", ErrInconsistentColumns, col)
		}
		if !catalog.Contains(id) {
			return nil, fmt.Errorf("%w: column %q refers to unknown station %d", ErrInconsistentColumns, col, id)
		}
		trained[id] = true
	}
	if !seen[waterquality.YearColumn] {
		return nil, fmt.Errorf("%w: missing %q column", ErrInconsistentColumns, waterquality.YearColumn)
	}

	var untrained []int
	for _, id := range catalog.IDs() {
		if !trained[id] {
			untrained = append(untrained, id)
		}
	}
	sort.Ints(untrained)
	return untrained, nil
}

func stationID(column string) (int, bool) {
	rest, ok := strings.CutPrefix(column, waterquality.StationColumnPrefix)
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(rest)
	if err != nil || id <= 0 || strconv.Itoa(id) != rest {
		return 0, false
	}
	return id, true
}

func countStationColumns(columns []string) int {
	n := 0
	for _, col := range columns {
		if _, ok := stationID(col); ok {
			n++
		}
	}
	return n
}
