package geography

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

// Catalog is an immutable lookup table of stations keyed by ID.
// It is safe for concurrent use because nothing mutates it after construction.
type Catalog struct {
	stations map[int]Station
	ids      []int
}

// NewCatalog builds a catalog from the given stations.
// Every station must have a positive ID, a state, a city and a location,
// and IDs must be unique.
func NewCatalog(stations []Station) (*Catalog, error) {
	c := &Catalog{
		stations: make(map[int]Station, len(stations)),
		ids:      make([]int, 0, len(stations)),
	}

	for _, s := range stations {
		if s.ID <= 0 || s.State == "" || s.City == "" || s.Location == "" {
			return nil, fmt.Errorf("%w: %+v", ErrInvalidStation, s)
		}
		if _, ok := c.stations[s.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateStation, s.ID)
		}
		c.stations[s.ID] = s
		c.ids = append(c.ids, s.ID)
	}

	sort.Ints(c.ids)
	return c, nil
}

// Parse reads a JSON array of stations.
func Parse(r io.Reader) (*Catalog, error) {
	var stations []Station
	if err := json.NewDecoder(r).Decode(&stations); err != nil {
		return nil, fmt.Errorf("decode stations: %w", err)
	}
	return NewCatalog(stations)
}

// LoadFile reads a station catalog from a JSON file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stations file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Lookup returns the station with the given ID.
func (c *Catalog) Lookup(id int) (Station, error) {
	s, ok := c.stations[id]
	if !ok {
		return Station{}, fmt.Errorf("%w: %d", ErrStationNotFound, id)
	}
	return s, nil
}

// Contains reports whether the station ID exists in the catalog.
func (c *Catalog) Contains(id int) bool {
	_, ok := c.stations[id]
	return ok
}

// Len returns the number of stations.
func (c *Catalog) Len() int {
	return len(c.ids)
}

// IDs returns all station IDs in ascending order.
func (c *Catalog) IDs() []int {
	ids := make([]int, len(c.ids))
	copy(ids, c.ids)
	return ids
}

// Stations returns the stations matching the filter, ordered by ID.
func (c *Catalog) Stations(f Filter) []Station {
	stations := make([]Station, 0, len(c.ids))
	for _, id := range c.ids {
		s := c.stations[id]
		if f.matches(s) {
			stations = append(stations, s)
		}
	}
	return stations
}

// States returns the distinct states, sorted.
func (c *Catalog) States() []string {
	seen := make(map[string]struct{})
	for _, s := range c.stations {
		seen[s.State] = struct{}{}
	}
	return sortedKeys(seen)
}

// Cities returns the distinct cities, sorted. A non-empty state limits the
// result to cities in that state.
func (c *Catalog) Cities(state string) []string {
	seen := make(map[string]struct{})
	for _, s := range c.stations {
		if state != "" && s.State != state {
			continue
		}
		seen[s.City] = struct{}{}
	}
	return sortedKeys(seen)
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
