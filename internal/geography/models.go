// Package geography provides the static catalog of water quality monitoring stations.
package geography

import (
	"errors"
	"fmt"
)

// Catalog errors.
var (
	ErrStationNotFound  = errors.New("station not found")
	ErrInvalidStation   = errors.New("invalid station record")
	ErrDuplicateStation = errors.New("duplicate station id")
)

// Station represents a fixed water monitoring point.
type Station struct {
	ID       int    `json:"id"`
	State    string `json:"state"`
	City     string `json:"city"`
	Location string `json:"location"`
}

// Label returns the display label used by station selectors.
func (s Station) Label() string {
	return fmt.Sprintf("Station %d - %s", s.ID, s.Location)
}

// Filter narrows a station listing by state and/or city.
// Empty fields match everything.
type Filter struct {
	State string
	City  string
}

func (f Filter) matches(s Station) bool {
	if f.State != "" && s.State != f.State {
		return false
	}
	if f.City != "" && s.City != f.City {
		return false
	}
	return true
}
