package geography_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquawatch/aquawatch/internal/geography"
)

func testCatalog(t *testing.T) *geography.Catalog {
	t.Helper()
	c, err := geography.NewCatalog([]geography.Station{
		{ID: 3, State: "Maharashtra", City: "Mumbai", Location: "Mahim Creek"},
		{ID: 1, State: "Maharashtra", City: "Mumbai", Location: "Powai Lake"},
		{ID: 5, State: "Maharashtra", City: "Pune", Location: "Mutha River"},
		{ID: 9, State: "Tamil Nadu", City: "Chennai", Location: "Cooum River"},
	})
	require.NoError(t, err)
	return c
}

func TestNewCatalog_Validation(t *testing.T) {
	tests := []struct {
		name     string
		stations []geography.Station
		wantErr  error
	}{
		{
			name:     "zero id",
			stations: []geography.Station{{ID: 0, State: "Goa", City: "Panaji", Location: "Mandovi River"}},
			wantErr:  geography.ErrInvalidStation,
		},
		{
			name:     "missing city",
			stations: []geography.Station{{ID: 1, State: "Goa", Location: "Mandovi River"}},
			wantErr:  geography.ErrInvalidStation,
		},
		{
			name: "duplicate id",
			stations: []geography.Station{
				{ID: 1, State: "Goa", City: "Panaji", Location: "Mandovi River"},
				{ID: 1, State: "Goa", City: "Margao", Location: "Sal River"},
			},
			wantErr: geography.ErrDuplicateStation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := geography.NewCatalog(tt.stations)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCatalog_Lookup(t *testing.T) {
	c := testCatalog(t)

	s, err := c.Lookup(1)
	require.NoError(t, err)
	assert.Equal(t, "Powai Lake", s.Location)
	assert.Equal(t, "Station 1 - Powai Lake", s.Label())

	_, err = c.Lookup(9999)
	require.Error(t, err)
	assert.ErrorIs(t, err, geography.ErrStationNotFound)

	assert.True(t, c.Contains(9))
	assert.False(t, c.Contains(2))
}

func TestCatalog_IDsSortedAndCopied(t *testing.T) {
	c := testCatalog(t)

	ids := c.IDs()
	assert.Equal(t, []int{1, 3, 5, 9}, ids)

	ids[0] = 42
	assert.Equal(t, []int{1, 3, 5, 9}, c.IDs())
	assert.Equal(t, 4, c.Len())
}

func TestCatalog_Stations_Filter(t *testing.T) {
	c := testCatalog(t)

	tests := []struct {
		name   string
		filter geography.Filter
		want   []int
	}{
		{"all", geography.Filter{}, []int{1, 3, 5, 9}},
		{"by state", geography.Filter{State: "Maharashtra"}, []int{1, 3, 5}},
		{"by city", geography.Filter{City: "Mumbai"}, []int{1, 3}},
		{"state and city", geography.Filter{State: "Tamil Nadu", City: "Mumbai"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int
			for _, s := range c.Stations(tt.filter) {
				got = append(got, s.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCatalog_StatesAndCities(t *testing.T) {
	c := testCatalog(t)

	assert.Equal(t, []string{"Maharashtra", "Tamil Nadu"}, c.States())
	assert.Equal(t, []string{"Chennai", "Mumbai", "Pune"}, c.Cities(""))
	assert.Equal(t, []string{"Mumbai", "Pune"}, c.Cities("Maharashtra"))
	assert.Empty(t, c.Cities("Kerala"))
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := geography.Parse(strings.NewReader(`{"id": 1}`))
	require.Error(t, err)
}

func TestDefault_EmbeddedCatalog(t *testing.T) {
	c, err := geography.Default()
	require.NoError(t, err)

	assert.Equal(t, 150, c.Len())
	assert.Len(t, c.States(), 30)
	assert.Equal(t, []string{"Delhi", "New Delhi"}, c.Cities("Delhi"))

	s, err := c.Lookup(80)
	require.NoError(t, err)
	assert.Equal(t, geography.Station{ID: 80, State: "Jammu & Kashmir", City: "Srinagar", Location: "Dal Lake"}, s)

	again, err := geography.Default()
	require.NoError(t, err)
	assert.Same(t, c, again)
}

func TestLoad(t *testing.T) {
	t.Run("empty path uses embedded catalog", func(t *testing.T) {
		c, err := geography.Load("")
		require.NoError(t, err)

		def, err := geography.Default()
		require.NoError(t, err)
		assert.Same(t, def, c)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "stations.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"id": 7, "state": "Goa", "city": "Panaji", "location": "Mandovi River"}]`), 0o600))

		c, err := geography.Load(path)
		require.NoError(t, err)
		assert.Equal(t, []int{7}, c.IDs())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := geography.Load(filepath.Join(t.TempDir(), "missing.json"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
