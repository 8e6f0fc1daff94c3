package waterquality_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquawatch/aquawatch/internal/waterquality"
)

func TestStationColumn(t *testing.T) {
	assert.Equal(t, "id_1", waterquality.StationColumn(1))
	assert.Equal(t, "id_150", waterquality.StationColumn(150))
}

func TestEncode_UnknownStation(t *testing.T) {
	known := []string{"year", "id_1", "id_2"}

	v := waterquality.Encode(waterquality.Request{StationID: 9999, Year: 2022}, known)

	assert.Equal(t, known, v.Columns)
	assert.Equal(t, []float64{2022, 0, 0}, v.Values)
}

func TestEncode_KnownStation(t *testing.T) {
	known := []string{"year", "id_1", "id_2", "id_3"}

	v := waterquality.Encode(waterquality.Request{StationID: 2, Year: 2015}, known)

	assert.Equal(t, known, v.Columns)
	assert.Equal(t, []float64{2015, 0, 1, 0}, v.Values)

	val, ok := v.Value("id_2")
	require.True(t, ok)
	assert.Equal(t, 1.0, val)

	_, ok = v.Value("id_99")
	assert.False(t, ok)
}

func TestEncode_FollowsColumnOrder(t *testing.T) {
	known := []string{"id_3", "id_1", "year", "id_2"}

	v := waterquality.Encode(waterquality.Request{StationID: 1, Year: 2010}, known)

	assert.Equal(t, known, v.Columns)
	assert.Equal(t, []float64{0, 1, 2010, 0}, v.Values)
}

func TestEncode_MissingYearColumn(t *testing.T) {
	known := []string{"id_1", "id_2"}

	v := waterquality.Encode(waterquality.Request{StationID: 1, Year: 2010}, known)

	assert.Equal(t, known, v.Columns)
	assert.Equal(t, []float64{1, 0}, v.Values)
}

func TestEncode_EmptyColumns(t *testing.T) {
	v := waterquality.Encode(waterquality.Request{StationID: 1, Year: 2010}, nil)

	assert.Equal(t, 0, v.Len())
	assert.Empty(t, v.Values)
}

func TestEncode_DoesNotAliasColumns(t *testing.T) {
	known := []string{"year", "id_1"}

	v := waterquality.Encode(waterquality.Request{StationID: 1, Year: 2010}, known)
	v.Columns[0] = "changed"

	assert.Equal(t, "year", known[0])
}

func TestEncode_StructureIndependentOfInput(t *testing.T) {
	known := []string{"year"}
	for id := 1; id <= 20; id++ {
		known = append(known, waterquality.StationColumn(id))
	}

	for id := -2; id <= 25; id++ {
		for _, year := range []int{1990, 2000, 2021, 2030, 2050} {
			v := waterquality.Encode(waterquality.Request{StationID: id, Year: year}, known)
			require.Equal(t, known, v.Columns)
			require.Len(t, v.Values, len(known))

			hot := 0
			for _, col := range known[1:] {
				val, _ := v.Value(col)
				if val == 1 {
					hot++
				}
			}
			if id >= 1 && id <= 20 {
				assert.Equal(t, 1, hot, "station %d", id)
			} else {
				assert.Equal(t, 0, hot, "station %d", id)
			}
		}
	}
}

func TestEncode_YearOnlyChangesYearField(t *testing.T) {
	known := []string{"year", "id_1", "id_2", "id_3"}

	a := waterquality.Encode(waterquality.Request{StationID: 3, Year: 2001}, known).Map()
	b := waterquality.Encode(waterquality.Request{StationID: 3, Year: 2029}, known).Map()

	assert.NotEqual(t, a["year"], b["year"])
	delete(a, "year")
	delete(b, "year")
	assert.Equal(t, a, b)
}
