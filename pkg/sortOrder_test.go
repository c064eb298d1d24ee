package eventlist

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortByTof(t *testing.T) {
	el := threeEvents()
	el.SortBy(TofSort)

	assert.Equal(t, []float64{1, 3, 5}, el.Tofs())
	assert.Equal(t, []int64{1, 2, 0}, el.PulseTimes())
	assert.True(t, el.IsSortedByTof())
	assert.Equal(t, TofSort, el.Order())
}

func TestSortByPulseTime(t *testing.T) {
	el := threeEvents()
	el.SortTof()
	el.SortBy(PulseTimeSort)

	assert.Equal(t, []int64{0, 1, 2}, el.PulseTimes())
	assert.False(t, el.IsSortedByTof())
	assert.Equal(t, PulseTimeSort, el.Order())
}

func TestSortByUnsortedDoesNothing(t *testing.T) {
	el := threeEvents()
	el.SortBy(Unsorted)
	assert.Equal(t, []float64{5, 1, 3}, el.Tofs())
	assert.Equal(t, Unsorted, el.Order())

	el.SortTof()
	el.SortBy(Unsorted)
	assert.Equal(t, []float64{1, 3, 5}, el.Tofs())
	assert.Equal(t, TofSort, el.Order())
}

func TestSortByTrustsCache(t *testing.T) {
	el := threeEvents()
	el.SortTof()
	once := el.Tofs()
	el.SortTof()
	assert.Equal(t, once, el.Tofs())
}

func TestSortIsStable(t *testing.T) {
	el := NewEventListFromEvents([]TofEvent{
		NewTofEvent(2, 5),
		NewTofEvent(1, 4),
		NewTofEvent(2, 3),
		NewTofEvent(2, 1),
	})
	el.SortTof()
	assert.Equal(t, []int64{4, 5, 3, 1}, el.PulseTimes())
}

func TestReverse(t *testing.T) {
	el := threeEvents()
	el.SetX(NewBinEdges([]float64{0, 2, 4, 6}))
	el.SortTof()

	el.Reverse()
	assert.Equal(t, []float64{6, 4, 2, 0}, el.DataX())
	assert.Equal(t, []float64{5, 3, 1}, el.Tofs())
	assert.Equal(t, TofSort, el.Order())

	unsorted := threeEvents()
	unsorted.SortPulseTime()
	unsorted.SetX(NewBinEdges([]float64{0, 1}))
	unsorted.Reverse()
	assert.Equal(t, []float64{1, 0}, unsorted.DataX())
	assert.Equal(t, []float64{5, 1, 3}, unsorted.Tofs())
	assert.Equal(t, Unsorted, unsorted.Order())
}

func TestSortTypeJSON(t *testing.T) {
	for _, order := range []EventSortType{Unsorted, TofSort, PulseTimeSort} {
		data, err := json.Marshal(order)
		require.NoError(t, err)

		var decoded EventSortType
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, order, decoded)
	}

	var decoded EventSortType
	err := json.Unmarshal([]byte(`"by_detector"`), &decoded)
	var unknown *UnknownSortTypeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "by_detector", unknown.Name)
}

func TestSortTypeZeroValueIsUnsorted(t *testing.T) {
	var order EventSortType
	assert.Equal(t, Unsorted, order)
	assert.Equal(t, "unsorted", order.String())
}

func TestComparators(t *testing.T) {
	early := NewTofEvent(1, 10)
	late := NewTofEvent(2, 5)
	assert.True(t, ByTof(early, late))
	assert.False(t, ByTof(late, early))
	assert.True(t, ByPulseTime(late, early))
	assert.False(t, ByPulseTime(early, early))
	assert.Equal(t, -1, compareTof(early, late))
	assert.Equal(t, 1, comparePulseTime(early, late))
	assert.Equal(t, 0, compareTof(early, early))
}
