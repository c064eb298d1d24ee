package eventlist

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistogramCounts(t *testing.T) {
	el := threeEvents()
	y := el.HistogramCounts([]float64{0, 2, 4, 6})

	assert.Equal(t, []float64{1, 1, 1}, y)
	assert.Equal(t, []float64{1, 1, 1}, HistogramErrors(y))
	assert.True(t, el.IsSortedByTof())
}

func TestHistogramCountsWithoutBins(t *testing.T) {
	el := threeEvents()
	assert.Empty(t, el.HistogramCounts(nil))
	assert.Empty(t, el.HistogramCounts([]float64{1}))
	assert.NotNil(t, el.HistogramCounts([]float64{1}))
	assert.Equal(t, Unsorted, el.Order())
}

func TestHistogramDropsEventsOutsideEdges(t *testing.T) {
	el := NewEventListFromEvents([]TofEvent{
		NewTofEvent(-1, 0),
		NewTofEvent(0, 0),
		NewTofEvent(0.5, 0),
		NewTofEvent(1, 0),
		NewTofEvent(1.5, 0),
		NewTofEvent(2, 0),
		NewTofEvent(7, 0),
	})
	y := el.HistogramCounts([]float64{0, 1, 2})
	assert.Equal(t, []float64{2, 2}, y)
}

func TestHistogramSkipsEmptyBins(t *testing.T) {
	el := NewEventListFromEvents([]TofEvent{
		NewTofEvent(9.5, 0),
		NewTofEvent(0.5, 0),
		NewTofEvent(9.1, 0),
	})
	y := el.HistogramCounts([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	assert.Equal(t, []float64{1, 0, 0, 0, 0, 0, 0, 0, 0, 2}, y)
}

func TestHistogramIsRecomputed(t *testing.T) {
	el := threeEvents()
	x := []float64{0, 10}
	assert.Equal(t, []float64{3}, el.HistogramCounts(x))

	el.AddEvent(NewTofEvent(4, 4))
	assert.Equal(t, []float64{4}, el.HistogramCounts(x))
}

func TestHistogramOfEmptyList(t *testing.T) {
	el := NewEventList()
	assert.Equal(t, []float64{0, 0}, el.HistogramCounts([]float64{0, 1, 2}))
}

func TestDataYUsesOwnBinEdges(t *testing.T) {
	el := threeEvents()
	assert.Empty(t, el.DataY())

	el.SetX(NewBinEdges([]float64{0, 4, 6}))
	assert.Equal(t, []float64{2, 1}, el.DataY())
	assert.Equal(t, []float64{math.Sqrt2, 1}, el.DataE())

	y, e := el.Histogram([]float64{0, 6})
	assert.Equal(t, []float64{3}, y)
	assert.Equal(t, []float64{math.Sqrt(3)}, e)
}

func TestHistogramErrors(t *testing.T) {
	y := []float64{0, 1, 4, 9, 2}
	e := HistogramErrors(y)
	for i := range y {
		assert.Equal(t, math.Sqrt(y[i]), e[i])
	}
	assert.Empty(t, HistogramErrors(nil))
}

func TestIntegrate(t *testing.T) {
	el := threeEvents()
	assert.Equal(t, 3.0, el.Integrate(0, 0, true))
	assert.Equal(t, 2.0, el.Integrate(1, 5, false))
	assert.Equal(t, 1.0, el.Integrate(2, 4, false))
	assert.Equal(t, 0.0, el.Integrate(4, 2, false))
	assert.True(t, el.IsSortedByTof())
}

func TestSearchTofFindsFirstAtOrAbove(t *testing.T) {
	events := []TofEvent{
		NewTofEvent(1, 0), NewTofEvent(2, 1), NewTofEvent(2, 2), NewTofEvent(3, 3),
	}
	assert.Equal(t, 0, searchTof(events, 0.5))
	assert.Equal(t, 1, searchTof(events, 2))
	assert.Equal(t, 3, searchTof(events, 2.5))
	assert.Equal(t, 4, searchTof(events, 3.5))
	assert.Equal(t, 0, searchTof(nil, 1))
}
