package eventlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// threeEvents is the list used across the tests: tofs 5, 1, 3 on pulses 0, 1, 2.
func threeEvents() *EventList {
	return NewEventListFromEvents([]TofEvent{
		NewTofEvent(5, 0),
		NewTofEvent(1, 1),
		NewTofEvent(3, 2),
	})
}

func TestNewEventListFromEventsCopies(t *testing.T) {
	events := []TofEvent{NewTofEvent(1, 1)}
	el := NewEventListFromEvents(events)
	events[0] = NewTofEvent(99, 99)

	require.Equal(t, 1, el.NumberOfEvents())
	assert.Equal(t, 1.0, el.Events()[0].Tof())
	assert.Equal(t, Unsorted, el.Order())
}

func TestAppendInvalidatesOrder(t *testing.T) {
	el := threeEvents()
	el.SortTof()
	require.True(t, el.IsSortedByTof())

	el.AddEvent(NewTofEvent(0.5, 3))
	assert.Equal(t, Unsorted, el.Order())

	el.SortTof()
	el.AddEvents([]TofEvent{NewTofEvent(7, 4)})
	assert.Equal(t, Unsorted, el.Order())

	el.SortTof()
	other := NewEventList()
	other.AddDetectorID(12)
	el.Merge(other)
	assert.Equal(t, Unsorted, el.Order())
	assert.Equal(t, 5, el.NumberOfEvents())
}

func TestAddEventQuicklyKeepsOrder(t *testing.T) {
	el := threeEvents()
	el.SortTof()
	el.AddEventQuickly(NewTofEvent(10, 3))

	assert.True(t, el.IsSortedByTof())
	assert.Equal(t, 4, el.NumberOfEvents())
}

func TestMergeUnionsDetectorIDs(t *testing.T) {
	a := threeEvents()
	a.AddDetectorID(1)
	a.AddDetectorID(2)
	b := NewEventListFromEvents([]TofEvent{NewTofEvent(8, 8)})
	b.AddDetectorID(2)
	b.AddDetectorID(3)

	a.Merge(b)

	assert.Equal(t, []int32{1, 2, 3}, a.DetectorIDs())
	assert.Equal(t, 4, a.NumberOfEvents())
	assert.Equal(t, []int32{2, 3}, b.DetectorIDs())
}

func TestMergeWithItself(t *testing.T) {
	el := threeEvents()
	el.Merge(el)
	assert.Equal(t, 6, el.NumberOfEvents())
	assert.Equal(t, []float64{5, 1, 3, 5, 1, 3}, el.Tofs())
}

func TestClearKeepsBinEdges(t *testing.T) {
	el := threeEvents()
	el.AddDetectorID(4)
	el.SetX(NewBinEdges([]float64{0, 2, 4, 6}))

	el.Clear()

	assert.Equal(t, 0, el.NumberOfEvents())
	assert.Empty(t, el.DetectorIDs())
	assert.Equal(t, []float64{0, 2, 4, 6}, el.DataX())
	assert.Equal(t, 3, el.HistogramSize())
}

func TestDetectorIDs(t *testing.T) {
	el := NewEventList()
	assert.False(t, el.HasDetectorID(3))

	el.AddDetectorID(3)
	el.AddDetectorID(1)
	el.AddDetectorID(3)
	assert.True(t, el.HasDetectorID(3))
	assert.Equal(t, []int32{1, 3}, el.DetectorIDs())

	el.SetDetectorIDs([]int32{9})
	assert.Equal(t, []int32{9}, el.DetectorIDs())

	var zero EventList
	zero.AddDetectorID(5)
	assert.True(t, zero.HasDetectorID(5))
}

func TestCloneIsDeepExceptBinEdges(t *testing.T) {
	el := threeEvents()
	el.AddDetectorID(1)
	el.SetX(NewBinEdges([]float64{0, 10}))
	el.SortTof()

	clone := el.Clone()
	require.True(t, clone.Equal(el))
	assert.True(t, clone.IsSortedByTof())
	assert.True(t, clone.refX.shares(el.refX))

	clone.AddEvent(NewTofEvent(2, 2))
	clone.AddDetectorID(2)
	assert.Equal(t, 3, el.NumberOfEvents())
	assert.False(t, el.HasDetectorID(2))

	clone.AddTofOffset(1)
	assert.Equal(t, []float64{0, 10}, el.DataX())
	assert.Equal(t, []float64{1, 11}, clone.DataX())
	assert.Equal(t, []float64{1, 3, 5}, el.Tofs())
}

func TestTofsAndSetTofs(t *testing.T) {
	el := threeEvents()
	el.SortPulseTime()

	tofs := el.Tofs()
	tofs[0] = 100
	assert.Equal(t, []float64{5, 1, 3}, el.Tofs())

	el.SetTofs([]float64{7, 8, 9})
	assert.Equal(t, []float64{7, 8, 9}, el.Tofs())
	assert.Equal(t, []int64{0, 1, 2}, el.PulseTimes())
	assert.Equal(t, Unsorted, el.Order())
}

func TestExtrema(t *testing.T) {
	el := NewEventList()
	assert.True(t, el.TofMin() > el.TofMax())
	assert.Equal(t, int64(0), el.PulseTimeMin())
	assert.Equal(t, int64(0), el.PulseTimeMax())

	el = threeEvents()
	assert.Equal(t, 1.0, el.TofMin())
	assert.Equal(t, 5.0, el.TofMax())
	assert.Equal(t, int64(0), el.PulseTimeMin())
	assert.Equal(t, int64(2), el.PulseTimeMax())

	el.SortTof()
	assert.Equal(t, 1.0, el.TofMin())
	assert.Equal(t, 5.0, el.TofMax())

	el.SortPulseTime()
	assert.Equal(t, int64(0), el.PulseTimeMin())
	assert.Equal(t, int64(2), el.PulseTimeMax())
}

func TestEqual(t *testing.T) {
	a := threeEvents()
	b := threeEvents()
	assert.True(t, a.Equal(b))

	b.AddDetectorID(1)
	assert.False(t, a.Equal(b))

	a.AddDetectorID(1)
	assert.True(t, a.Equal(b))

	a.SortTof()
	assert.False(t, a.Equal(b))
}

func TestMemorySize(t *testing.T) {
	el := NewEventList()
	assert.Equal(t, 0, el.MemorySize())

	el.AddEvents(make([]TofEvent, 10))
	assert.GreaterOrEqual(t, el.MemorySize(), 10*16)
}
