package eventlist

import (
	"math"

	"golang.org/x/exp/slices"
)

// searchTof returns the index of the first event with tof >= v in events
// sorted by time-of-flight.
func searchTof(events []TofEvent, v float64) int {
	i, _ := slices.BinarySearchFunc(events, v, func(e TofEvent, v float64) int {
		switch {
		case e.tof == v:
			return 0
		case e.tof > v:
			return 1
		}
		return -1
	})
	return i
}

// HistogramCounts counts the events falling in each bin defined by the edges
// x. The result has len(x)-1 entries, and is empty when x has fewer than two
// edges. Events before x[0] or at or after the last edge are not counted.
//
// The events are sorted by time-of-flight first, so a single sweep over
// events and bins suffices.
func (el *EventList) HistogramCounts(x []float64) []float64 {
	if len(x) <= 1 {
		return []float64{}
	}
	el.SortTof()

	nBins := len(x) - 1
	y := make([]float64, nBins)

	events := el.events
	first := searchTof(events, x[0])

	bin := 0
	for _, event := range events[first:] {
		tof := event.tof
		for bin < nBins && tof >= x[bin+1] {
			bin++
		}
		if bin == nBins {
			break
		}
		if x[bin] <= tof {
			y[bin]++
		}
	}
	return y
}

// HistogramErrors returns the Poisson counting error sqrt(y) of every count.
func HistogramErrors(y []float64) []float64 {
	e := make([]float64, len(y))
	for i, count := range y {
		e[i] = math.Sqrt(count)
	}
	return e
}

// Histogram returns the counts for the edges x and their errors.
func (el *EventList) Histogram(x []float64) ([]float64, []float64) {
	y := el.HistogramCounts(x)
	return y, HistogramErrors(y)
}

// DataY histograms the events on the list's own bin edges.
func (el *EventList) DataY() []float64 {
	return el.HistogramCounts(el.refX.Values())
}

// DataE returns the errors of DataY.
func (el *EventList) DataE() []float64 {
	return HistogramErrors(el.DataY())
}

// Integrate counts the events with min <= tof < max, or every event when
// entireRange is set.
func (el *EventList) Integrate(min, max float64, entireRange bool) float64 {
	if entireRange {
		return float64(len(el.events))
	}
	if max <= min {
		return 0
	}
	el.SortTof()
	events := el.events
	return float64(searchTof(events, max) - searchTof(events, min))
}
