package eventlist

import (
	"golang.org/x/exp/slices"
)

// SplittingInterval routes the events with Start <= pulse time < Stop to the
// output at Index.
type SplittingInterval struct {
	Start int64 `json:"start" db:"StartTime"`
	Stop  int64 `json:"stop" db:"StopTime"`
	Index int   `json:"index" db:"Destination"`
}

// TimeSplitter is a list of intervals in non-decreasing, non-overlapping
// time order.
type TimeSplitter []SplittingInterval

// NumOutputs is one more than the largest destination index, 0 for an empty
// splitter.
func (s TimeSplitter) NumOutputs() int {
	n := 0
	for _, interval := range s {
		if interval.Index+1 > n {
			n = interval.Index + 1
		}
	}
	return n
}

// Validate checks that every interval has start <= stop and does not start
// before the previous one stops.
func (s TimeSplitter) Validate() error {
	for i, interval := range s {
		if interval.Stop < interval.Start || (i > 0 && interval.Start < s[i-1].Stop) {
			return &SplitterOrderError{Position: i, Start: interval.Start, Stop: interval.Stop}
		}
	}
	return nil
}

// Sort orders the intervals by start time.
func (s TimeSplitter) Sort() {
	slices.SortStableFunc(s, func(a, b SplittingInterval) int {
		switch {
		case a.Start < b.Start:
			return -1
		case a.Start > b.Start:
			return 1
		}
		return 0
	})
}

// prepareOutput empties output and gives it the detector IDs and bin edges
// of the source list.
func prepareOutput(output *EventList, ids []int32, edges BinEdges) {
	output.Clear()
	output.SetDetectorIDs(ids)
	output.SetX(edges)
}

// sourceFor returns the events to read from when writing into outputs. If el
// is one of the outputs its events are copied first, because preparing the
// outputs clears them.
func (el *EventList) sourceFor(outputs ...*EventList) []TofEvent {
	for _, output := range outputs {
		if output == el {
			return slices.Clone(el.events)
		}
	}
	return el.events
}

// FilterByPulseTime replaces the contents of output with the events whose
// pulse time lies in [start, stop). output gets el's detector IDs and bin
// edges.
func (el *EventList) FilterByPulseTime(start, stop int64, output *EventList) {
	el.SortPulseTime()
	events := el.sourceFor(output)
	prepareOutput(output, el.DetectorIDs(), el.refX)

	i := 0
	for i < len(events) && events[i].pulseTime < start {
		i++
	}
	for i < len(events) && events[i].pulseTime < stop {
		output.AddEventQuickly(events[i])
		i++
	}
	output.order.set(PulseTimeSort)
}

// SplitByTime distributes the events over outputs according to splitter.
// Every output is emptied and gets el's detector IDs and bin edges first.
//
// Events are visited once, in pulse time order, while the splitter is walked
// alongside them, so the intervals must be in non-decreasing time order.
// Events outside every interval, and events routed to an index outside
// outputs or to a nil output, are dropped.
func (el *EventList) SplitByTime(splitter TimeSplitter, outputs []*EventList) {
	el.SortPulseTime()
	events := el.sourceFor(outputs...)
	ids := el.DetectorIDs()
	for _, output := range outputs {
		if output != nil {
			prepareOutput(output, ids, el.refX)
		}
	}

	i := 0
	for _, interval := range splitter {
		for i < len(events) && events[i].pulseTime < interval.Start {
			i++
		}
		if i == len(events) {
			break
		}

		var destination *EventList
		if interval.Index >= 0 && interval.Index < len(outputs) {
			destination = outputs[interval.Index]
		}
		for i < len(events) && events[i].pulseTime < interval.Stop {
			if destination != nil {
				destination.AddEventQuickly(events[i])
			}
			i++
		}
	}

	for _, output := range outputs {
		if output != nil {
			output.order.set(PulseTimeSort)
		}
	}
}
