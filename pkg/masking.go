package eventlist

import (
	"golang.org/x/exp/slices"
)

// MaskTofRange removes every event with min <= tof <= max.
// The list stays sorted by time-of-flight afterwards.
func (el *EventList) MaskTofRange(min, max float64) error {
	if max <= min {
		return &InvalidRangeError{Min: min, Max: max}
	}
	el.SortTof()

	events := el.events
	first := searchTof(events, min)
	last := first
	for last < len(events) && events[last].tof <= max {
		last++
	}
	if first == last {
		return nil
	}

	el.events = slices.Delete(events, first, last)
	return nil
}
