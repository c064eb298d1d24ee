package eventlist

import (
	"encoding/json"
)

type sortKind uint8

const (
	unsortedKind sortKind = iota
	tofSortKind
	pulseTimeSortKind
)

// EventSortType is the ordering an event list is known to be in.
// The set of values is closed: only Unsorted, TofSort and PulseTimeSort exist,
// and the zero value is Unsorted.
type EventSortType struct {
	kind sortKind
}

var (
	Unsorted      = EventSortType{unsortedKind}
	TofSort       = EventSortType{tofSortKind}
	PulseTimeSort = EventSortType{pulseTimeSortKind}
)

var sortTypeStrings = []string{
	"unsorted",
	"tof",
	"pulse_time",
}

func (s EventSortType) String() string {
	return sortTypeStrings[s.kind]
}

func (s EventSortType) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *EventSortType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, v := range sortTypeStrings {
		if v == name {
			*s = EventSortType{sortKind(i)}
			return nil
		}
	}
	return &UnknownSortTypeError{Name: name}
}

// compare returns the comparator that establishes s, or nil for Unsorted.
func (s EventSortType) compare() func(a, b TofEvent) int {
	switch s.kind {
	case tofSortKind:
		return compareTof
	case pulseTimeSortKind:
		return comparePulseTime
	}
	return nil
}

// sortState caches the last known ordering of an event list.
//
// Operations that only read events (histogramming, masking, filtering,
// splitting, integration) may need a particular ordering. They reorder the
// events in place and record it here. The event multiset never changes, so
// the caller only ever sees a performance difference.
type sortState struct {
	order EventSortType
}

func (c *sortState) get() EventSortType {
	return c.order
}

func (c *sortState) set(order EventSortType) {
	c.order = order
}

func (c *sortState) invalidate() {
	c.order = Unsorted
}

func (c *sortState) is(order EventSortType) bool {
	return c.order == order
}
