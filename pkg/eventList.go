package eventlist

import (
	"math"
	"unsafe"

	"golang.org/x/exp/slices"
)

// EventList holds the raw events recorded for one spectrum together with the
// detectors that contributed them and the bin edges of its histogram view.
//
// An EventList is not safe for concurrent use. Methods that only read events
// may still reorder them in place to reach the ordering they need (see
// SortBy), so even concurrent reads of one list must be serialized.
type EventList struct {
	events      []TofEvent
	detectorIDs map[int32]struct{}
	refX        BinEdges
	order       sortState
}

func NewEventList() *EventList {
	return &EventList{
		detectorIDs: make(map[int32]struct{}),
	}
}

// NewEventListFromEvents copies events into a new, unsorted list.
func NewEventListFromEvents(events []TofEvent) *EventList {
	el := NewEventList()
	el.events = slices.Clone(events)
	return el
}

// Clone copies the events and detector IDs. The bin edges are shared with el
// until either list writes to them.
func (el *EventList) Clone() *EventList {
	clone := &EventList{
		events:      slices.Clone(el.events),
		detectorIDs: make(map[int32]struct{}, len(el.detectorIDs)),
		refX:        el.refX.Share(),
		order:       el.order,
	}
	for id := range el.detectorIDs {
		clone.detectorIDs[id] = struct{}{}
	}
	return clone
}

func (el *EventList) AddEvent(event TofEvent) {
	el.events = append(el.events, event)
	el.order.invalidate()
}

func (el *EventList) AddEvents(events []TofEvent) {
	el.events = append(el.events, events...)
	el.order.invalidate()
}

// Merge appends the events of other and takes the union of both detector
// ID sets.
func (el *EventList) Merge(other *EventList) {
	el.events = append(el.events, other.events...)
	other.copyDetectorIDsTo(el)
	el.order.invalidate()
}

// AddEventQuickly appends without touching the sort cache. The caller must
// know the cache stays valid or reset it afterwards.
func (el *EventList) AddEventQuickly(event TofEvent) {
	el.events = append(el.events, event)
}

// Clear drops all events and detector IDs. Bin edges are kept.
func (el *EventList) Clear() {
	el.events = el.events[:0]
	clear(el.detectorIDs)
	el.order.invalidate()
}

// Events returns the stored events without copying. The slice is only valid
// until the next call that modifies or reorders the list and must not be
// written to.
func (el *EventList) Events() []TofEvent {
	return el.events
}

func (el *EventList) NumberOfEvents() int {
	return len(el.events)
}

// MemorySize approximates the bytes held by events and detector IDs.
func (el *EventList) MemorySize() int {
	return cap(el.events)*int(unsafe.Sizeof(TofEvent{})) +
		len(el.detectorIDs)*int(unsafe.Sizeof(int32(0)))
}

func (el *EventList) AddDetectorID(id int32) {
	if el.detectorIDs == nil {
		el.detectorIDs = make(map[int32]struct{})
	}
	el.detectorIDs[id] = struct{}{}
}

func (el *EventList) HasDetectorID(id int32) bool {
	_, ok := el.detectorIDs[id]
	return ok
}

// DetectorIDs returns the detector IDs in ascending order.
func (el *EventList) DetectorIDs() []int32 {
	ids := make([]int32, 0, len(el.detectorIDs))
	for id := range el.detectorIDs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// SetDetectorIDs replaces the detector ID set.
func (el *EventList) SetDetectorIDs(ids []int32) {
	clear(el.detectorIDs)
	for _, id := range ids {
		el.AddDetectorID(id)
	}
}

func (el *EventList) copyDetectorIDsTo(output *EventList) {
	for id := range el.detectorIDs {
		output.AddDetectorID(id)
	}
}

// SetX makes el share the given bin edges.
func (el *EventList) SetX(edges BinEdges) {
	if el.refX.shares(edges) {
		return
	}
	el.refX.Release()
	el.refX = edges.Share()
}

// RefX returns a shared handle on the bin edges.
func (el *EventList) RefX() BinEdges {
	return el.refX.Share()
}

// DataX returns the bin edges without copying.
func (el *EventList) DataX() []float64 {
	return el.refX.Values()
}

func (el *EventList) HistogramSize() int {
	return el.refX.HistogramSize()
}

// Order returns the cached ordering of the events.
func (el *EventList) Order() EventSortType {
	return el.order.get()
}

func (el *EventList) IsSortedByTof() bool {
	return el.order.is(TofSort)
}

// SortBy puts the events in the requested order. Asking for Unsorted, or for
// the order the list is already known to be in, does nothing.
func (el *EventList) SortBy(order EventSortType) {
	compare := order.compare()
	if compare == nil || el.order.is(order) {
		return
	}
	slices.SortStableFunc(el.events, compare)
	el.order.set(order)
}

func (el *EventList) SortTof() {
	el.SortBy(TofSort)
}

func (el *EventList) SortPulseTime() {
	el.SortBy(PulseTimeSort)
}

// Reverse reverses the bin edges. Events sorted by time-of-flight are
// reversed with them; any other ordering is forgotten.
//
// It is the last step of a transform that negated every time-of-flight:
// reversing then brings events and edges back to ascending order.
func (el *EventList) Reverse() {
	slices.Reverse(el.refX.Mutable())
	if el.order.is(TofSort) {
		slices.Reverse(el.events)
	} else {
		el.order.invalidate()
	}
}

// Tofs returns a copy of every event's time-of-flight.
func (el *EventList) Tofs() []float64 {
	tofs := make([]float64, len(el.events))
	for i, event := range el.events {
		tofs[i] = event.tof
	}
	return tofs
}

// SetTofs overwrites the time-of-flight of every event with the value at
// the same position in tofs. tofs must hold at least NumberOfEvents values.
func (el *EventList) SetTofs(tofs []float64) {
	for i := range el.events {
		el.events[i].tof = tofs[i]
	}
	el.order.invalidate()
}

// PulseTimes returns a copy of every event's pulse time.
func (el *EventList) PulseTimes() []int64 {
	times := make([]int64, len(el.events))
	for i, event := range el.events {
		times[i] = event.pulseTime
	}
	return times
}

// TofMin returns the smallest time-of-flight, or +Inf for an empty list.
func (el *EventList) TofMin() float64 {
	if len(el.events) == 0 {
		return math.Inf(1)
	}
	if el.order.is(TofSort) {
		return el.events[0].tof
	}
	tofMin := el.events[0].tof
	for _, event := range el.events[1:] {
		tofMin = math.Min(tofMin, event.tof)
	}
	return tofMin
}

// TofMax returns the largest time-of-flight, or -Inf for an empty list.
func (el *EventList) TofMax() float64 {
	if len(el.events) == 0 {
		return math.Inf(-1)
	}
	if el.order.is(TofSort) {
		return el.events[len(el.events)-1].tof
	}
	tofMax := el.events[0].tof
	for _, event := range el.events[1:] {
		tofMax = math.Max(tofMax, event.tof)
	}
	return tofMax
}

// PulseTimeMin returns the earliest pulse time, or 0 for an empty list.
func (el *EventList) PulseTimeMin() int64 {
	if len(el.events) == 0 {
		return 0
	}
	if el.order.is(PulseTimeSort) {
		return el.events[0].pulseTime
	}
	minTime := el.events[0].pulseTime
	for _, event := range el.events[1:] {
		minTime = min(minTime, event.pulseTime)
	}
	return minTime
}

// PulseTimeMax returns the latest pulse time, or 0 for an empty list.
func (el *EventList) PulseTimeMax() int64 {
	if len(el.events) == 0 {
		return 0
	}
	if el.order.is(PulseTimeSort) {
		return el.events[len(el.events)-1].pulseTime
	}
	maxTime := el.events[0].pulseTime
	for _, event := range el.events[1:] {
		maxTime = max(maxTime, event.pulseTime)
	}
	return maxTime
}

// Equal reports whether both lists hold the same events in the same
// sequence and the same detector IDs.
func (el *EventList) Equal(other *EventList) bool {
	if !slices.Equal(el.events, other.events) {
		return false
	}
	if len(el.detectorIDs) != len(other.detectorIDs) {
		return false
	}
	for id := range el.detectorIDs {
		if _, ok := other.detectorIDs[id]; !ok {
			return false
		}
	}
	return true
}
