package eventlist

// ScaleTof multiplies every time-of-flight and every bin edge by factor.
// A negative factor leaves both in ascending order again.
func (el *EventList) ScaleTof(factor float64) {
	for i := range el.events {
		el.events[i].tof *= factor
	}
	edges := el.refX.Mutable()
	for i := range edges {
		edges[i] *= factor
	}
	if factor < 0 {
		el.Reverse()
	}
}

// AddTofOffset shifts every time-of-flight and every bin edge by offset.
// Ordering is unchanged.
func (el *EventList) AddTofOffset(offset float64) {
	for i := range el.events {
		el.events[i].tof += offset
	}
	edges := el.refX.Mutable()
	for i := range edges {
		edges[i] += offset
	}
}

// ConvertTof maps every time-of-flight and bin edge to tof*factor + offset.
func (el *EventList) ConvertTof(factor, offset float64) {
	switch {
	case offset == 0:
		el.ScaleTof(factor)
		return
	case factor == 1:
		el.AddTofOffset(offset)
		return
	}

	for i := range el.events {
		el.events[i].tof = el.events[i].tof*factor + offset
	}
	edges := el.refX.Mutable()
	for i := range edges {
		edges[i] = edges[i]*factor + offset
	}
	if factor < 0 {
		el.Reverse()
	}
}
