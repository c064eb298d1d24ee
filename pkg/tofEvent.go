package eventlist

import "fmt"

// TofEvent is a single detected neutron: its time-of-flight in nanoseconds
// and the absolute time of the source pulse it belongs to.
type TofEvent struct {
	tof       float64
	pulseTime int64
}

func NewTofEvent(tof float64, pulseTime int64) TofEvent {
	return TofEvent{tof: tof, pulseTime: pulseTime}
}

func (e TofEvent) Tof() float64 {
	return e.tof
}

func (e TofEvent) PulseTime() int64 {
	return e.pulseTime
}

func (e TofEvent) String() string {
	return fmt.Sprintf("(tof=%g, pulse=%d)", e.tof, e.pulseTime)
}

// ByTof reports whether a is earlier than b in time-of-flight.
func ByTof(a, b TofEvent) bool {
	return a.tof < b.tof
}

// ByPulseTime reports whether a belongs to an earlier pulse than b.
func ByPulseTime(a, b TofEvent) bool {
	return a.pulseTime < b.pulseTime
}

func compareTof(a, b TofEvent) int {
	switch {
	case ByTof(a, b):
		return -1
	case ByTof(b, a):
		return 1
	}
	return 0
}

func comparePulseTime(a, b TofEvent) int {
	switch {
	case ByPulseTime(a, b):
		return -1
	case ByPulseTime(b, a):
		return 1
	}
	return 0
}
