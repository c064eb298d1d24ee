package eventlist

import (
	"fmt"
	"math"
	"sync/atomic"

	"golang.org/x/exp/slices"
)

type edgeBuffer struct {
	values []float64
	owners atomic.Int32
}

func newEdgeBuffer(values []float64) *edgeBuffer {
	buf := &edgeBuffer{values: values}
	buf.owners.Store(1)
	return buf
}

// BinEdges is a shared handle to a histogram bin-edge vector.
//
// Handles obtained with Share point at the same buffer. Reading through any
// of them needs no synchronization. A holder that wants to write must call
// Mutable, which gives it a private copy whenever the buffer has other owners.
// A handle is owned by a single goroutine at a time, like the event list
// holding it.
type BinEdges struct {
	buf *edgeBuffer
}

func NewBinEdges(values []float64) BinEdges {
	return BinEdges{buf: newEdgeBuffer(slices.Clone(values))}
}

// LinearBinEdges builds constant-width edges from start to stop. The last
// bin is truncated so the final edge is exactly stop.
func LinearBinEdges(start, stop, width float64) (BinEdges, error) {
	if width <= 0 || math.IsNaN(width) {
		return BinEdges{}, fmt.Errorf("invalid bin width %g", width)
	}
	if stop <= start {
		return BinEdges{}, &InvalidRangeError{Min: start, Max: stop}
	}
	nBins := int(math.Ceil((stop - start) / width))
	// Rounding can push the quotient just past an integer.
	if nBins > 1 && start+float64(nBins-1)*width >= stop-width*1e-9 {
		nBins--
	}
	values := make([]float64, nBins+1)
	for i := 0; i < nBins; i++ {
		values[i] = start + float64(i)*width
	}
	values[nBins] = stop
	return BinEdges{buf: newEdgeBuffer(values)}, nil
}

func (b BinEdges) Len() int {
	if b.buf == nil {
		return 0
	}
	return len(b.buf.values)
}

// Values returns the edges without copying. The slice must not be modified.
func (b BinEdges) Values() []float64 {
	if b.buf == nil {
		return nil
	}
	return b.buf.values
}

// HistogramSize is the number of bins the edges define; 0 when there are
// fewer than two edges.
func (b BinEdges) HistogramSize() int {
	if b.Len() <= 1 {
		return 0
	}
	return b.Len() - 1
}

// Share returns another handle on the same buffer.
func (b BinEdges) Share() BinEdges {
	if b.buf != nil {
		b.buf.owners.Add(1)
	}
	return b
}

// Mutable detaches b from any other owner and returns its edges for writing.
func (b *BinEdges) Mutable() []float64 {
	if b.buf == nil {
		b.buf = newEdgeBuffer(nil)
		return b.buf.values
	}
	if b.buf.owners.Load() > 1 {
		detached := newEdgeBuffer(slices.Clone(b.buf.values))
		b.buf.owners.Add(-1)
		b.buf = detached
	}
	return b.buf.values
}

// Release gives up this handle's ownership of the buffer.
func (b *BinEdges) Release() {
	if b.buf == nil {
		return
	}
	b.buf.owners.Add(-1)
	b.buf = nil
}

// shares reports whether b and other point at the same buffer.
func (b BinEdges) shares(other BinEdges) bool {
	return b.buf != nil && b.buf == other.buf
}
