package eventlist

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinEdgesCopyOnWrite(t *testing.T) {
	values := []float64{0, 1, 2}
	a := NewBinEdges(values)
	values[0] = 100
	assert.Equal(t, []float64{0, 1, 2}, a.Values())

	b := a.Share()
	require.True(t, a.shares(b))

	mutable := b.Mutable()
	mutable[0] = -1
	assert.False(t, a.shares(b))
	assert.Equal(t, []float64{0, 1, 2}, a.Values())
	assert.Equal(t, []float64{-1, 1, 2}, b.Values())

	// a is the only owner left, so it writes in place.
	before := &a.Values()[0]
	a.Mutable()[1] = 5
	assert.Same(t, before, &a.Values()[0])
	assert.Equal(t, []float64{0, 5, 2}, a.Values())
}

func TestBinEdgesRelease(t *testing.T) {
	a := NewBinEdges([]float64{0, 1})
	b := a.Share()
	b.Release()
	assert.Equal(t, 0, b.Len())

	before := &a.Values()[0]
	a.Mutable()[0] = 3
	assert.Same(t, before, &a.Values()[0])
}

func TestBinEdgesEmpty(t *testing.T) {
	var edges BinEdges
	assert.Equal(t, 0, edges.Len())
	assert.Nil(t, edges.Values())
	assert.Equal(t, 0, edges.HistogramSize())
	assert.Equal(t, 0, NewBinEdges([]float64{1}).HistogramSize())
	assert.Equal(t, 2, NewBinEdges([]float64{1, 2, 3}).HistogramSize())
}

func TestLinearBinEdges(t *testing.T) {
	edges, err := LinearBinEdges(0, 10, 2.5)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 2.5, 5, 7.5, 10}, edges.Values())

	edges, err = LinearBinEdges(0, 5, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 2, 4, 5}, edges.Values())

	for _, stop := range []float64{2.1, 2.7} {
		edges, err = LinearBinEdges(0, stop, 0.3)
		require.NoError(t, err)
		values := edges.Values()
		assert.Equal(t, int(math.Round(stop/0.3)), edges.HistogramSize())
		assert.Equal(t, stop, values[len(values)-1])
		for i := 1; i < len(values); i++ {
			assert.Greater(t, values[i]-values[i-1], 0.29, "bin %d of [0, %g)", i-1, stop)
		}
	}

	_, err = LinearBinEdges(0, 5, 0)
	assert.Error(t, err)

	_, err = LinearBinEdges(5, 5, 1)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestEventListsShareBinEdges(t *testing.T) {
	edges := NewBinEdges([]float64{0, 2, 4})
	a := NewEventList()
	b := NewEventList()
	a.SetX(edges)
	b.SetX(edges)
	require.True(t, a.refX.shares(b.refX))

	a.ScaleTof(2)
	assert.Equal(t, []float64{0, 4, 8}, a.DataX())
	assert.Equal(t, []float64{0, 2, 4}, b.DataX())
	assert.Equal(t, []float64{0, 2, 4}, edges.Values())
}
