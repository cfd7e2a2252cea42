package data

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDataset() *Dataset {
	minReal := r3.Vector{X: 1000, Y: 2000, Z: 10}
	maxReal := r3.Vector{X: 1010.5, Y: 2003, Z: 12}
	return NewDataset(NewPointStore(0), minReal, maxReal)
}

func TestDatasetNormalization(t *testing.T) {
	t.Parallel()
	d := newTestDataset()
	assert.Equal(t, 10.5, d.Scale)
	assert.Equal(t, r3.Vector{X: 1005.25, Y: 2001.5, Z: 11}, d.Center)

	min, max := d.NormalizedBounds()
	assert.InDelta(t, -0.5, min.X, 1e-12)
	assert.InDelta(t, 0.5, max.X, 1e-12)
	assert.InDelta(t, -1.5/10.5, min.Y, 1e-12)
	assert.InDelta(t, 1/10.5, max.Z, 1e-12)

	coord := r3.Vector{X: 1003.25, Y: 2002.75, Z: 10.5}
	back := d.Denormalize(d.Normalize(coord))
	assert.InDelta(t, coord.X, back.X, 1e-9)
	assert.InDelta(t, coord.Y, back.Y, 1e-9)
	assert.InDelta(t, coord.Z, back.Z, 1e-9)
}

func TestDatasetZeroSpan(t *testing.T) {
	t.Parallel()
	p := r3.Vector{X: 5, Y: 5, Z: 5}
	d := NewDataset(NewPointStore(0), p, p)
	assert.Equal(t, 1.0, d.Scale)
	assert.Equal(t, r3.Vector{}, d.Normalize(p))
}

func TestRealDistance(t *testing.T) {
	t.Parallel()
	d := newTestDataset()
	a := Point{Position: d.Normalize(r3.Vector{X: 1001, Y: 2001, Z: 11})}
	b := Point{Position: d.Normalize(r3.Vector{X: 1004, Y: 2005, Z: 11})}
	assert.InDelta(t, 5, d.RealDistance(a, b), 1e-9)
}

func TestQuantizedRecord(t *testing.T) {
	t.Parallel()
	d := newTestDataset()
	p := Point{Position: d.Normalize(r3.Vector{X: 1003.457, Y: 2001.001, Z: 11.5})}

	rec, err := d.QuantizedRecord(p)
	require.NoError(t, err)
	assert.Equal(t, [3]int32{3457, 1001, 1500}, rec)

	d.ScaleFactor = r3.Vector{X: 0.01, Y: 0, Z: 0.01}
	_, err = d.QuantizedRecord(p)
	assert.Error(t, err)

	d.ScaleFactor = r3.Vector{X: 1e-9, Y: 1e-9, Z: 1e-9}
	_, err = d.QuantizedRecord(p)
	assert.Error(t, err)
}

func TestReplaceStore(t *testing.T) {
	t.Parallel()
	d := newTestDataset()
	next := NewPointStore(4)
	old := d.ReplaceStore(next)
	assert.Same(t, next, d.Store)
	assert.NotSame(t, next, old)
}
