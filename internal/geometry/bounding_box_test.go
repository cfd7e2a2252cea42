package geometry

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
)

func TestOctantCode(t *testing.T) {
	t.Parallel()
	split := r3.Vector{}
	tests := []struct {
		name string
		p    r3.Vector
		want uint8
	}{
		{"all above", r3.Vector{X: 1, Y: 1, Z: 1}, 0},
		{"x below", r3.Vector{X: -1, Y: 1, Z: 1}, 1},
		{"y below", r3.Vector{X: 1, Y: -1, Z: 1}, 2},
		{"z below", r3.Vector{X: 1, Y: 1, Z: -1}, 4},
		{"on split goes below", r3.Vector{}, 7},
		{"x on split", r3.Vector{X: 0, Y: 0.5, Z: 0.5}, 1},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, OctantCode(tt.p, split))
		})
	}
}

func TestOctantBoxContainsItsPoints(t *testing.T) {
	t.Parallel()
	box := NewBoundingBox(r3.Vector{X: -1, Y: -2, Z: -3}, r3.Vector{X: 1, Y: 2, Z: 3})
	samples := []r3.Vector{
		{X: 0.3, Y: 1.2, Z: -2.9},
		{X: -0.9, Y: -0.1, Z: 2.5},
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 2, Z: 3},
		{X: -1, Y: -2, Z: -3},
	}
	for _, p := range samples {
		code := box.OctantOf(p)
		assert.True(t, box.Octant(code).Contains(p), "point %v octant %d", p, code)
	}
}

func TestOctantBounds(t *testing.T) {
	t.Parallel()
	box := NewBoundingBox(r3.Vector{X: -1, Y: -1, Z: -1}, r3.Vector{X: 1, Y: 1, Z: 1})

	upper := box.Octant(0)
	assert.Equal(t, r3.Vector{}, upper.Min)
	assert.Equal(t, r3.Vector{X: 1, Y: 1, Z: 1}, upper.Max)

	lower := box.Octant(7)
	assert.Equal(t, r3.Vector{X: -1, Y: -1, Z: -1}, lower.Min)
	assert.Equal(t, r3.Vector{}, lower.Max)

	mixed := box.Octant(5)
	assert.Equal(t, r3.Vector{X: -1, Y: 0, Z: -1}, mixed.Min)
	assert.Equal(t, r3.Vector{X: 0, Y: 1, Z: 0}, mixed.Max)
	assert.Equal(t, r3.Vector{X: -0.5, Y: 0.5, Z: -0.5}, mixed.Mid)
}

func TestCornersAndEdges(t *testing.T) {
	t.Parallel()
	box := NewBoundingBox(r3.Vector{}, r3.Vector{X: 1, Y: 2, Z: 3})
	corners := box.Corners()
	assert.Equal(t, box.Min, corners[0])
	assert.Equal(t, box.Max, corners[7])

	edges := box.Edges()
	total := 0.0
	for _, e := range edges {
		assert.True(t, box.Contains(e[0]))
		assert.True(t, box.Contains(e[1]))
		total += e[1].Sub(e[0]).Norm()
	}
	// each axis contributes four edges
	assert.InDelta(t, 4*(1+2+3), total, 1e-12)
	assert.Equal(t, 3.0, box.MaxEdge())
}
