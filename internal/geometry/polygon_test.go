package geometry

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePolygon(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		vertices []r3.Vector
		valid    bool
	}{
		{"too few", []r3.Vector{{}, {X: 1}}, false},
		{"collinear", []r3.Vector{{}, {X: 1}, {X: 2}, {Y: 1}}, false},
		{"coincident", []r3.Vector{{}, {}, {Y: 1}}, false},
		{"triangle", []r3.Vector{{}, {X: 1}, {Y: 1}}, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidatePolygon(tt.vertices)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, ErrDegeneratePolygon))
			}
		})
	}
}

func TestPlaneBasisIsOrthonormal(t *testing.T) {
	t.Parallel()
	planes := [][3]r3.Vector{
		{{}, {X: 1}, {Y: 1}},
		{{}, {Y: 1}, {Z: 1}},
		{{}, {Z: 1}, {X: 1}},
		{{X: 1, Y: 2, Z: 3}, {X: -4, Y: 0.5, Z: 2}, {X: 0.3, Y: -1, Z: 7}},
	}
	for _, pl := range planes {
		basis, err := NewPlaneBasis(pl[0], pl[1], pl[2])
		require.NoError(t, err)
		assert.InDelta(t, 1, basis.XAxis.Norm(), 1e-12)
		assert.InDelta(t, 1, basis.YAxis.Norm(), 1e-12)
		assert.InDelta(t, 0, basis.XAxis.Dot(basis.YAxis), 1e-12)
		assert.InDelta(t, 0, basis.XAxis.Dot(basis.Normal), 1e-12)
		assert.InDelta(t, 0, basis.YAxis.Dot(basis.Normal), 1e-12)

		// in plane distances survive the change of frame
		d3 := pl[1].Sub(pl[2]).Norm()
		d2 := basis.To2D(pl[1]).Sub(basis.To2D(pl[2])).Norm()
		assert.InDelta(t, d3, d2, 1e-9)
	}
}

func TestPointInPolygon2D(t *testing.T) {
	t.Parallel()
	square := []r2.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}
	concave := []r2.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 2, Y: 1}, {X: 0, Y: 4}}

	assert.True(t, PointInPolygon2D(square, r2.Point{X: 2, Y: 2}))
	assert.False(t, PointInPolygon2D(square, r2.Point{X: 5, Y: 2}))
	assert.False(t, PointInPolygon2D(square, r2.Point{X: -1, Y: -1}))
	assert.True(t, PointInPolygon2D(square, r2.Point{X: 4, Y: 4}))

	assert.True(t, PointInPolygon2D(concave, r2.Point{X: 1, Y: 0.5}))
	assert.False(t, PointInPolygon2D(concave, r2.Point{X: 2, Y: 3}))
	assert.True(t, PointInPolygon2D(concave, r2.Point{X: 3.5, Y: 3}))
}
