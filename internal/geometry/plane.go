package geometry

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// ErrDegeneratePlane is returned when a plane normal has zero magnitude
var ErrDegeneratePlane = errors.New("plane normal has zero magnitude")

// Plane in the form Normal·p + D = 0. Positive signed distances lie on the side the normal points to.
type Plane struct {
	Normal r3.Vector
	D      float64
}

func NewPlane(a, b, c, d float64) Plane {
	return Plane{Normal: r3.Vector{X: a, Y: b, Z: c}, D: d}
}

func (p Plane) SignedDistance(v r3.Vector) float64 {
	return p.Normal.Dot(v) + p.D
}

// Divides the four plane coefficients by the magnitude of the normal
func (p Plane) Normalize() (Plane, error) {
	magnitude := p.Normal.Norm()
	if magnitude == 0 {
		return p, ErrDegeneratePlane
	}
	return Plane{
		Normal: p.Normal.Mul(1 / magnitude),
		D:      p.D / magnitude,
	}, nil
}
