package geometry

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// ErrDegeneratePolygon is returned for cutting polygons that do not span a plane
var ErrDegeneratePolygon = errors.New("polygon needs at least 3 non collinear vertices")

const collinearEpsilon = 1e-12

// Checks that the polygon has at least three vertices and that the first three, which define the
// cutting plane, are distinct and not collinear
func ValidatePolygon(vertices []r3.Vector) error {
	if len(vertices) < 3 {
		return errors.Wrapf(ErrDegeneratePolygon, "got %d vertices", len(vertices))
	}
	e1 := vertices[1].Sub(vertices[0])
	e2 := vertices[2].Sub(vertices[0])
	scale := e1.Norm() * e2.Norm()
	if scale == 0 || e1.Cross(e2).Norm() <= collinearEpsilon*scale {
		return errors.Wrap(ErrDegeneratePolygon, "first three vertices are coincident or collinear")
	}
	return nil
}

// Orthonormal 2D frame lying in the plane of a polygon
type PlaneBasis struct {
	Normal r3.Vector
	XAxis  r3.Vector
	YAxis  r3.Vector
}

// Builds the in-plane frame of the plane through a, b and c
func NewPlaneBasis(a, b, c r3.Vector) (PlaneBasis, error) {
	if err := ValidatePolygon([]r3.Vector{a, b, c}); err != nil {
		return PlaneBasis{}, err
	}
	z := b.Sub(a).Cross(c.Sub(a)).Normalize()

	// any vector not parallel to z
	var arbitrary r3.Vector
	if math.Abs(z.X) > math.Abs(z.Z) {
		arbitrary = r3.Vector{X: -z.Y, Y: z.X}
	} else {
		arbitrary = r3.Vector{Y: -z.Z, Z: z.Y}
	}
	x := z.Cross(arbitrary).Normalize()
	return PlaneBasis{
		Normal: z,
		XAxis:  x,
		YAxis:  z.Cross(x),
	}, nil
}

// Expresses p in the 2D frame of the basis
func (b PlaneBasis) To2D(p r3.Vector) r2.Point {
	return r2.Point{X: p.Dot(b.XAxis), Y: p.Dot(b.YAxis)}
}

func (b PlaneBasis) PolygonTo2D(vertices []r3.Vector) []r2.Point {
	out := make([]r2.Point, len(vertices))
	for i, v := range vertices {
		out[i] = b.To2D(v)
	}
	return out
}

// Even-odd ray casting test. A point coinciding with a vertex is inside.
func PointInPolygon2D(polygon []r2.Point, p r2.Point) bool {
	inside := false
	j := len(polygon) - 1
	for i := 0; i < len(polygon); i++ {
		a, b := polygon[i], polygon[j]
		if p.X == a.X && p.Y == a.Y {
			return true
		}
		if (a.Y > p.Y) != (b.Y > p.Y) {
			intersectX := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < intersectX {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}
