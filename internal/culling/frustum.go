package culling

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/ecopia-map/pointcloud_viewer/internal/geometry"
)

// ErrDegenerateFrustum is returned when a clip matrix yields a plane without a usable normal
var ErrDegenerateFrustum = errors.New("degenerate frustum plane")

const (
	Right = iota
	Left
	Bottom
	Top
	Far
	Near
)

var planeNames = [6]string{"right", "left", "bottom", "top", "far", "near"}

// Frustum holds the six normalized clipping planes, ordered right, left, bottom, top, far, near.
// Normals point inwards.
type Frustum [6]geometry.Plane

// Extracts the frustum planes from the combined clip matrix projection*view
func ComputeFrustumPlanes(projection, view mgl64.Mat4) (Frustum, error) {
	clip := projection.Mul4(view)
	r0, r1, r2, r3 := clip.Row(0), clip.Row(1), clip.Row(2), clip.Row(3)

	raw := [6]mgl64.Vec4{
		r3.Sub(r0),
		r3.Add(r0),
		r3.Add(r1),
		r3.Sub(r1),
		r3.Sub(r2),
		r3.Add(r2),
	}

	var f Frustum
	for i, v := range raw {
		p, err := geometry.NewPlane(v[0], v[1], v[2], v[3]).Normalize()
		if err != nil {
			return Frustum{}, errors.Wrapf(ErrDegenerateFrustum, "%s plane", planeNames[i])
		}
		f[i] = p
	}
	return f, nil
}

// Reports whether the box may intersect the frustum. A box is rejected only when all of its
// corners lie on the outer side of (or on) a single plane, so boxes near the frustum corners can
// be reported visible while actually being outside.
func VoxelWithinFrustum(f Frustum, boxMin, boxMax r3.Vector) bool {
	corners := geometry.NewBoundingBox(boxMin, boxMax).Corners()
	for _, p := range f {
		outside := true
		for _, c := range corners {
			if p.SignedDistance(c) > 0 {
				outside = false
				break
			}
		}
		if outside {
			return false
		}
	}
	return true
}

func (f Frustum) ContainsPoint(point r3.Vector) bool {
	for _, p := range f {
		if p.SignedDistance(point) <= 0 {
			return false
		}
	}
	return true
}
