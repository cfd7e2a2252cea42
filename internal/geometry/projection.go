package geometry

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// Maps a window coordinate back to world space, the way gluUnProject does. win.Z is the depth in
// [0,1] (0 near plane, 1 far plane) and viewport is x, y, width, height. Window Y grows downwards.
// ok is false when the combined transform is singular or the viewport is empty.
func Unproject(win r3.Vector, model, projection mgl64.Mat4, viewport [4]int) (r3.Vector, bool) {
	if viewport[2] == 0 || viewport[3] == 0 {
		return r3.Vector{}, false
	}
	inverse := projection.Mul4(model).Inv()

	x := (win.X - float64(viewport[0])) / float64(viewport[2])
	y := (float64(viewport[3]) - win.Y - float64(viewport[1])) / float64(viewport[3])

	in := mgl64.Vec4{x*2 - 1, y*2 - 1, win.Z*2 - 1, 1}
	out := inverse.Mul4x1(in)
	if out.W() == 0 {
		return r3.Vector{}, false
	}
	return r3.Vector{
		X: out.X() / out.W(),
		Y: out.Y() / out.W(),
		Z: out.Z() / out.W(),
	}, true
}

// Returns the near and far points of the pick ray through the given window position
func UnprojectRay(winX, winY float64, model, projection mgl64.Mat4, viewport [4]int) (near, far r3.Vector, ok bool) {
	near, ok = Unproject(r3.Vector{X: winX, Y: winY, Z: 0}, model, projection, viewport)
	if !ok {
		return
	}
	far, ok = Unproject(r3.Vector{X: winX, Y: winY, Z: 1}, model, projection, viewport)
	return
}

// Projects p orthogonally onto the plane through a, b and c. The three points must not be
// collinear, see ValidatePolygon.
func ProjectOntoPlane(p, a, b, c r3.Vector) r3.Vector {
	normal := b.Sub(a).Cross(c.Sub(a))
	t := a.Sub(p).Dot(normal) / normal.Dot(normal)
	return p.Add(normal.Mul(t))
}
