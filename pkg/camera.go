package pkg

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"github.com/ecopia-map/pointcloud_viewer/internal/data"
	"github.com/ecopia-map/pointcloud_viewer/tools"
)

const cameraFovY = 45.0

// Camera matrices handed to Viewer.Frame
type Camera struct {
	Projection mgl64.Mat4
	View       mgl64.Mat4
	Viewport   [4]int
}

func boundingSphere(dataset *data.Dataset) (center r3.Vector, radius float64) {
	min, max := dataset.NormalizedBounds()
	center = min.Add(max).Mul(0.5)
	radius = max.Sub(min).Norm() / 2
	if tools.IsFloatEqual(radius, 0) {
		radius = 1
	}
	return center, radius
}

func viewportAspect(width, height int) float64 {
	if width > 0 && height > 0 {
		return float64(width) / float64(height)
	}
	return 1
}

func lookDown(eye, center r3.Vector) mgl64.Mat4 {
	return mgl64.LookAtV(
		mgl64.Vec3{eye.X, eye.Y, eye.Z},
		mgl64.Vec3{center.X, center.Y, center.Z},
		mgl64.Vec3{0, 1, 0},
	)
}

// Returns a perspective camera looking down the Z axis at the whole dataset
func FitCamera(dataset *data.Dataset, width, height int) Camera {
	center, radius := boundingSphere(dataset)
	aspect := viewportAspect(width, height)
	// the narrower of the two field of views has to contain the bounding sphere
	halfFov := mgl64.DegToRad(cameraFovY) / 2
	if aspect < 1 {
		halfFov = math.Atan(aspect * math.Tan(halfFov))
	}
	distance := radius / math.Sin(halfFov)

	eye := center.Add(r3.Vector{Z: distance})
	return Camera{
		Projection: mgl64.Perspective(mgl64.DegToRad(cameraFovY), aspect, distance*0.01, distance+2*radius),
		View:       lookDown(eye, center),
		Viewport:   [4]int{0, 0, width, height},
	}
}

// Returns an orthographic camera looking down the Z axis at the whole dataset. Window pixels map
// linearly to working space X/Y, which suits polygons drawn for screen cuts.
func FitOrthoCamera(dataset *data.Dataset, width, height int) Camera {
	center, radius := boundingSphere(dataset)
	aspect := viewportAspect(width, height)
	halfWidth, halfHeight := radius, radius
	if aspect >= 1 {
		halfWidth = radius * aspect
	} else {
		halfHeight = radius / aspect
	}

	eye := center.Add(r3.Vector{Z: 2 * radius})
	return Camera{
		Projection: mgl64.Ortho(-halfWidth, halfWidth, -halfHeight, halfHeight, radius*0.01, 4*radius),
		View:       lookDown(eye, center),
		Viewport:   [4]int{0, 0, width, height},
	}
}
