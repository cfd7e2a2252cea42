package pkg

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecopia-map/pointcloud_viewer/internal/culling"
	"github.com/ecopia-map/pointcloud_viewer/internal/data"
	"github.com/ecopia-map/pointcloud_viewer/internal/geometry"
)

func TestFitCameraSeesWholeDataset(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"square", 200, 200},
		{"landscape", 1920, 1080},
		{"portrait", 600, 1200},
	}
	dataset := data.NewDataset(data.NewPointStore(0), r3.Vector{X: 100, Y: 200, Z: 10}, r3.Vector{X: 180, Y: 230, Z: 25})
	min, max := dataset.NormalizedBounds()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, camera := range []Camera{
				FitCamera(dataset, tt.width, tt.height),
				FitOrthoCamera(dataset, tt.width, tt.height),
			} {
				assert.Equal(t, [4]int{0, 0, tt.width, tt.height}, camera.Viewport)

				frustum, err := culling.ComputeFrustumPlanes(camera.Projection, camera.View)
				require.NoError(t, err)
				for _, corner := range []r3.Vector{
					min, max,
					{X: min.X, Y: max.Y, Z: min.Z},
					{X: max.X, Y: min.Y, Z: max.Z},
				} {
					assert.True(t, frustum.ContainsPoint(corner), "corner %v outside the view", corner)
				}
			}
		})
	}
}

func TestFitCameraSinglePoint(t *testing.T) {
	dataset := data.NewDataset(data.NewPointStore(0), r3.Vector{X: 1, Y: 1, Z: 1}, r3.Vector{X: 1, Y: 1, Z: 1})
	camera := FitCamera(dataset, 0, 0)

	frustum, err := culling.ComputeFrustumPlanes(camera.Projection, camera.View)
	require.NoError(t, err)
	assert.True(t, frustum.ContainsPoint(r3.Vector{}))
}

func TestFitOrthoCameraMapsPixelsLinearly(t *testing.T) {
	dataset := data.NewDataset(data.NewPointStore(0), r3.Vector{X: 0, Y: 0, Z: 5}, r3.Vector{X: 10, Y: 10, Z: 5})
	camera := FitOrthoCamera(dataset, 200, 200)
	min, max := dataset.NormalizedBounds()
	center := min.Add(max).Mul(0.5)
	halfSize := max.Sub(min).Norm() / 2

	p, ok := geometry.Unproject(r3.Vector{X: 100, Y: 100, Z: 0.5}, camera.View, camera.Projection, camera.Viewport)
	require.True(t, ok)
	assert.InDelta(t, center.X, p.X, 1e-9)
	assert.InDelta(t, center.Y, p.Y, 1e-9)

	// window Y grows downwards
	p, ok = geometry.Unproject(r3.Vector{X: 0, Y: 0, Z: 0.5}, camera.View, camera.Projection, camera.Viewport)
	require.True(t, ok)
	assert.InDelta(t, center.X-halfSize, p.X, 1e-9)
	assert.InDelta(t, center.Y+halfSize, p.Y, 1e-9)
}
