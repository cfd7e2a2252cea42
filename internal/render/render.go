package render

import (
	"github.com/golang/geo/r3"

	"github.com/ecopia-map/pointcloud_viewer/internal/data"
)

// Vertex as uploaded to the renderer: single precision position and half precision color
type Vertex struct {
	Position [3]float32
	Color    data.Color
}

func NewVertex(p data.Point) Vertex {
	return Vertex{
		Position: [3]float32{float32(p.Position.X), float32(p.Position.Y), float32(p.Position.Z)},
		Color:    p.Color,
	}
}

// Batch is a precompiled group of vertices owned by the renderer, such as a display list or a
// vertex buffer. Release frees the underlying resources and must be safe to call more than once.
type Batch interface {
	Len() int
	Release()
}

// BatchCompiler uploads vertices and returns the handle used to draw them
type BatchCompiler interface {
	Compile(vertices []Vertex) Batch
}

// Surface is the drawing target of a frame
type Surface interface {
	DrawBatch(batch Batch, pointSize float64)
	DrawLines(segments [][2]r3.Vector)
}
