package octree

import (
	"github.com/golang/geo/r3"

	"github.com/ecopia-map/pointcloud_viewer/internal/colormap"
	"github.com/ecopia-map/pointcloud_viewer/internal/culling"
	"github.com/ecopia-map/pointcloud_viewer/internal/data"
	"github.com/ecopia-map/pointcloud_viewer/internal/geometry"
	"github.com/ecopia-map/pointcloud_viewer/internal/render"
)

// Initial distance of a ClosestPoint, larger than any distance in the normalized working space
const ClosestPointSentinel = 10000.0

type ITree interface {
	Build() error
	IsBuilt() bool
	// Adds a Point to the backing store and indexes it, returning its id
	Insert(point data.Point) data.PointID
	Render(surface render.Surface, pointSize float64, showOutlines bool, mode colormap.ColorMode, frustum culling.Frustum) RenderStats
	FindClosestPoint(rayNear, rayFar r3.Vector, closest *ClosestPoint)
	UpdateColor(mode colormap.ColorMode)
	ColorMode() colormap.ColorMode
	Leaves(fn func(node INode) bool)
	Stats() Stats
	Len() int
	Dispose()
}

type INode interface {
	IsLeaf() bool
	GetBoundingBox() *geometry.BoundingBox
	GetPoints() []data.PointID
	Depth() int
}

// Result of a pick. ID is data.NoPoint and Distance the sentinel until a point is found.
type ClosestPoint struct {
	ID       data.PointID
	Point    data.Point
	Distance float64
}

func NewClosestPoint() *ClosestPoint {
	return &ClosestPoint{ID: data.NoPoint, Distance: ClosestPointSentinel}
}

func (c *ClosestPoint) Found() bool {
	return c.ID != data.NoPoint
}

// Counters collected while rendering a frame
type RenderStats struct {
	NodesTested  int
	LeavesDrawn  int
	LeavesCulled int
	PointsDrawn  int
	Segments     int
}

type Stats struct {
	Nodes    int
	Leaves   int
	MaxDepth int
	Points   int
}
