package point_tree

import (
	"github.com/ecopia-map/pointcloud_viewer/internal/data"
	"github.com/ecopia-map/pointcloud_viewer/internal/geometry"
	"github.com/ecopia-map/pointcloud_viewer/internal/render"
)

type nodeIndex int32

const noChild nodeIndex = -1

// Models a node of the tree, stored in the arena of its PointTree. A node is a leaf iff points
// is not nil, otherwise children holds the arena index of each non empty octant.
type pointNode struct {
	boundingBox *geometry.BoundingBox
	depth       int
	children    [8]nodeIndex
	points      []data.PointID

	// leaf only: compiled vertices and whether they are out of date
	batch render.Batch
	dirty bool

	// result of the last frustum test and the frame it was computed in
	visible     bool
	testedFrame uint64
}

func newLeafNode(boundingBox *geometry.BoundingBox, depth int) pointNode {
	return pointNode{
		boundingBox: boundingBox,
		depth:       depth,
		children:    [8]nodeIndex{noChild, noChild, noChild, noChild, noChild, noChild, noChild, noChild},
		points:      make([]data.PointID, 0),
	}
}

func (n *pointNode) IsLeaf() bool {
	return n.points != nil
}

func (n *pointNode) GetBoundingBox() *geometry.BoundingBox {
	return n.boundingBox
}

func (n *pointNode) GetPoints() []data.PointID {
	return n.points
}

func (n *pointNode) Depth() int {
	return n.depth
}

func (n *pointNode) releaseBatch() {
	if n.batch != nil {
		n.batch.Release()
		n.batch = nil
	}
}
