package point_tree

import (
	"github.com/golang/geo/r3"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/ecopia-map/pointcloud_viewer/internal/colormap"
	"github.com/ecopia-map/pointcloud_viewer/internal/culling"
	"github.com/ecopia-map/pointcloud_viewer/internal/data"
	"github.com/ecopia-map/pointcloud_viewer/internal/geometry"
	"github.com/ecopia-map/pointcloud_viewer/internal/octree"
	"github.com/ecopia-map/pointcloud_viewer/internal/render"
)

const (
	DefaultCapacity = 10000
	DefaultMaxDepth = 21
)

// Contains the tuning parameters of a PointTree. Zero values select the defaults.
type Config struct {
	Capacity    int     // Max number of points per leaf before it gets split
	MaxDepth    int     // Depth at which splitting stops even if a leaf is over capacity
	MinNodeSize float64 // Edge length below which splitting stops even if a leaf is over capacity

	// When true an internal node outside the frustum hides its whole subtree, otherwise only
	// leaves are culled
	PruneSubtrees bool

	ColorMode colormap.ColorMode
	Mapper    *colormap.ColorMapper
	Compiler  render.BatchCompiler
}

// Represents an octree over the points of a PointStore. Nodes live in an arena and refer to
// their children by index. The tree is not safe for concurrent use: rendering, picking and
// mutations are expected to happen on the goroutine that owns the graphics context.
type PointTree struct {
	nodes []pointNode
	root  nodeIndex
	store *data.PointStore

	minBound r3.Vector
	maxBound r3.Vector

	capacity      int
	maxDepth      int
	minNodeSize   float64
	pruneSubtrees bool

	mapper   *colormap.ColorMapper
	mode     colormap.ColorMode
	compiler render.BatchCompiler

	frame        uint64
	built        bool
	count        int
	cappedLeaves int
}

var _ octree.ITree = (*PointTree)(nil)

// Builds an empty PointTree over the given store. The bounds seed the root node.
func New(store *data.PointStore, minBound, maxBound r3.Vector, cfg Config) *PointTree {
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.ColorMode == "" {
		cfg.ColorMode = colormap.RGB
	}
	if cfg.Mapper == nil {
		cfg.Mapper = colormap.New(minBound.Z, maxBound.Z, 65535)
	}
	if cfg.Compiler == nil {
		cfg.Compiler = render.NewMemoryCompiler()
	}
	return &PointTree{
		root:          noChild,
		store:         store,
		minBound:      minBound,
		maxBound:      maxBound,
		capacity:      cfg.Capacity,
		maxDepth:      cfg.MaxDepth,
		minNodeSize:   cfg.MinNodeSize,
		pruneSubtrees: cfg.PruneSubtrees,
		mapper:        cfg.Mapper,
		mode:          cfg.ColorMode,
		compiler:      cfg.Compiler,
	}
}

// Builds the hierarchical tree structure over every point of the store. An empty store leaves
// the tree unbuilt.
func (tree *PointTree) Build() error {
	if tree.built {
		return errors.New("octree already built")
	}

	n := tree.store.Len()
	if n == 0 {
		glog.V(1).Infoln("no points to index, octree left empty")
		return nil
	}

	rootBox := geometry.NewBoundingBox(tree.minBound, tree.maxBound)
	ids := make([]data.PointID, n)
	outside := 0
	for i := range ids {
		ids[i] = data.PointID(i)
		if !rootBox.Contains(tree.store.Ref(ids[i]).Position) {
			outside++
		}
	}
	if outside > 0 {
		glog.Warningf("%d points lie outside the octree bounds %v - %v", outside, tree.minBound, tree.maxBound)
	}

	tree.nodes = make([]pointNode, 0, 2*n/tree.capacity+1)
	tree.root = tree.appendNode(newLeafNode(rootBox, 0))
	tree.cappedLeaves = 0
	tree.fill(tree.root, ids)
	tree.count = n
	tree.built = true

	if tree.cappedLeaves > 0 {
		glog.Warningf("%d leaves exceed the capacity of %d points after reaching the depth or size limit", tree.cappedLeaves, tree.capacity)
	}
	glog.Infof("octree built: %d points, %d nodes", n, len(tree.nodes))
	return nil
}

func (tree *PointTree) IsBuilt() bool {
	return tree.built
}

// Appends the point to the store and routes it to its leaf. A full leaf is split and its points
// redistributed before the new point is added. Inserting into an empty tree creates the root
// from the bounds given to New.
func (tree *PointTree) Insert(point data.Point) data.PointID {
	if tree.store == nil {
		return data.NoPoint
	}
	id := tree.store.Append(point)

	if tree.root == noChild {
		tree.root = tree.appendNode(newLeafNode(geometry.NewBoundingBox(tree.minBound, tree.maxBound), 0))
		tree.built = true
	}
	if !tree.nodes[tree.root].boundingBox.Contains(point.Position) {
		glog.Warningf("inserted point %v lies outside the octree bounds", point.Position)
	}

	idx := tree.root
	for !tree.nodes[idx].IsLeaf() {
		node := &tree.nodes[idx]
		code := node.boundingBox.OctantOf(point.Position)
		child := node.children[code]
		if child == noChild {
			child = tree.appendNode(newLeafNode(node.boundingBox.Octant(code), node.depth+1))
			tree.nodes[idx].children[code] = child
		}
		idx = child
	}

	leaf := &tree.nodes[idx]
	if len(leaf.points) >= tree.capacity && tree.canSplit(leaf) {
		tree.fill(idx, append(leaf.points, id))
	} else {
		leaf.points = append(leaf.points, id)
		leaf.dirty = true
	}
	tree.count++
	return id
}

// Draws the leaves intersecting the frustum. Visibility of every visited node is cached for the
// FindClosestPoint calls of the same frame.
func (tree *PointTree) Render(
	surface render.Surface,
	pointSize float64,
	showOutlines bool,
	mode colormap.ColorMode,
	frustum culling.Frustum,
) octree.RenderStats {
	var stats octree.RenderStats
	if tree.root == noChild {
		return stats
	}
	if mode != "" && mode != tree.mode {
		tree.UpdateColor(mode)
	}

	tree.frame++
	tree.renderNode(tree.root, surface, pointSize, showOutlines, &frustum, &stats)

	glog.V(2).Infof("frame %d: tested %d nodes, drew %d leaves (%d points), culled %d leaves",
		tree.frame, stats.NodesTested, stats.LeavesDrawn, stats.PointsDrawn, stats.LeavesCulled)
	return stats
}

func (tree *PointTree) renderNode(
	idx nodeIndex,
	surface render.Surface,
	pointSize float64,
	showOutlines bool,
	frustum *culling.Frustum,
	stats *octree.RenderStats,
) {
	node := &tree.nodes[idx]
	node.visible = culling.VoxelWithinFrustum(*frustum, node.boundingBox.Min, node.boundingBox.Max)
	node.testedFrame = tree.frame
	stats.NodesTested++

	if node.IsLeaf() {
		if !node.visible {
			stats.LeavesCulled++
			return
		}
		if node.dirty || node.batch == nil {
			tree.compileLeaf(node)
		}
		if node.batch.Len() > 0 {
			surface.DrawBatch(node.batch, pointSize)
			stats.PointsDrawn += node.batch.Len()
		}
		stats.LeavesDrawn++
		if showOutlines {
			edges := node.boundingBox.Edges()
			surface.DrawLines(edges[:])
			stats.Segments += len(edges)
		}
		return
	}

	if !node.visible && tree.pruneSubtrees {
		return
	}
	for _, child := range node.children {
		if child != noChild {
			tree.renderNode(child, surface, pointSize, showOutlines, frustum, stats)
		}
	}
}

// Updates closest with the active point nearest to the line through rayNear and rayFar. Only
// leaves found visible by the latest Render are searched, so a Render must precede each call.
func (tree *PointTree) FindClosestPoint(rayNear, rayFar r3.Vector, closest *octree.ClosestPoint) {
	if tree.root == noChild || tree.frame == 0 || closest == nil {
		return
	}
	if rayNear == rayFar {
		glog.V(1).Infoln("zero length pick ray, skipping")
		return
	}
	tree.findClosest(tree.root, rayNear, rayFar, closest)
}

func (tree *PointTree) findClosest(idx nodeIndex, rayNear, rayFar r3.Vector, closest *octree.ClosestPoint) {
	node := &tree.nodes[idx]
	if !node.IsLeaf() {
		for _, child := range node.children {
			if child != noChild {
				tree.findClosest(child, rayNear, rayFar, closest)
			}
		}
		return
	}

	if node.testedFrame != tree.frame || !node.visible {
		return
	}
	for _, id := range node.points {
		p := tree.store.Ref(id)
		if !p.Active {
			continue
		}
		distance := geometry.DistanceToLine(p.Position, rayNear, rayFar)
		if distance < closest.Distance {
			closest.ID = id
			closest.Point = *p
			closest.Distance = distance
		}
	}
}

// Recompiles every leaf with the colors of the given mode and stores them back into the points
func (tree *PointTree) UpdateColor(mode colormap.ColorMode) {
	tree.mode = mode
	leaves := 0
	for i := range tree.nodes {
		if tree.nodes[i].IsLeaf() {
			tree.compileLeaf(&tree.nodes[i])
			leaves++
		}
	}
	glog.V(1).Infof("recolored %d leaves using %s", leaves, mode)
}

func (tree *PointTree) ColorMode() colormap.ColorMode {
	return tree.mode
}

// Calls fn for every leaf in depth first order until fn returns false
func (tree *PointTree) Leaves(fn func(node octree.INode) bool) {
	if tree.root == noChild {
		return
	}
	tree.visitLeaves(tree.root, fn)
}

func (tree *PointTree) visitLeaves(idx nodeIndex, fn func(node octree.INode) bool) bool {
	node := &tree.nodes[idx]
	if node.IsLeaf() {
		return fn(node)
	}
	for _, child := range node.children {
		if child != noChild && !tree.visitLeaves(child, fn) {
			return false
		}
	}
	return true
}

func (tree *PointTree) Stats() octree.Stats {
	stats := octree.Stats{Nodes: len(tree.nodes)}
	for i := range tree.nodes {
		node := &tree.nodes[i]
		if node.IsLeaf() {
			stats.Leaves++
			stats.Points += len(node.points)
		}
		if node.depth > stats.MaxDepth {
			stats.MaxDepth = node.depth
		}
	}
	return stats
}

// Returns the number of indexed points
func (tree *PointTree) Len() int {
	return tree.count
}

// Releases every render batch and detaches the tree from its store. Safe to call more than once.
func (tree *PointTree) Dispose() {
	for i := range tree.nodes {
		tree.nodes[i].releaseBatch()
	}
	tree.nodes = nil
	tree.root = noChild
	tree.store = nil
	tree.built = false
	tree.count = 0
}

func (tree *PointTree) appendNode(node pointNode) nodeIndex {
	tree.nodes = append(tree.nodes, node)
	return nodeIndex(len(tree.nodes) - 1)
}

func (tree *PointTree) canSplit(node *pointNode) bool {
	if node.depth >= tree.maxDepth {
		return false
	}
	return tree.minNodeSize <= 0 || node.boundingBox.MaxEdge() > tree.minNodeSize
}

// Stores ids in the node if they fit, otherwise turns the node into an internal node and
// recursively distributes ids among its octants. Only octants receiving points get a child.
func (tree *PointTree) fill(idx nodeIndex, ids []data.PointID) {
	node := &tree.nodes[idx]
	if len(ids) <= tree.capacity || !tree.canSplit(node) {
		if len(ids) > tree.capacity {
			tree.cappedLeaves++
		}
		node.points = ids
		tree.compileLeaf(node)
		return
	}

	box := node.boundingBox
	depth := node.depth
	node.releaseBatch()
	node.points = nil
	node.dirty = false

	var buckets [8][]data.PointID
	for _, id := range ids {
		code := box.OctantOf(tree.store.Ref(id).Position)
		buckets[code] = append(buckets[code], id)
	}
	for code, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		// appending may move the arena, node must not be used past this point
		child := tree.appendNode(newLeafNode(box.Octant(uint8(code)), depth+1))
		tree.nodes[idx].children[code] = child
		tree.fill(child, bucket)
	}
}

// Regenerates the render batch of a leaf from the current color mode. Soft deleted points keep
// their slot in the leaf but are left out of the batch.
func (tree *PointTree) compileLeaf(node *pointNode) {
	node.releaseBatch()
	vertices := make([]render.Vertex, 0, len(node.points))
	for _, id := range node.points {
		p := tree.store.Ref(id)
		p.Color = tree.mapper.MapColor(tree.mode, *p)
		if p.Active {
			vertices = append(vertices, render.NewVertex(*p))
		}
	}
	node.batch = tree.compiler.Compile(vertices)
	node.dirty = false
}
