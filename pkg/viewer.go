package pkg

import (
	"context"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/ecopia-map/pointcloud_viewer/internal/colormap"
	"github.com/ecopia-map/pointcloud_viewer/internal/culling"
	"github.com/ecopia-map/pointcloud_viewer/internal/cutter"
	"github.com/ecopia-map/pointcloud_viewer/internal/data"
	"github.com/ecopia-map/pointcloud_viewer/internal/geometry"
	"github.com/ecopia-map/pointcloud_viewer/internal/io"
	"github.com/ecopia-map/pointcloud_viewer/internal/octree"
	"github.com/ecopia-map/pointcloud_viewer/internal/render"
	"github.com/ecopia-map/pointcloud_viewer/internal/viewer"
	"github.com/ecopia-map/pointcloud_viewer/pkg/algorithm_manager"
	"github.com/ecopia-map/pointcloud_viewer/tools"
)

// ErrNoDataset is returned by the operations that need a loaded point cloud
var ErrNoDataset = errors.New("no point cloud loaded")

// Everything an exporter needs to write the current point cloud
type Snapshot struct {
	Points  []data.Point
	Dataset *data.Dataset
}

// Viewer is a display session over a single point cloud. Like the tree it owns, it must be
// driven from one goroutine.
type Viewer struct {
	opts             *viewer.ViewerOptions
	algorithmManager algorithm_manager.AlgorithmManager
	compiler         render.BatchCompiler

	dataset *data.Dataset
	tree    octree.ITree

	// camera of the last rendered frame, used to unproject picks
	projection mgl64.Mat4
	view       mgl64.Mat4
	viewport   [4]int
	rendered   bool
}

func NewViewer(opts *viewer.ViewerOptions, algorithmManager algorithm_manager.AlgorithmManager, compiler render.BatchCompiler) *Viewer {
	if compiler == nil {
		compiler = render.NewMemoryCompiler()
	}
	return &Viewer{
		opts:             opts.Copy(),
		algorithmManager: algorithmManager,
		compiler:         compiler,
	}
}

// Loads the LAS file at path and indexes it, replacing any previous point cloud
func (v *Viewer) LoadFile(ctx context.Context, path string) error {
	tools.LogOutput("> reading data from las file...", filepath.Base(path))
	dataset, err := io.LoadLasFile(ctx, path, v.opts.EightBitColors, v.loadOptions())
	if err != nil {
		return errors.Wrapf(err, "cannot load %s", path)
	}
	return v.SetDataset(dataset)
}

// Loads every point of the source and indexes them. The source is not closed.
func (v *Viewer) Load(ctx context.Context, source io.PointSource) error {
	dataset, err := io.LoadDataset(ctx, source, v.loadOptions())
	if err != nil {
		return err
	}
	return v.SetDataset(dataset)
}

func (v *Viewer) loadOptions() io.LoadOptions {
	return io.LoadOptions{
		Srid:                v.opts.Srid,
		TargetSrid:          v.opts.TargetSrid,
		Workers:             v.opts.Workers,
		CoordinateConverter: v.algorithmManager.GetCoordinateConverterAlgorithm(),
		ElevationCorrector:  v.algorithmManager.GetElevationCorrectionAlgorithm(),
	}
}

// Indexes an already loaded dataset, disposing the previous tree
func (v *Viewer) SetDataset(dataset *data.Dataset) error {
	if dataset == nil {
		return ErrNoDataset
	}
	v.disposeTree()
	v.dataset = dataset
	return v.rebuild()
}

func (v *Viewer) rebuild() error {
	tools.LogOutput("> building data structure...")
	tree := v.algorithmManager.GetTreeAlgorithm(v.dataset, v.compiler)
	if err := tree.Build(); err != nil {
		tree.Dispose()
		return errors.Wrap(err, "cannot build octree")
	}
	v.tree = tree
	v.rendered = false

	stats := tree.Stats()
	glog.Infof("octree built: %d points, %d nodes, %d leaves, depth %d",
		stats.Points, stats.Nodes, stats.Leaves, stats.MaxDepth)
	return nil
}

func (v *Viewer) disposeTree() {
	if v.tree != nil {
		v.tree.Dispose()
		v.tree = nil
	}
	v.rendered = false
}

// Renders one frame seen through the given camera. viewport is x, y, width, height in pixels.
func (v *Viewer) Frame(surface render.Surface, projection, view mgl64.Mat4, viewport [4]int) (octree.RenderStats, error) {
	if v.tree == nil {
		return octree.RenderStats{}, ErrNoDataset
	}
	frustum, err := culling.ComputeFrustumPlanes(projection, view)
	if err != nil {
		return octree.RenderStats{}, err
	}
	stats := v.tree.Render(surface, v.opts.PointSize, v.opts.ShowOutlines, v.opts.ColorMode, frustum)

	v.projection, v.view, v.viewport = projection, view, viewport
	v.rendered = true
	return stats, nil
}

// Returns the visible point closest to the ray through the given window position of the last
// frame. ok is false when nothing could be picked.
func (v *Viewer) Pick(winX, winY float64) (*octree.ClosestPoint, bool) {
	if v.tree == nil || !v.rendered {
		return nil, false
	}
	near, far, ok := geometry.UnprojectRay(winX, winY, v.view, v.projection, v.viewport)
	if !ok {
		glog.V(1).Infof("cannot unproject window position %f,%f", winX, winY)
		return nil, false
	}
	closest := octree.NewClosestPoint()
	v.tree.FindClosestPoint(near, far, closest)
	if !closest.Found() {
		return nil, false
	}
	return closest, true
}

// Returns the real world distance between two points
func (v *Viewer) Measure(a, b data.PointID) (float64, error) {
	if v.dataset == nil {
		return 0, ErrNoDataset
	}
	store := v.dataset.Store
	for _, id := range []data.PointID{a, b} {
		if id < 0 || int(id) >= store.Len() {
			return 0, errors.Errorf("point id %d out of range [0,%d)", id, store.Len())
		}
	}
	return v.dataset.RealDistance(store.At(a), store.At(b)), nil
}

// Removes the points whose projection on the polygon plane falls inside the polygon. Vertices
// are in working space coordinates. A hard cut rebuilds the tree over the retained points, a
// soft cut only flags the removed points as inactive. Returns the number of removed points.
func (v *Viewer) Cut(ctx context.Context, polygon []r3.Vector, soft bool) (int, error) {
	if v.tree == nil {
		return 0, ErrNoDataset
	}
	points := v.dataset.Store.Points()
	mask, err := v.algorithmManager.GetCutterAlgorithm().ComputeMask(ctx, polygon, points)
	if err != nil {
		return 0, err
	}

	removed := 0
	if soft {
		for i := range points {
			if mask[i] && points[i].Active {
				v.dataset.Store.SetActive(data.PointID(i), false)
				removed++
			}
		}
		v.tree.UpdateColor(v.tree.ColorMode())
		glog.Infof("soft cut hid %d points", removed)
		return removed, nil
	}

	// inactive points do not survive a hard cut
	for i := range points {
		if !points[i].Active {
			mask[i] = true
		}
	}
	for i := range mask {
		if mask[i] {
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}
	retained := data.NewPointStoreFromSlice(cutter.Retain(points, mask))
	v.disposeTree()
	v.dataset.ReplaceStore(retained)
	if err := v.rebuild(); err != nil {
		return removed, err
	}
	glog.Infof("cut removed %d points, %d left", removed, retained.Len())
	return removed, nil
}

// Cuts with a polygon given in real coordinates
func (v *Viewer) CutReal(ctx context.Context, polygon []r3.Vector, soft bool) (int, error) {
	if v.dataset == nil {
		return 0, ErrNoDataset
	}
	normalized := make([]r3.Vector, len(polygon))
	for i, vertex := range polygon {
		normalized[i] = v.dataset.Normalize(vertex)
	}
	return v.Cut(ctx, normalized, soft)
}

// Cuts with a polygon drawn in window coordinates of the last frame. The vertices are unprojected
// at the given window depth, so the cut plane faces the camera.
func (v *Viewer) CutScreen(ctx context.Context, win []r2.Point, depth float64, soft bool) (int, error) {
	if v.tree == nil {
		return 0, ErrNoDataset
	}
	if !v.rendered {
		return 0, errors.New("screen cut needs a rendered frame")
	}
	polygon := make([]r3.Vector, len(win))
	for i, p := range win {
		vertex, ok := geometry.Unproject(r3.Vector{X: p.X, Y: p.Y, Z: depth}, v.view, v.projection, v.viewport)
		if !ok {
			return 0, errors.Errorf("cannot unproject window position %f,%f", p.X, p.Y)
		}
		polygon[i] = vertex
	}
	return v.Cut(ctx, polygon, soft)
}

// Switches the color ramp used to display the points
func (v *Viewer) Recolor(mode colormap.ColorMode) error {
	if mode.String() == "" {
		return errors.Errorf("unknown color mode %q", string(mode))
	}
	v.opts.ColorMode = mode
	if v.tree != nil {
		v.tree.UpdateColor(mode)
	}
	return nil
}

// Adds a point given in real coordinates to the loaded cloud
func (v *Viewer) Insert(coord r3.Vector, rgb [3]uint16, classification uint8) (data.PointID, error) {
	if v.tree == nil {
		return data.NoPoint, ErrNoDataset
	}
	p := v.dataset.Normalize(coord)
	id := v.tree.Insert(data.NewPoint(p.X, p.Y, p.Z, rgb[0], rgb[1], rgb[2], classification))
	if id == data.NoPoint {
		return id, errors.New("point rejected by the octree")
	}
	return id, nil
}

// Returns a copy of the active points together with the dataset metadata
func (v *Viewer) Snapshot() (*Snapshot, error) {
	if v.dataset == nil {
		return nil, ErrNoDataset
	}
	points := v.dataset.Store.Points()
	active := make([]data.Point, 0, len(points))
	for i := range points {
		if points[i].Active {
			active = append(active, points[i])
		}
	}
	return &Snapshot{Points: active, Dataset: v.dataset}, nil
}

func (v *Viewer) Dataset() *data.Dataset {
	return v.dataset
}

func (v *Viewer) Tree() octree.ITree {
	return v.tree
}

func (v *Viewer) Options() *viewer.ViewerOptions {
	return v.opts
}

// Releases the tree and the coordinate converter resources
func (v *Viewer) Close() {
	v.disposeTree()
	v.algorithmManager.GetCoordinateConverterAlgorithm().Cleanup()
}
