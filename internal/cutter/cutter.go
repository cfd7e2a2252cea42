package cutter

import (
	"context"
	"runtime"

	"github.com/golang/geo/r3"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/ecopia-map/pointcloud_viewer/internal/data"
	"github.com/ecopia-map/pointcloud_viewer/internal/geometry"
)

// how many points a worker processes between two cancellation checks
const cancelCheckInterval = 4096

// Cutter removes the points whose projection on the plane of a polygon falls inside it.
// The work is split in one contiguous index range per worker.
type Cutter struct {
	Workers int
}

// Instantiates a Cutter using the given number of workers, or one per CPU when workers <= 0
func New(workers int) *Cutter {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Cutter{Workers: workers}
}

// FilterByPolygon runs Cutter.FilterByPolygon with one worker per CPU
func FilterByPolygon(ctx context.Context, polygon []r3.Vector, points []data.Point) ([]data.Point, error) {
	return New(0).FilterByPolygon(ctx, polygon, points)
}

// ComputeMask runs Cutter.ComputeMask with one worker per CPU
func ComputeMask(ctx context.Context, polygon []r3.Vector, points []data.Point) ([]bool, error) {
	return New(0).ComputeMask(ctx, polygon, points)
}

// Returns the points lying outside the polygon, in input order
func (c *Cutter) FilterByPolygon(ctx context.Context, polygon []r3.Vector, points []data.Point) ([]data.Point, error) {
	mask, err := c.ComputeMask(ctx, polygon, points)
	if err != nil {
		return nil, err
	}
	retained := Retain(points, mask)
	glog.Infof("cut removed %d of %d points", len(points)-len(retained), len(points))
	return retained, nil
}

// Returns a mask flagging with true every point whose projection on the polygon plane falls
// inside the polygon. The first three vertices define the plane.
func (c *Cutter) ComputeMask(ctx context.Context, polygon []r3.Vector, points []data.Point) ([]bool, error) {
	if err := geometry.ValidatePolygon(polygon); err != nil {
		return nil, err
	}
	a, b, cc := polygon[0], polygon[1], polygon[2]
	basis, err := geometry.NewPlaneBasis(a, b, cc)
	if err != nil {
		return nil, err
	}
	outline := basis.PolygonTo2D(polygon)

	mask := make([]bool, len(points))
	group, ctx := errgroup.WithContext(ctx)
	for _, r := range ranges(len(points), c.Workers) {
		from, to := r[0], r[1]
		group.Go(func() error {
			for i := from; i < to; i++ {
				if (i-from)%cancelCheckInterval == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				projected := geometry.ProjectOntoPlane(points[i].Position, a, b, cc)
				mask[i] = geometry.PointInPolygon2D(outline, basis.To2D(projected))
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, errors.Wrap(err, "error while computing the cut mask")
	}
	return mask, nil
}

// Returns the points whose mask entry is false, preserving their order
func Retain(points []data.Point, mask []bool) []data.Point {
	retained := make([]data.Point, 0, len(points))
	for i := range points {
		if !mask[i] {
			retained = append(retained, points[i])
		}
	}
	return retained
}

// Splits [0,n) into at most workers contiguous ranges of similar size
func ranges(n, workers int) [][2]int {
	if n == 0 {
		return nil
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	size := (n + workers - 1) / workers
	out := make([][2]int, 0, workers)
	for from := 0; from < n; from += size {
		to := from + size
		if to > n {
			to = n
		}
		out = append(out, [2]int{from, to})
	}
	return out
}
