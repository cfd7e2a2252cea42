package io

import (
	"math"
	"sync"

	"github.com/golang/geo/r3"
	"github.com/golang/glog"

	"github.com/ecopia-map/pointcloud_viewer/internal/converters"
)

// Applies elevation correction and reprojection to the records of each WorkUnit and stores the
// result at the same index of a shared output slice. Consumers never write overlapping slots.
type StandardConsumer struct {
	coordinateConverter converters.CoordinateConverter
	elevationCorrector  converters.ElevationCorrector
	sourceSrid          int
	targetSrid          int
	output              []RawRecord

	min r3.Vector
	max r3.Vector
}

func NewStandardConsumer(
	coordinateConverter converters.CoordinateConverter,
	elevationCorrector converters.ElevationCorrector,
	sourceSrid int,
	targetSrid int,
	output []RawRecord,
) *StandardConsumer {
	return &StandardConsumer{
		coordinateConverter: coordinateConverter,
		elevationCorrector:  elevationCorrector,
		sourceSrid:          sourceSrid,
		targetSrid:          targetSrid,
		output:              output,
		min:                 r3.Vector{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		max:                 r3.Vector{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
}

// Continually consumes WorkUnits submitted to a work channel until the channel is closed or an
// error is raised. In this last case submits the error to an error channel before quitting.
func (c *StandardConsumer) Consume(workchan chan *WorkUnit, errchan chan error, waitGroup *sync.WaitGroup) {
	defer waitGroup.Done()
	for work := range workchan {
		if err := c.doWork(work); err != nil {
			glog.Errorf("consumer failed on chunk at offset %d: %v", work.Offset, err)
			errchan <- err
			// drain so the producer is never blocked
			for range workchan {
			}
			return
		}
	}
}

func (c *StandardConsumer) doWork(work *WorkUnit) error {
	coords := make([]r3.Vector, len(work.Records))
	for i, record := range work.Records {
		z := c.elevationCorrector.CorrectElevation(record.X, record.Y, record.Z)
		coords[i] = r3.Vector{X: record.X, Y: record.Y, Z: z}
	}

	if err := c.coordinateConverter.ConvertCoordinatesSrid(c.sourceSrid, c.targetSrid, coords); err != nil {
		return err
	}

	for i, record := range work.Records {
		record.X, record.Y, record.Z = coords[i].X, coords[i].Y, coords[i].Z
		c.output[work.Offset+i] = record
		c.extend(coords[i])
	}
	return nil
}

func (c *StandardConsumer) extend(p r3.Vector) {
	c.min.X, c.max.X = math.Min(c.min.X, p.X), math.Max(c.max.X, p.X)
	c.min.Y, c.max.Y = math.Min(c.min.Y, p.Y), math.Max(c.max.Y, p.Y)
	c.min.Z, c.max.Z = math.Min(c.min.Z, p.Z), math.Max(c.max.Z, p.Z)
}

// Returns the bounds of the records processed so far. ok is false if none was processed.
func (c *StandardConsumer) Bounds() (min, max r3.Vector, ok bool) {
	if c.min.X > c.max.X {
		return r3.Vector{}, r3.Vector{}, false
	}
	return c.min, c.max, true
}
