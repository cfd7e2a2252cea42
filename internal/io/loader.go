package io

import (
	"context"
	"math"
	"runtime"
	"sync"

	"github.com/golang/geo/r3"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/ecopia-map/pointcloud_viewer/internal/converters"
	"github.com/ecopia-map/pointcloud_viewer/internal/data"
)

// Contains the options of LoadDataset
type LoadOptions struct {
	Srid       int // EPSG code of the source coordinates
	TargetSrid int // EPSG code to reproject to before normalization, 0 keeps Srid
	Workers    int // Number of consumers, one per CPU when <= 0
	ChunkSize  int // Number of records per WorkUnit

	CoordinateConverter converters.CoordinateConverter
	ElevationCorrector  converters.ElevationCorrector
}

// Reads every record of the source with one producer and several consumers, then normalizes
// the result into the working space of a new Dataset. The source is not closed.
func LoadDataset(ctx context.Context, source PointSource, opts LoadOptions) (*data.Dataset, error) {
	header := source.Header()
	if header.NumberPoints == 0 {
		return nil, data.ErrEmptyDataset
	}
	if opts.CoordinateConverter == nil || opts.ElevationCorrector == nil {
		return nil, errors.New("coordinate converter and elevation corrector are required")
	}
	targetSrid := opts.TargetSrid
	if targetSrid == 0 {
		targetSrid = opts.Srid
	}

	// a consumer goroutine per CPU
	numConsumers := opts.Workers
	if numConsumers <= 0 {
		numConsumers = runtime.NumCPU()
	}

	records := make([]RawRecord, header.NumberPoints)

	// init channel where to submit work with a buffer 5 times greater than the number of consumer
	workChannel := make(chan *WorkUnit, numConsumers*5)

	// every goroutine sends at most one error
	errorChannel := make(chan error, numConsumers+1)

	var waitGroup sync.WaitGroup
	waitGroup.Add(1)
	producer := NewStandardProducer(ctx, source, opts.ChunkSize)
	go producer.Produce(workChannel, errorChannel, &waitGroup)

	consumers := make([]*StandardConsumer, numConsumers)
	for i := range consumers {
		waitGroup.Add(1)
		consumers[i] = NewStandardConsumer(opts.CoordinateConverter, opts.ElevationCorrector, opts.Srid, targetSrid, records)
		go consumers[i].Consume(workChannel, errorChannel, &waitGroup)
	}

	// wait for producer and consumers to finish
	waitGroup.Wait()
	close(errorChannel)

	var err error
	for e := range errorChannel {
		err = multierr.Append(err, e)
	}
	if err != nil {
		return nil, errors.Wrap(err, "errors raised while reading points")
	}

	min := r3.Vector{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max := r3.Vector{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, c := range consumers {
		cmin, cmax, ok := c.Bounds()
		if !ok {
			continue
		}
		min = r3.Vector{X: math.Min(min.X, cmin.X), Y: math.Min(min.Y, cmin.Y), Z: math.Min(min.Z, cmin.Z)}
		max = r3.Vector{X: math.Max(max.X, cmax.X), Y: math.Max(max.Y, cmax.Y), Z: math.Max(max.Z, cmax.Z)}
	}

	store := data.NewPointStore(len(records))
	dataset := data.NewDataset(store, min, max)
	dataset.Srid = targetSrid
	if header.MaxColorValue > 0 {
		dataset.MaxColorValue = header.MaxColorValue
	}
	if header.ScaleFactor.X > 0 && header.ScaleFactor.Y > 0 && header.ScaleFactor.Z > 0 {
		dataset.ScaleFactor = header.ScaleFactor
	}

	for _, r := range records {
		p := dataset.Normalize(r.Position())
		store.Append(data.NewPoint(p.X, p.Y, p.Z, r.R, r.G, r.B, r.Classification))
	}

	glog.Infof("loaded %d points, bounds %v - %v, scale %f", store.Len(), min, max, dataset.Scale)
	return dataset, nil
}

// Opens a LAS file, loads it and closes it
func LoadLasFile(ctx context.Context, path string, eightBitColors bool, opts LoadOptions) (dataset *data.Dataset, err error) {
	source, err := NewLasSource(path, opts.Srid, eightBitColors)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = multierr.Combine(err, source.Close())
	}()
	return LoadDataset(ctx, source, opts)
}
