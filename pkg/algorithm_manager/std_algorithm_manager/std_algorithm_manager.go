package std_algorithm_manager

import (
	"github.com/ecopia-map/pointcloud_viewer/internal/colormap"
	"github.com/ecopia-map/pointcloud_viewer/internal/converters"
	"github.com/ecopia-map/pointcloud_viewer/internal/converters/elevation/offset_elevation_corrector"
	"github.com/ecopia-map/pointcloud_viewer/internal/converters/identity_coordinate_converter"
	"github.com/ecopia-map/pointcloud_viewer/internal/converters/proj4_coordinate_converter"
	"github.com/ecopia-map/pointcloud_viewer/internal/cutter"
	"github.com/ecopia-map/pointcloud_viewer/internal/data"
	"github.com/ecopia-map/pointcloud_viewer/internal/octree"
	"github.com/ecopia-map/pointcloud_viewer/internal/octree/point_tree"
	"github.com/ecopia-map/pointcloud_viewer/internal/render"
	"github.com/ecopia-map/pointcloud_viewer/internal/viewer"
	"github.com/ecopia-map/pointcloud_viewer/pkg/algorithm_manager"
)

type StandardAlgorithmManager struct {
	options             *viewer.ViewerOptions
	coordinateConverter converters.CoordinateConverter
	elevationCorrector  converters.ElevationCorrector
}

func NewAlgorithmManager(opts *viewer.ViewerOptions) algorithm_manager.AlgorithmManager {
	var converter converters.CoordinateConverter
	if opts.TargetSrid != 0 && opts.TargetSrid != opts.Srid {
		converter = proj4_coordinate_converter.NewProj4CoordinateConverter()
	} else {
		converter = identity_coordinate_converter.NewIdentityCoordinateConverter()
	}

	return &StandardAlgorithmManager{
		options:             opts,
		coordinateConverter: converter,
		elevationCorrector:  offset_elevation_corrector.NewOffsetElevationCorrector(opts.ZOffset),
	}
}

func (m *StandardAlgorithmManager) GetElevationCorrectionAlgorithm() converters.ElevationCorrector {
	return m.elevationCorrector
}

func (m *StandardAlgorithmManager) GetCoordinateConverterAlgorithm() converters.CoordinateConverter {
	return m.coordinateConverter
}

func (m *StandardAlgorithmManager) GetTreeAlgorithm(dataset *data.Dataset, compiler render.BatchCompiler) octree.ITree {
	return NewTree(m.options, dataset, compiler)
}

func (m *StandardAlgorithmManager) GetCutterAlgorithm() *cutter.Cutter {
	return cutter.New(m.options.Workers)
}

// Builds the point tree configured by the options. The color ramps span the normalized
// elevation range of the dataset.
func NewTree(opts *viewer.ViewerOptions, dataset *data.Dataset, compiler render.BatchCompiler) octree.ITree {
	min, max := dataset.NormalizedBounds()
	return point_tree.New(dataset.Store, min, max, point_tree.Config{
		Capacity:      opts.MaxNumPointsPerNode,
		MaxDepth:      opts.MaxDepth,
		MinNodeSize:   opts.MinNodeSize,
		PruneSubtrees: opts.PruneSubtrees,
		ColorMode:     opts.ColorMode,
		Mapper:        colormap.New(min.Z, max.Z, dataset.MaxColorValue),
		Compiler:      compiler,
	})
}
