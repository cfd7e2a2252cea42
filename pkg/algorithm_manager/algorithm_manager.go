package algorithm_manager

import (
	"github.com/ecopia-map/pointcloud_viewer/internal/converters"
	"github.com/ecopia-map/pointcloud_viewer/internal/cutter"
	"github.com/ecopia-map/pointcloud_viewer/internal/data"
	"github.com/ecopia-map/pointcloud_viewer/internal/octree"
	"github.com/ecopia-map/pointcloud_viewer/internal/render"
)

type AlgorithmManager interface {
	GetElevationCorrectionAlgorithm() converters.ElevationCorrector
	GetCoordinateConverterAlgorithm() converters.CoordinateConverter
	// Returns an unbuilt tree over the points of the dataset
	GetTreeAlgorithm(dataset *data.Dataset, compiler render.BatchCompiler) octree.ITree
	GetCutterAlgorithm() *cutter.Cutter
}
