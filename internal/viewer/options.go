package viewer

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/ecopia-map/pointcloud_viewer/internal/colormap"
)

const (
	DefaultMaxNumPointsPerNode = 10000
	DefaultMaxDepth            = 21
	DefaultPointSize           = 1.0
)

// Contains the options needed to load, index and display a point cloud
type ViewerOptions struct {
	Input               string             // Input LAS file/folder
	FolderProcessing    bool               // Enables the processing of all LAS files in folder
	Recursive           bool               // Recursive lookup of LAS files in subfolders
	Srid                int                // EPSG code for SRID of input LAS points
	TargetSrid          int                // EPSG code to reproject points to before indexing, 0 to keep Srid
	EightBitColors      bool               // if true assume that LAS uses 8bit color depth
	ZOffset             float64            // Z Offset in meters to apply to points during loading
	MaxNumPointsPerNode int                // Maximum number of points per octree leaf
	MaxDepth            int                // Depth at which octree splitting stops
	MinNodeSize         float64            // Octree nodes smaller than this are not split, in working space units
	ColorMode           colormap.ColorMode // Color ramp used to display points
	PointSize           float64            // Size of the rendered points
	ShowOutlines        bool               // Draw the outline of every rendered leaf
	PruneSubtrees       bool               // Cull whole subtrees whose bounds are outside the frustum
	Workers             int                // Number of goroutines for loading and cutting, 0 for one per CPU

	Command     string
	PickOptions *PickOptions
	CutOptions  *CutOptions
}

// Screen position and viewport of a pick request
type PickOptions struct {
	X      float64
	Y      float64
	Width  int
	Height int

	// When set a second point is picked at MeasureX, MeasureY and the distance between the two reported
	Measure  bool
	MeasureX float64
	MeasureY float64
}

const DefaultCutDepth = 0.3

type CutOptions struct {
	Polygon []r2.Point // Polygon vertices in real X/Y coordinates, cut vertically
	Soft    bool       // Hide the points instead of rebuilding the index without them

	// When set Polygon holds window pixels of a Width x Height top-down view,
	// unprojected at Depth before cutting
	Screen bool
	Width  int
	Height int
	Depth  float64
}

func NewDefaultViewerOptions() *ViewerOptions {
	return &ViewerOptions{
		MaxNumPointsPerNode: DefaultMaxNumPointsPerNode,
		MaxDepth:            DefaultMaxDepth,
		ColorMode:           colormap.RGB,
		PointSize:           DefaultPointSize,
	}
}

// Checks the consistency of the options
func (opt *ViewerOptions) Validate() error {
	if opt.Input == "" {
		return errors.New("no input file or folder specified")
	}
	if opt.MaxNumPointsPerNode <= 0 {
		return errors.Errorf("max points per node must be positive, got %d", opt.MaxNumPointsPerNode)
	}
	if opt.MaxNumPointsPerNode > math.MaxInt32 {
		return errors.Errorf("max points per node cannot exceed %d, got %d", math.MaxInt32, opt.MaxNumPointsPerNode)
	}
	if opt.MaxDepth < 1 {
		return errors.Errorf("max depth must be at least 1, got %d", opt.MaxDepth)
	}
	if opt.MinNodeSize < 0 {
		return errors.Errorf("min node size cannot be negative, got %f", opt.MinNodeSize)
	}
	if opt.ColorMode.String() == "" {
		return errors.Errorf("unknown color mode %q", string(opt.ColorMode))
	}
	if opt.PointSize <= 0 {
		return errors.Errorf("point size must be positive, got %f", opt.PointSize)
	}
	if opt.Workers < 0 {
		return errors.Errorf("workers cannot be negative, got %d", opt.Workers)
	}
	if opt.PickOptions != nil && (opt.PickOptions.Width <= 0 || opt.PickOptions.Height <= 0) {
		return errors.New("pick viewport must have a positive size")
	}
	if opt.CutOptions != nil && len(opt.CutOptions.Polygon) < 3 {
		return errors.Errorf("cut polygon needs at least 3 vertices, got %d", len(opt.CutOptions.Polygon))
	}
	if opt.CutOptions != nil && opt.CutOptions.Screen {
		if opt.CutOptions.Width <= 0 || opt.CutOptions.Height <= 0 {
			return errors.New("cut viewport must have a positive size")
		}
		if opt.CutOptions.Depth < 0 || opt.CutOptions.Depth > 1 {
			return errors.Errorf("cut depth must be in [0, 1], got %f", opt.CutOptions.Depth)
		}
	}
	return nil
}

func (opt *ViewerOptions) Copy() *ViewerOptions {
	newOpt := *opt
	if opt.PickOptions != nil {
		pickOpt := *opt.PickOptions
		newOpt.PickOptions = &pickOpt
	}
	if opt.CutOptions != nil {
		cutOpt := *opt.CutOptions
		cutOpt.Polygon = append([]r2.Point(nil), opt.CutOptions.Polygon...)
		newOpt.CutOptions = &cutOpt
	}
	return &newOpt
}
