package tools

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/ecopia-map/pointcloud_viewer/internal/colormap"
	"github.com/ecopia-map/pointcloud_viewer/internal/viewer"
)

const (
	CommandInfo = "info"
	CommandPick = "pick"
	CommandCut  = "cut"
)

type ViewerFlags struct {
	Input                     *string `json:"input"`
	Srid                      *int    `json:"srid"`
	TargetSrid                *int    `json:"target_srid"`
	EightBitColors            *bool
	ZOffset                   *float64
	MaxNumPoints              *int `json:"max_num_points"`
	MaxDepth                  *int `json:"max_depth"`
	MinNodeSize               *float64
	FolderProcessing          *bool
	RecursiveFolderProcessing *bool
	ColorMode                 *string `json:"color_mode"`
	PointSize                 *float64
	ShowOutlines              *bool
	PruneSubtrees             *bool
	Workers                   *int
	Silent                    *bool
	LogTimestamp              *bool
}

type PickFlags struct {
	X         *float64
	Y         *float64
	Width     *int
	Height    *int
	MeasureTo *[]float64
}

type CutFlags struct {
	Polygon *[]float64
	Soft    *bool
	Screen  *bool
	Width   *int
	Height  *int
	Depth   *float64
}

// Registers the flags shared by every command on the given set
func DefineViewerFlags(flags *pflag.FlagSet) *ViewerFlags {
	return &ViewerFlags{
		Input:                     flags.StringP("input", "i", "", "Specifies the input las file/folder."),
		Srid:                      flags.IntP("srid", "e", 4326, "EPSG srid code of input points."),
		TargetSrid:                flags.Int("target-srid", 0, "EPSG srid code to reproject points to before indexing. 0 keeps the input srid."),
		EightBitColors:            flags.BoolP("8bit", "b", false, "Assumes the input LAS has colors encoded in eight bit format. Default is false (LAS has 16 bit color depth)"),
		ZOffset:                   flags.Float64P("zoffset", "z", 0, "Vertical offset to apply to points, in meters."),
		MaxNumPoints:              flags.IntP("points-max-num", "m", viewer.DefaultMaxNumPointsPerNode, "Maximum number of points per octree leaf."),
		MaxDepth:                  flags.IntP("depth-max", "d", viewer.DefaultMaxDepth, "Depth at which the octree stops splitting leaves."),
		MinNodeSize:               flags.Float64P("node-min-size", "n", 0, "Octree nodes with an edge smaller than this are not split. Normalized units, the cloud spans 1."),
		FolderProcessing:          flags.BoolP("folder", "f", false, "Enables processing of all las files from input folder. Input must be a folder if specified"),
		RecursiveFolderProcessing: flags.BoolP("recursive", "r", false, "Enables recursive lookup for all .las files inside the subfolders"),
		ColorMode:                 flags.StringP("color-mode", "c", string(colormap.RGB), "Color ramp used to display points, can be 'RGB', 'RAINBOW', 'WARM' or 'COLD'."),
		PointSize:                 flags.Float64P("point-size", "p", viewer.DefaultPointSize, "Size of the rendered points."),
		ShowOutlines:              flags.BoolP("outlines", "o", false, "Draws the bounding box of every rendered leaf."),
		PruneSubtrees:             flags.Bool("prune", false, "Culls whole subtrees whose bounds are outside the view instead of testing every leaf."),
		Workers:                   flags.IntP("workers", "w", 0, "Number of goroutines used to load and cut points. 0 uses one per CPU."),
		Silent:                    flags.BoolP("silent", "s", false, "Use to suppress all the non-error messages."),
		LogTimestamp:              flags.BoolP("timestamp", "t", false, "Adds timestamp to log messages."),
	}
}

func DefinePickFlags(flags *pflag.FlagSet) *PickFlags {
	return &PickFlags{
		X:         flags.Float64("screen-x", 960, "Window X coordinate of the pick, in pixels from the left."),
		Y:         flags.Float64("screen-y", 540, "Window Y coordinate of the pick, in pixels from the top."),
		Width:     flags.Int("width", 1920, "Width of the viewport, in pixels."),
		Height:    flags.Int("height", 1080, "Height of the viewport, in pixels."),
		MeasureTo: flags.Float64Slice("measure-to", nil, "Window x,y coordinates of a second pick. The distance between the two picked points is reported."),
	}
}

func DefineCutFlags(flags *pflag.FlagSet) *CutFlags {
	return &CutFlags{
		Polygon: flags.Float64SliceP("polygon", "g", nil, "Comma separated x,y pairs of the cut polygon vertices, in input coordinates. Points inside are removed."),
		Soft:    flags.Bool("soft", false, "Hides the points inside the polygon instead of rebuilding the octree without them."),
		Screen:  flags.Bool("screen", false, "Reads the polygon as window pixels of a top-down view of the whole cloud."),
		Width:   flags.Int("width", 1024, "Width of the screen cut viewport, in pixels."),
		Height:  flags.Int("height", 1024, "Height of the screen cut viewport, in pixels."),
		Depth:   flags.Float64("depth", viewer.DefaultCutDepth, "Window depth in [0, 1] at which screen polygon vertices are unprojected."),
	}
}

// Builds the viewer options described by the parsed flags
func (f *ViewerFlags) ToOptions(command string) *viewer.ViewerOptions {
	opts := viewer.NewDefaultViewerOptions()
	opts.Command = command
	opts.Input = *f.Input
	opts.Srid = *f.Srid
	opts.TargetSrid = *f.TargetSrid
	opts.EightBitColors = *f.EightBitColors
	opts.ZOffset = *f.ZOffset
	opts.MaxNumPointsPerNode = *f.MaxNumPoints
	opts.MaxDepth = *f.MaxDepth
	opts.MinNodeSize = *f.MinNodeSize
	opts.FolderProcessing = *f.FolderProcessing
	opts.Recursive = *f.RecursiveFolderProcessing
	opts.ColorMode = colormap.ParseColorMode(*f.ColorMode)
	opts.PointSize = *f.PointSize
	opts.ShowOutlines = *f.ShowOutlines
	opts.PruneSubtrees = *f.PruneSubtrees
	opts.Workers = *f.Workers
	return opts
}

func (f *PickFlags) ToOptions() (*viewer.PickOptions, error) {
	opts := &viewer.PickOptions{
		X:      *f.X,
		Y:      *f.Y,
		Width:  *f.Width,
		Height: *f.Height,
	}
	switch len(*f.MeasureTo) {
	case 0:
	case 2:
		opts.Measure = true
		opts.MeasureX, opts.MeasureY = (*f.MeasureTo)[0], (*f.MeasureTo)[1]
	default:
		return nil, errors.Errorf("measure-to needs a single x,y pair, got %d values", len(*f.MeasureTo))
	}
	return opts, nil
}

// Pairs up the polygon coordinates
func (f *CutFlags) ToOptions() (*viewer.CutOptions, error) {
	coords := *f.Polygon
	if len(coords)%2 != 0 {
		return nil, errors.Errorf("polygon needs x,y pairs, got %d values", len(coords))
	}
	polygon := make([]r2.Point, 0, len(coords)/2)
	for i := 0; i < len(coords); i += 2 {
		polygon = append(polygon, r2.Point{X: coords[i], Y: coords[i+1]})
	}
	return &viewer.CutOptions{
		Polygon: polygon,
		Soft:    *f.Soft,
		Screen:  *f.Screen,
		Width:   *f.Width,
		Height:  *f.Height,
		Depth:   *f.Depth,
	}, nil
}
