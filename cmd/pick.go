package cmd

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ecopia-map/pointcloud_viewer/internal/data"
	"github.com/ecopia-map/pointcloud_viewer/internal/render"
	"github.com/ecopia-map/pointcloud_viewer/pkg"
	"github.com/ecopia-map/pointcloud_viewer/tools"
)

type pickedPoint struct {
	ID             data.PointID `json:"id"`
	Coordinate     r3.Vector    `json:"coordinate"`
	RayDistance    float64      `json:"ray_distance"`
	Classification uint8        `json:"classification"`
	Color          [3]uint16    `json:"color"`
	Record         [3]int32     `json:"record"` // LAS integer X, Y, Z of the point
}

type pickResult struct {
	Picked   *pickedPoint `json:"picked"`
	Second   *pickedPoint `json:"second,omitempty"`
	Distance *float64     `json:"distance,omitempty"`
}

var pickFlags *tools.PickFlags

var pickCmd = &cobra.Command{
	Use:   tools.CommandPick,
	Short: "Picks the point under a window position of a camera fitted to the cloud",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := singleFileOptions(tools.CommandPick)
		if err != nil {
			return err
		}
		if opts.PickOptions, err = pickFlags.ToOptions(); err != nil {
			return err
		}

		v, err := openViewer(cmd.Context(), opts, opts.Input)
		if err != nil {
			return err
		}
		defer v.Close()

		pick := opts.PickOptions
		camera := pkg.FitCamera(v.Dataset(), pick.Width, pick.Height)
		if _, err := v.Frame(render.NewMemorySurface(), camera.Projection, camera.View, camera.Viewport); err != nil {
			return err
		}

		first, err := pickAt(v, pick.X, pick.Y)
		if err != nil {
			return err
		}
		result := pickResult{Picked: first}

		if pick.Measure {
			second, err := pickAt(v, pick.MeasureX, pick.MeasureY)
			if err != nil {
				return err
			}
			distance, err := v.Measure(first.ID, second.ID)
			if err != nil {
				return err
			}
			result.Second = second
			result.Distance = &distance
		}

		fmt.Fprintln(cmd.OutOrStdout(), tools.FmtJSONString(result))
		return nil
	},
}

func init() {
	pickFlags = tools.DefinePickFlags(pickCmd.Flags())
	rootCmd.AddCommand(pickCmd)
}

func pickAt(v *pkg.Viewer, x, y float64) (*pickedPoint, error) {
	closest, ok := v.Pick(x, y)
	if !ok {
		return nil, errors.Errorf("no point found at %.1f,%.1f", x, y)
	}
	record, err := v.Dataset().QuantizedRecord(closest.Point)
	if err != nil {
		return nil, err
	}
	return &pickedPoint{
		ID:             closest.ID,
		Coordinate:     v.Dataset().RealCoordinate(closest.Point),
		RayDistance:    closest.Distance * v.Dataset().Scale,
		Classification: closest.Point.Classification,
		Color:          closest.Point.RawColor,
		Record:         record,
	}, nil
}
