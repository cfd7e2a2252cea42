package cmd

import (
	"context"
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/spf13/cobra"

	"github.com/ecopia-map/pointcloud_viewer/internal/render"
	"github.com/ecopia-map/pointcloud_viewer/internal/viewer"
	"github.com/ecopia-map/pointcloud_viewer/pkg"
	"github.com/ecopia-map/pointcloud_viewer/tools"
)

type cutResult struct {
	File      string `json:"file"`
	Removed   int    `json:"removed"`
	Remaining int    `json:"remaining"`
	Soft      bool   `json:"soft"`
	Leaves    int    `json:"leaves"`
}

var cutFlags *tools.CutFlags

var cutCmd = &cobra.Command{
	Use:   tools.CommandCut,
	Short: "Removes the points falling inside a polygon drawn on the X/Y plane",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := singleFileOptions(tools.CommandCut)
		if err != nil {
			return err
		}
		if opts.CutOptions, err = cutFlags.ToOptions(); err != nil {
			return err
		}

		v, err := openViewer(cmd.Context(), opts, opts.Input)
		if err != nil {
			return err
		}
		defer v.Close()

		removed, err := cutPolygon(cmd.Context(), v, opts.CutOptions)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), tools.FmtJSONString(cutResult{
			File:      opts.Input,
			Removed:   removed,
			Remaining: v.Dataset().Store.ActiveLen(),
			Soft:      opts.CutOptions.Soft,
			Leaves:    v.Tree().Stats().Leaves,
		}))
		return nil
	},
}

func init() {
	cutFlags = tools.DefineCutFlags(cutCmd.Flags())
	rootCmd.AddCommand(cutCmd)
}

func cutPolygon(ctx context.Context, v *pkg.Viewer, cut *viewer.CutOptions) (int, error) {
	if cut.Screen {
		camera := pkg.FitOrthoCamera(v.Dataset(), cut.Width, cut.Height)
		if _, err := v.Frame(render.NewMemorySurface(), camera.Projection, camera.View, camera.Viewport); err != nil {
			return 0, err
		}
		return v.CutScreen(ctx, cut.Polygon, cut.Depth, cut.Soft)
	}

	// a horizontal polygon cuts vertically through the cloud
	z := v.Dataset().Center.Z
	polygon := make([]r3.Vector, len(cut.Polygon))
	for i, vertex := range cut.Polygon {
		polygon[i] = r3.Vector{X: vertex.X, Y: vertex.Y, Z: z}
	}
	return v.CutReal(ctx, polygon, cut.Soft)
}
