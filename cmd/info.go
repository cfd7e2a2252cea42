package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/golang/geo/r3"
	"github.com/spf13/cobra"

	"github.com/ecopia-map/pointcloud_viewer/internal/octree"
	"github.com/ecopia-map/pointcloud_viewer/internal/render"
	"github.com/ecopia-map/pointcloud_viewer/pkg"
	"github.com/ecopia-map/pointcloud_viewer/tools"
)

const infoViewportSize = 1024

type fileInfo struct {
	File    string             `json:"file"`
	Points  int                `json:"points"`
	Srid    int                `json:"srid"`
	Scale   float64            `json:"scale"`
	MinReal r3.Vector          `json:"min"`
	MaxReal r3.Vector          `json:"max"`
	Tree    octree.Stats       `json:"tree"`
	Frame   octree.RenderStats `json:"frame"`
}

var infoCmd = &cobra.Command{
	Use:   tools.CommandInfo,
	Short: "Indexes LAS files and prints their octree statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := viewerFlags.ToOptions(tools.CommandInfo)
		if err := tools.CheckInputPath(opts.Input, opts.FolderProcessing); err != nil {
			return err
		}

		lasFiles, err := tools.NewStandardFileFinder().GetLasFilesToProcess(opts)
		if err != nil {
			return err
		}
		for i, filePath := range lasFiles {
			tools.LogOutput("Processing file " + strconv.Itoa(i+1) + "/" + strconv.Itoa(len(lasFiles)))

			info, err := describeFile(cmd, filePath)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tools.FmtJSONString(info))
			tools.LogOutput("> done processing", filepath.Base(filePath))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func describeFile(cmd *cobra.Command, filePath string) (*fileInfo, error) {
	v, err := openViewer(cmd.Context(), viewerFlags.ToOptions(tools.CommandInfo), filePath)
	if err != nil {
		return nil, err
	}
	defer v.Close()

	dataset := v.Dataset()
	camera := pkg.FitCamera(dataset, infoViewportSize, infoViewportSize)
	frame, err := v.Frame(render.NewMemorySurface(), camera.Projection, camera.View, camera.Viewport)
	if err != nil {
		return nil, err
	}

	return &fileInfo{
		File:    filePath,
		Points:  dataset.Store.Len(),
		Srid:    dataset.Srid,
		Scale:   dataset.Scale,
		MinReal: dataset.MinReal,
		MaxReal: dataset.MaxReal,
		Tree:    v.Tree().Stats(),
		Frame:   frame,
	}, nil
}
