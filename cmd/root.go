package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/ecopia-map/pointcloud_viewer/internal/viewer"
	"github.com/ecopia-map/pointcloud_viewer/pkg"
	"github.com/ecopia-map/pointcloud_viewer/pkg/algorithm_manager/std_algorithm_manager"
	"github.com/ecopia-map/pointcloud_viewer/tools"
)

var banner string

var rootCmd = &cobra.Command{
	Use:           "pcviewer",
	Short:         "LIDAR point cloud viewer core",
	Long:          `pcviewer loads LAS point clouds into an octree and runs the viewer operations without a window.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// glog reads its flags from the go flag set
		_ = flag.CommandLine.Parse(nil)

		if *viewerFlags.Silent {
			tools.DisableLogger()
		} else if banner != "" {
			fmt.Println(banner)
		}
		if !*viewerFlags.LogTimestamp {
			tools.DisableLoggerTimestamp()
		}
	},
}

var viewerFlags *tools.ViewerFlags

func init() {
	viewerFlags = tools.DefineViewerFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
}

// Execute runs the root command
func Execute(version, logo string) {
	rootCmd.Version = version
	banner = logo

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	glog.Flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Validates the options of the command and opens a viewer session over path
func openViewer(ctx context.Context, opts *viewer.ViewerOptions, path string) (*pkg.Viewer, error) {
	opts = opts.Copy()
	opts.Input = path
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	v := pkg.NewViewer(opts, std_algorithm_manager.NewAlgorithmManager(opts), nil)
	if err := v.LoadFile(ctx, path); err != nil {
		v.Close()
		return nil, err
	}
	return v, nil
}

// Reads the single LAS file named by the options
func singleFileOptions(command string) (*viewer.ViewerOptions, error) {
	opts := viewerFlags.ToOptions(command)
	if err := tools.CheckInputPath(opts.Input, false); err != nil {
		return nil, err
	}
	return opts, nil
}
