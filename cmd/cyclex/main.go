// Command cyclex exports a glTF scene file to a Cycles scene description, optionally
// kicking off a render on the result.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/solarlune/cyclex"
	"github.com/spf13/cobra"
)

var (
	outFile     string
	optionsFile string
	mode        string
	cameraPath  string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "cyclex",
	Short: "Convert scene files to Cycles scene descriptions",
}

var exportCmd = &cobra.Command{
	Use:   "export <scene.gltf|scene.glb>",
	Short: "Export a glTF scene to a Cycles scene description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {

		if verbose {
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		}

		options := cyclex.DefaultRenderOptions()
		if optionsFile != "" {
			loaded, err := cyclex.LoadRenderOptions(optionsFile)
			if err != nil {
				return err
			}
			options = loaded
		}

		if outFile != "" {
			options.FileName = outFile
		}
		if mode != "" {
			options.Mode = mode
		}
		if cameraPath != "" {
			options.Camera = cameraPath
		}
		if options.FileName == "" {
			return fmt.Errorf("no output file name; pass --out or set fileName in the options file")
		}

		scene, err := cyclex.LoadGLTFFile(args[0], nil)
		if err != nil {
			return err
		}

		return cyclex.NewRenderer(scene, options).Export()

	},
}

func init() {
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output scene description file")
	exportCmd.Flags().StringVar(&optionsFile, "options", "", "render options YAML file")
	exportCmd.Flags().StringVar(&mode, "mode", "", "what to do after writing (\"render\" spawns the renderer)")
	exportCmd.Flags().StringVar(&cameraPath, "camera", "", "scene path of the camera to render through")
	exportCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
