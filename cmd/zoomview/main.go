package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"zoomview/internal/cli"
	"zoomview/internal/gui"
	"zoomview/pkg/imageio"
)

func main() {
	root := cli.NewRootCommand("zoomview", "Pan and pinch-zoom images inside a fixed viewport")
	root.AddCommand(newGUICommand())
	cli.Execute(root)
}

func newGUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "gui [image]",
		Short: "Open the image viewer",
		Long: `Opens a window hosting the viewport controller. Drag to pan, use the mouse
wheel to pinch-zoom around the cursor. With --config the file is reloaded
whenever it changes.`,
		Args: cobra.MatchAll(cobra.MaximumNArgs(1), imageArg),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			app, err := gui.NewApp(cfg, path)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				app.RunWithFile(args[0])
			} else {
				app.Run()
			}
			return nil
		},
	}
}

func imageArg(cmd *cobra.Command, args []string) error {
	if len(args) > 0 && !imageio.Supported(args[0]) {
		return fmt.Errorf("unsupported image format: %s", args[0])
	}
	return nil
}
