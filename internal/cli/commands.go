package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"zoomview/pkg/config"
	"zoomview/pkg/geom"
	"zoomview/pkg/imageio"
	"zoomview/pkg/raster"
	"zoomview/pkg/touch"
	"zoomview/pkg/viewport"
)

func newBoundsCommand() *cobra.Command {
	var imageSize, viewportSize string

	cmd := &cobra.Command{
		Use:   "bounds",
		Short: "Print the initial placement and bounds for an image",
		Long: `Binds an image of the given size, measures the viewport and prints the
default center-crop transform together with the containment bounds.`,
		Example: `  zoomview bounds --image 1000x2000 --viewport 1080x1920
  zoomview bounds --image photo.jpg --viewport 1080x1920`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			iw, ih, err := imageSizeArg(imageSize)
			if err != nil {
				return err
			}
			vw, vh, err := parseSize(viewportSize)
			if err != nil {
				return err
			}
			ctrl, err := newController(cmd)
			if err != nil {
				return err
			}
			if err := ctrl.BindImage(int(iw), int(ih)); err != nil {
				return err
			}
			ctrl.OnViewportMeasured(vw, vh)

			m, err := ctrl.Transform()
			if err != nil {
				return err
			}
			b, err := ctrl.Bounds()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, "transform: ")
			printMatrix(out, m)
			fmt.Fprint(out, "\nbounds:    ")
			printBounds(out, b)
			shown := ctrl.InitialSize()
			fmt.Fprintf(out, "\nshown:     %.2f x %.2f\n", shown.Width, shown.Height)
			return nil
		},
	}

	cmd.Flags().StringVar(&imageSize, "image", "", "Intrinsic image size, WxH, or an image file")
	cmd.Flags().StringVar(&viewportSize, "viewport", "", "Viewport size, WxH")
	_ = cmd.MarkFlagRequired("image")
	_ = cmd.MarkFlagRequired("viewport")

	return cmd
}

// imageSizeArg accepts either "WxH" or the path of a decodable image, in
// which case only its header is read.
func imageSizeArg(s string) (float64, float64, error) {
	if !imageio.Supported(s) {
		return parseSize(s)
	}
	info, err := imageio.Stat(s)
	if err != nil {
		return 0, 0, err
	}
	return float64(info.Width), float64(info.Height), nil
}

func newReplayCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Replay a gesture script and print the transform after each event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := touch.LoadScriptFile(args[0])
			if err != nil {
				return err
			}
			ctrl, err := newController(cmd)
			if err != nil {
				return err
			}
			return replay(cmd, script, ctrl)
		},
	}
	return cmd
}

func replay(cmd *cobra.Command, script *touch.Script, ctrl *viewport.Controller) error {
	out := cmd.OutOrStdout()
	err := script.Run(ctrl, func(i int, ev touch.Event) {
		m, _ := ctrl.Transform()
		fmt.Fprintf(out, "%4d: %-12s mode=%-9s ", i+1, ev.Action, ctrl.Mode())
		printMatrix(out, m)
		fmt.Fprintln(out)
	})
	if err != nil {
		return err
	}

	m, err := ctrl.Transform()
	if err != nil {
		return err
	}
	fmt.Fprint(out, "final: ")
	printMatrix(out, m)
	fmt.Fprintf(out, " zoom=%.4f\n", ctrl.Zoom())
	return nil
}

func newRenderCommand() *cobra.Command {
	var imagePath, output string
	var overlay, smooth bool

	cmd := &cobra.Command{
		Use:   "render <script.yaml>",
		Short: "Replay a gesture script against an image and save the viewport as PNG",
		Long: `Decodes the image, replays the script's events with the image's real size
and writes what the viewport shows afterwards. The script's image size is
replaced by the decoded size.`,
		Example: "  zoomview render pinch.yaml --image photo.jpg -o out.png --overlay",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := touch.LoadScriptFile(args[0])
			if err != nil {
				return err
			}
			img, _, err := imageio.Open(imagePath)
			if err != nil {
				return err
			}
			b := img.Bounds()
			script.Image = touch.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}

			ctrl, err := newController(cmd)
			if err != nil {
				return err
			}
			if err := script.Run(ctrl, nil); err != nil {
				return err
			}

			opts := raster.DefaultRenderOptions()
			opts.Overlay = overlay
			opts.Smooth = smooth
			canvas, err := raster.Render(img, ctrl, opts)
			if err != nil {
				return fmt.Errorf("failed to render: %w", err)
			}
			if err := canvas.SavePNG(output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%dx%d pixels)\n", output, canvas.Width(), canvas.Height())
			return nil
		},
	}

	cmd.Flags().StringVar(&imagePath, "image", "", "Image file to render")
	cmd.Flags().StringVarP(&output, "output", "o", "output.png", "Output PNG file")
	cmd.Flags().BoolVar(&overlay, "overlay", false, "Outline the containment bounds")
	cmd.Flags().BoolVar(&smooth, "smooth", false, "Use Catmull-Rom resampling")
	_ = cmd.MarkFlagRequired("image")

	return cmd
}

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the YAML configuration file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:     "init [path]",
		Short:   "Write the default configuration",
		Example: "  zoomview config init zoom.yaml",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "zoomview.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.Default().Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	})
	return cmd
}

func newScriptCommand() *cobra.Command {
	var imageSize, viewportSize, drag, output string
	var scale, spread float64

	cmd := &cobra.Command{
		Use:   "script",
		Short: "Generate a pinch gesture script",
		Long: `Writes a script that pinches around the viewport center until the two
pointers are scale times further apart, optionally followed by a one-finger
drag. The result can be fed to replay or render.`,
		Example: "  zoomview script --image 1000x2000 --viewport 1080x1920 --scale 2 --drag 40,-25",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			iw, ih, err := imageSizeArg(imageSize)
			if err != nil {
				return err
			}
			vw, vh, err := parseSize(viewportSize)
			if err != nil {
				return err
			}
			if !(scale > 0) || !(spread > 0) {
				return fmt.Errorf("scale and spread must be positive")
			}
			script := &touch.Script{
				Image:    touch.Size{Width: iw, Height: ih},
				Viewport: touch.Size{Width: vw, Height: vh},
				Events:   pinchEvents(geom.Pt(vw/2, vh/2), spread, scale),
			}
			if drag != "" {
				dx, dy, err := parseOffset(drag)
				if err != nil {
					return err
				}
				c := geom.Pt(vw/2, vh/2)
				script.Events = append(script.Events,
					touch.Down(c),
					touch.Move(geom.Pt(c.X+dx, c.Y+dy)),
					touch.Up(),
				)
			}

			data, err := script.Marshal()
			if err != nil {
				return fmt.Errorf("failed to encode script: %w", err)
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write script: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d events)\n", output, len(script.Events))
			return nil
		},
	}

	cmd.Flags().StringVar(&imageSize, "image", "", "Intrinsic image size, WxH, or an image file")
	cmd.Flags().StringVar(&viewportSize, "viewport", "", "Viewport size, WxH")
	cmd.Flags().Float64Var(&scale, "scale", 2, "Ratio of final to initial pointer distance")
	cmd.Flags().Float64Var(&spread, "spread", 100, "Initial pointer distance")
	cmd.Flags().StringVar(&drag, "drag", "", "Drag offset after the pinch, DX,DY")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, stdout when empty")
	_ = cmd.MarkFlagRequired("image")
	_ = cmd.MarkFlagRequired("viewport")

	return cmd
}

// pinchEvents spreads two horizontal pointers around center from spread
// to spread*scale apart in a single move.
func pinchEvents(center geom.Point, spread, scale float64) []touch.Event {
	pair := func(d float64) (geom.Point, geom.Point) {
		return geom.Pt(center.X-d/2, center.Y), geom.Pt(center.X+d/2, center.Y)
	}
	a, b := pair(spread)
	a2, b2 := pair(spread * scale)
	return []touch.Event{
		touch.Down(a),
		touch.PointerDown(a, b),
		touch.Move(a2, b2),
		touch.PointerUp(),
		touch.Up(),
	}
}

// parseOffset parses "DX,DY".
func parseOffset(s string) (float64, float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid offset %q, want DX,DY", s)
	}
	dx, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid offset %q: %w", s, err)
	}
	dy, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid offset %q: %w", s, err)
	}
	return dx, dy, nil
}
