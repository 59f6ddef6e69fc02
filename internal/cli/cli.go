// Package cli holds the cobra commands shared by the zoomview binaries.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"zoomview/pkg/config"
	"zoomview/pkg/geom"
	"zoomview/pkg/viewport"
)

// Version is reported by the root commands.
var Version = "0.1.0"

// NewRootCommand builds a root command with the shared subcommands and the
// persistent --config and --verbose flags.
func NewRootCommand(use, short string) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           use,
		Short:         short,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				viewport.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
		},
	}
	root.PersistentFlags().String("config", "", "YAML configuration file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log gesture decisions to stderr")

	root.AddCommand(newBoundsCommand())
	root.AddCommand(newReplayCommand())
	root.AddCommand(newRenderCommand())
	root.AddCommand(newScriptCommand())
	root.AddCommand(newConfigCommand())
	return root
}

// Execute runs root and exits non-zero on error.
func Execute(root *cobra.Command) {
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// LoadConfig reads the --config flag, falling back to defaults when unset.
func LoadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return config.Default(), "", nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func newController(cmd *cobra.Command) (*viewport.Controller, error) {
	cfg, _, err := LoadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return viewport.New(cfg.ViewportOptions()...)
}

// parseSize parses "WxH".
func parseSize(s string) (float64, float64, error) {
	parts := strings.Split(strings.ToLower(s), "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q, want WxH", s)
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width in %q: %w", s, err)
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height in %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q, dimensions must be positive", s)
	}
	return w, h, nil
}

func printMatrix(w io.Writer, m geom.Matrix) {
	fmt.Fprintf(w, "scale=%.4f translate=(%.2f, %.2f)", m[0], m[4], m[5])
}

func printBounds(w io.Writer, b geom.Bounds) {
	fmt.Fprintf(w, "left=%.2f top=%.2f right=%.2f bottom=%.2f", b.Left, b.Top, b.Right, b.Bottom)
}
