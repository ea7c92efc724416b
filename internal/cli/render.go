package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/glitcher/pkg/errors"
	pkgio "github.com/matzehuels/glitcher/pkg/io"
	"github.com/matzehuels/glitcher/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string
	frames     int
	fps        float64
	format     string
	width      int
	height     int
	configPath string
	preset     string
	seed       uint64
	seedSet    bool
	noCache    bool
	refresh    bool
	redisAddr  string
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [image]",
		Short: "Render a glitch animation to GIF, PNG or a frame sequence",
		Long: `Render animates an image for a fixed number of frames and writes the result.

Formats:
  gif     looping animation (default)
  png     the last frame only
  frames  every frame as a numbered PNG in a directory`,
		Example: `  glitcher render photo.jpg
  glitcher render photo.jpg --preset vintage-tv --frames 120 -o tv.gif
  glitcher render photo.jpg --format frames -o out/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.seedSet = cmd.Flags().Changed("seed")
			return c.runRender(cmd.Context(), cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, or directory for --format frames")
	cmd.Flags().IntVarP(&opts.frames, "frames", "n", pipeline.DefaultFrames, "number of frames to render")
	cmd.Flags().Float64Var(&opts.fps, "fps", pipeline.DefaultFPS, "GIF playback rate")
	cmd.Flags().StringVarP(&opts.format, "format", "f", pipeline.DefaultFormat, "output format: gif, png, frames")
	cmd.Flags().IntVar(&opts.width, "width", 0, "working width (default: normalized from source)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "working height (default: normalized from source)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "config file (default: ./glitcher.toml or user config)")
	cmd.Flags().StringVarP(&opts.preset, "preset", "p", "", "effect preset (see 'glitcher presets')")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (default from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results and render again")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "use a Redis cache at this address")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, cmd *cobra.Command, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	out := newConsole(cmd.OutOrStdout())

	if err := pipeline.ValidateFormat(opts.format); err != nil {
		return err
	}
	output := opts.output
	if output == "" {
		output = defaultOutput(input, opts.format)
	}
	if opts.format != pipeline.FormatFrames {
		if err := errors.ValidateOutputPath(output, "."+opts.format); err != nil {
			return err
		}
	}

	cfg, err := c.loadConfig(opts.configPath, opts.preset)
	if err != nil {
		return err
	}
	if opts.seedSet {
		cfg.Seed = opts.seed
	}

	runner, err := c.newRunner(ctx, opts.noCache, opts.redisAddr)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinner(ctx, cmd.ErrOrStderr(), "Rendering "+filepath.Base(input))
	spinner.Start()

	sw := startStopwatch(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Source:  input,
		Width:   opts.width,
		Height:  opts.height,
		Config:  cfg,
		Frames:  opts.frames,
		Format:  opts.format,
		FPS:     opts.fps,
		Refresh: opts.refresh,
		Progress: func(done, total int) {
			spinner.SetMessage(fmt.Sprintf("Rendering frame %d/%d", done, total))
		},
	})
	if err != nil {
		spinner.Fail("Render failed")
		if spinner.Cancelled() {
			return context.Canceled
		}
		return err
	}
	spinner.Stop()
	sw.done("Rendered %d frames", result.Stats.Frames)

	if opts.format == pipeline.FormatFrames {
		paths, err := pkgio.WriteFrames(output, result.Frames)
		if err != nil {
			return err
		}
		out.success("Wrote %d frames", len(paths))
		out.stats(result.Stats.Frames, result.Width, result.Height, false)
		out.file(output)
		return nil
	}

	if err := writeOutput(output, result.Artifact); err != nil {
		return err
	}
	out.success("Rendered %s", filepath.Base(input))
	out.stats(result.Stats.Frames, result.Width, result.Height, result.CacheInfo.RenderHit)
	out.file(output)
	return nil
}

// defaultOutput derives the output path from the input name:
// photo.jpg becomes photo_glitch.gif, or photo_frames/ for frame sequences.
func defaultOutput(input, format string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if format == pipeline.FormatFrames {
		return base + "_frames"
	}
	return base + "_glitch." + format
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
