package cli

import (
	"context"
	"io"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/glitcher/pkg/display/window"
	"github.com/matzehuels/glitcher/pkg/engine"
	pkgio "github.com/matzehuels/glitcher/pkg/io"
	"github.com/matzehuels/glitcher/pkg/observability"
)

type playOpts struct {
	window     bool
	configPath string
	preset     string
	paused     bool
	scale      float64
}

// playCommand creates the play command for live playback.
func (c *CLI) playCommand() *cobra.Command {
	var opts playOpts
	var tui bool

	cmd := &cobra.Command{
		Use:   "play [image]",
		Short: "Run the animation live in the terminal or a window",
		Long: `Play runs the animation in real time at the configured target fps.

With --tui (default) the terminal shows a live dashboard of the scheduler
state. With --window the frames are shown in a window where the selection
tools can be used with the mouse.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlay(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&tui, "tui", true, "show a terminal dashboard")
	cmd.Flags().BoolVarP(&opts.window, "window", "w", false, "open a display window")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "config file (default: ./glitcher.toml or user config)")
	cmd.Flags().StringVarP(&opts.preset, "preset", "p", "", "effect preset (see 'glitcher presets')")
	cmd.Flags().BoolVar(&opts.paused, "paused", false, "start paused")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "window scale (default: fit to screen)")
	cmd.MarkFlagsMutuallyExclusive("tui", "window")

	return cmd
}

func (c *CLI) runPlay(ctx context.Context, input string, opts playOpts) error {
	cfg, err := c.loadConfig(opts.configPath, opts.preset)
	if err != nil {
		return err
	}

	sw := startStopwatch(c.Logger)
	buf, err := pkgio.Load(input)
	if err != nil {
		return err
	}
	sw.done("Loaded %s", filepath.Base(input))

	// The dashboard owns the terminal; scheduler logs would tear it.
	logger := c.Logger
	if !opts.window {
		logger = log.New(io.Discard)
		observability.SetFrameHooks(observability.Noop{})
	}

	sched := engine.New(cfg, logger)
	if err := sched.LoadImage(buf); err != nil {
		return err
	}
	if opts.paused {
		sched.Pause()
	}

	if opts.window {
		w := window.New(ctx, sched, window.Options{
			Title:  appName + " - " + filepath.Base(input),
			Scale:  opts.scale,
			Logger: c.Logger,
		})
		return w.Run()
	}

	p := tea.NewProgram(NewPlayModel(ctx, sched, filepath.Base(input)), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}
