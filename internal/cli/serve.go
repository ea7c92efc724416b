package cli

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/glitcher/pkg/server"
	"github.com/matzehuels/glitcher/pkg/session"
)

type serveOpts struct {
	addr        string
	configPath  string
	preset      string
	maxSessions int
	sessionTTL  time.Duration
	noCache     bool
	redisAddr   string
}

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve glitch sessions and renders over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), newConsole(cmd.OutOrStdout()), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "config file for new sessions")
	cmd.Flags().StringVarP(&opts.preset, "preset", "p", "", "preset for new sessions")
	cmd.Flags().IntVar(&opts.maxSessions, "max-sessions", server.DefaultMaxSessions, "maximum concurrent sessions")
	cmd.Flags().DurationVar(&opts.sessionTTL, "session-ttl", session.DefaultTTL, "idle time before a session expires")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "use a Redis cache at this address")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, out *console, opts serveOpts) error {
	cfg, err := c.loadConfig(opts.configPath, opts.preset)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache, opts.redisAddr)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := server.New(server.Options{
		Store:      session.NewMemoryStore(opts.maxSessions),
		Runner:     runner,
		Config:     cfg,
		SessionTTL: opts.sessionTTL,
		Logger:     c.Logger,
	})

	out.info("Serving on %s", StyleHighlight.Render(opts.addr))
	out.hint("Try", "curl http://localhost"+portOf(opts.addr)+"/healthz")

	err = srv.ListenAndServe(ctx, opts.addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	if err == nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// portOf returns the ":port" suffix of a listen address.
func portOf(addr string) string {
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		return addr[i:]
	}
	return ""
}
