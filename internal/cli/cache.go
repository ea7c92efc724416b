package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/glitcher/pkg/cache"
)

// cacheCommand groups the subcommands that manage the on-disk render cache.
// Redis caches are shared with other hosts and are not managed here.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the local render cache",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the cache directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				dir, err := cacheDir()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), dir)
				return nil
			},
		},
		&cobra.Command{
			Use:   "info",
			Short: "Show how many renders are cached and their size",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				fc, err := openFileCache()
				if err != nil {
					return err
				}
				entries, size, err := fc.Usage()
				if err != nil {
					return err
				}
				out := newConsole(cmd.OutOrStdout())
				out.info("%d entries, %s", entries, humanBytes(size))
				out.detail("Directory: %s", fc.Dir())
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete every cached image and render",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				fc, err := openFileCache()
				if err != nil {
					return err
				}
				n, err := fc.Clear()
				if err != nil {
					return err
				}
				out := newConsole(cmd.OutOrStdout())
				out.success("Cleared %d cached entries", n)
				out.detail("Directory: %s", fc.Dir())
				return nil
			},
		},
	)
	return cmd
}

func openFileCache() (*cache.FileCache, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, fmt.Errorf("locate cache dir: %w", err)
	}
	return cache.NewFileCache(dir)
}

// humanBytes formats n with a binary unit, e.g. "1.5 MiB".
func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
