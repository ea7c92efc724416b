package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/glitcher/pkg/config"
	"github.com/matzehuels/glitcher/pkg/engine"
)

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Locate, show or create the config file",
	}

	cmd.AddCommand(c.configPathCommand())
	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configInitCommand())

	return cmd
}

// configPathCommand creates the "config path" subcommand.
func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path, ok := config.Find(); ok {
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			}
			path, err := config.Path()
			if err != nil {
				return fmt.Errorf("get config path: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

// configShowCommand creates the "config show" subcommand.
func (c *CLI) configShowCommand() *cobra.Command {
	var path, preset string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(path, preset)
			if err != nil {
				return err
			}
			return config.Encode(cmd.OutOrStdout(), cfg)
		},
	}
	cmd.Flags().StringVarP(&path, "config", "c", "", "config file")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "apply a preset on top")
	return cmd
}

// configInitCommand creates the "config init" subcommand.
func (c *CLI) configInitCommand() *cobra.Command {
	var path, preset string
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				p, err := config.Path()
				if err != nil {
					return fmt.Errorf("get config path: %w", err)
				}
				path = p
			}
			cfg, err := engine.DefaultConfig().WithPreset(preset)
			if err != nil {
				return err
			}
			if err := config.Write(path, cfg, force); err != nil {
				return err
			}
			out := newConsole(cmd.OutOrStdout())
			out.success("Wrote config")
			out.file(path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "output", "o", "", "file to write (default: user config)")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "start from a preset")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}
