// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
		Long:  "Commands for showing and validating audmix configuration.",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "validate",
			Short: "Validate configuration",
			Long:  "Validate the current configuration file, environment variables and flags.",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := a.loadConfig(); err != nil {
					slog.Error("Configuration validation failed", slog.Any("error", err))
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid")
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show current configuration",
			Long:  "Display the effective configuration after file, environment and flags are merged.",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := a.loadConfig()
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				spec, _ := cfg.Device.Spec()
				fmt.Fprintln(out, "Current Configuration:")
				fmt.Fprintf(out, "  Device:\n")
				fmt.Fprintf(out, "    Backend: %s\n", cfg.Device.Backend)
				fmt.Fprintf(out, "    Spec: %s\n", spec)
				fmt.Fprintf(out, "    Silence: %#02x\n", spec.Silence)
				fmt.Fprintf(out, "    Samples: %d (%s)\n", cfg.Device.Samples, cfg.Device.BufferDuration())
				fmt.Fprintf(out, "  Logging:\n")
				fmt.Fprintf(out, "    Level: %s\n", cfg.Logging.Level)
				fmt.Fprintf(out, "    Format: %s\n", cfg.Logging.Format)
				fmt.Fprintf(out, "  Sounds:\n")
				for _, s := range cfg.Sounds {
					fmt.Fprintf(out, "    %s: %s (loop=%t autoplay=%t)\n", s.Name, s.Path, s.Loop, s.Autoplay)
				}
				return nil
			},
		},
	)
	return cmd
}
