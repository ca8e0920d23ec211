package cmds

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change persisted settings",
	}
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigSetCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := getRootOptions(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "config:            %s\n", opts.ConfigPath)
			_, _ = fmt.Fprintf(w, "instrument:        %s\n", orUnset(opts.Instrument))
			_, _ = fmt.Fprintf(w, "capture_directory: %s\n", opts.CaptureDir)
			_, _ = fmt.Fprintf(w, "grabber:           %s\n", opts.Grabber)
			_, _ = fmt.Fprintf(w, "verbose:           %t\n", opts.Config.Verbose)
			_, _ = fmt.Fprintf(w, "trace:             %t\n", opts.Config.Trace)
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config key (instrument, capture_directory, grabber, verbose, trace)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := getRootOptions(cmd)
			if err != nil {
				return err
			}

			key, value := args[0], args[1]
			cfg := opts.Config
			switch key {
			case "instrument":
				cfg.Instrument = value
			case "capture_directory":
				cfg.CaptureDirectory = value
			case "grabber":
				cfg.Grabber = value
			case "verbose", "trace":
				b, err := strconv.ParseBool(value)
				if err != nil {
					return errors.Wrapf(err, "parse %s value %q", key, value)
				}
				if key == "verbose" {
					cfg.Verbose = b
				} else {
					cfg.Trace = b
				}
			default:
				return errors.Errorf("unknown config key %q", key)
			}

			if err := cfg.Save(opts.ConfigPath); err != nil {
				return err
			}
			log.Info().Str("key", key).Str("path", opts.ConfigPath).Msg("config updated")
			return nil
		},
	}
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}
