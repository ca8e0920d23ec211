package cmds

import (
	"path/filepath"

	"github.com/go-go-golems/scopegrab/pkg/capture"
	"github.com/go-go-golems/scopegrab/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type rootOptions struct {
	ConfigPath string
	Config     *config.File

	// resolved: flag > config file > default
	CaptureDir string
	Grabber    string
	Instrument string
}

func AddRootFlags(root *cobra.Command) {
	root.PersistentFlags().String("config", "", "Path to config file (defaults to ~/.scopegrab.yaml)")
	root.PersistentFlags().String("capture-dir", "", "Capture directory (overrides config)")
	root.PersistentFlags().String("grabber", "", "External grabber command (overrides config)")
	root.PersistentFlags().String("instrument", "", "Instrument name filter (overrides config)")
}

func getRootOptions(cmd *cobra.Command) (rootOptions, error) {
	flags := cmd.Root().PersistentFlags()

	cfgPath, err := flags.GetString("config")
	if err != nil {
		return rootOptions{}, err
	}
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	} else if !filepath.IsAbs(cfgPath) {
		cfgPath, err = filepath.Abs(cfgPath)
		if err != nil {
			return rootOptions{}, err
		}
	}

	cfg, err := config.LoadOptional(cfgPath)
	if err != nil {
		return rootOptions{}, err
	}

	opts := rootOptions{
		ConfigPath: cfgPath,
		Config:     cfg,
		CaptureDir: cfg.ResolveCaptureDir(),
		Grabber:    cfg.Grabber,
		Instrument: cfg.Instrument,
	}
	if opts.Grabber == "" {
		opts.Grabber = capture.DefaultGrabber
	}

	overrideString(flags, "capture-dir", &opts.CaptureDir)
	overrideString(flags, "grabber", &opts.Grabber)
	overrideString(flags, "instrument", &opts.Instrument)

	return opts, nil
}

// overrideString applies a non-empty flag value over the config-derived one.
func overrideString(flags *pflag.FlagSet, name string, dst *string) {
	if v, err := flags.GetString(name); err == nil && v != "" {
		*dst = v
	}
}
