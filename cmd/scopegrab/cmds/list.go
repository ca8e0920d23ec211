package cmds

import (
	"fmt"

	"github.com/araddon/dateparse"
	"github.com/go-go-golems/scopegrab/pkg/gallery"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var since string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List captured images oldest to newest",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := getRootOptions(cmd)
			if err != nil {
				return err
			}

			mgr := gallery.Manager{Dir: opts.CaptureDir}
			entries := mgr.ListOrdered()

			if since != "" {
				cutoff, err := dateparse.ParseLocal(since)
				if err != nil {
					return errors.Wrapf(err, "parse --since %q", since)
				}
				filtered := entries[:0]
				for _, a := range entries {
					if !a.ModTime.Before(cutoff) {
						filtered = append(filtered, a)
					}
				}
				entries = filtered
			}

			if len(entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no captures")
				return nil
			}
			for i, a := range entries {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s  %s\n",
					i+1, a.ModTime.Format("2006-01-02 15:04:05"), a.Path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "Only show captures at or after this time (e.g. \"2026-08-20\", \"8/20/2026 14:00\")")
	return cmd
}
