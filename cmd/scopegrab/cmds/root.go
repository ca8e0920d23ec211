package cmds

import (
	"github.com/spf13/cobra"
)

func AddCommands(root *cobra.Command) error {
	root.AddCommand(newCaptureCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newTuiCmd())
	return nil
}
