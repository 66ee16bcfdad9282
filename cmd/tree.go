package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the command tree",
	Long: `Print every registered command indented under its parent. Commands that
only group subcommands end with "/".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := registry.Fprint(cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("failed to print tree: %w", err)
		}
		return nil
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete [line]",
	Short: "Print completions of a partial command line",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		line := ""
		if len(args) == 1 {
			line = args[0]
		}
		for _, c := range registry.Complete(line) {
			fmt.Fprintln(cmd.OutOrStdout(), c)
		}
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(completeCmd)
}
