package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clems4ever/cmdtree/console"
	"github.com/clems4ever/cmdtree/logging"
)

var strict bool

var execCmd = &cobra.Command{
	Use:   "exec [command [args...]]",
	Short: "Dispatch one command from the tree",
	Long: `Dispatch the given words as a command path followed by its arguments and
print the report. With no words the root commands are listed. Flags are
only recognized before the first word, so words may start with "-".`,
	Args:              cobra.ArbitraryArgs,
	RunE:              runExec,
	ValidArgsFunction: completeExec,
}

func init() {
	rootCmd.AddCommand(execCmd)

	execCmd.Flags().SetInterspersed(false)
	execCmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error when the usage fallback is printed")
}

func runExec(cmd *cobra.Command, args []string) error {
	rep := registry.Dispatch(args, appCfg.Console.BufferSize)
	fmt.Fprint(cmd.OutOrStdout(), rep.Text)
	if strict && rep.Err != nil {
		return fmt.Errorf("command failed: %w", rep.Err)
	}
	return nil
}

// completeExec offers the subcommands reachable after args. Completion runs
// without the pre-run hooks, so the tree is built here.
func completeExec(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	reg, err := console.NewRegistry(cfg, logging.L())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var out []string
	for _, c := range reg.Candidates(args, toComplete) {
		out = append(out, c.Name+"\t"+c.Comment)
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
