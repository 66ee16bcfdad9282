package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/clems4ever/cmdtree/cmdtree"
	"github.com/clems4ever/cmdtree/config"
	"github.com/clems4ever/cmdtree/console"
	"github.com/clems4ever/cmdtree/logging"
)

const appName = "cmdtree"

var (
	cfgFile  string
	oneShot  string
	verbose  bool
	plain    bool
	appCfg   *config.Config
	registry *cmdtree.Registry
)

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "A console over a tree of named commands",
	Long: `cmdtree reads command lines, splits them into tokens and resolves the
tokens against a tree of registered commands. A resolved command runs with
the remaining tokens as arguments; anything else prints the commands
available at the level where resolution stopped.

The tree comes from a TOML or YAML file given with --config. Without
arguments an interactive console starts; /q leaves it.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: runRoot,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to a TOML or YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")
	rootCmd.PersistentFlags().BoolVar(&plain, "plain", false, "Disable prompt and error styling")
	rootCmd.Flags().StringVarP(&oneShot, "command", "c", "", "Execute one command line and exit")
}

func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.Load(cfgFile)
}

// setup loads the configuration, starts logging and builds the command tree
// before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := logging.Options{Mode: cfg.Log.Mode, Level: cfg.Log.Level, File: cfg.Log.File}
	if verbose {
		opts.Level = "debug"
	}
	if err := logging.Init(appName, opts); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	reg, err := console.NewRegistry(cfg, logging.L())
	if err != nil {
		return fmt.Errorf("failed to build command tree: %w", err)
	}

	appCfg = cfg
	registry = reg
	logging.L().Debug("command tree ready")
	return nil
}

func newSession() *console.Session {
	styles := console.DefaultStyles()
	if plain {
		styles = console.PlainStyles()
	}
	return console.NewSession(registry, appCfg.Console, logging.L(), styles)
}

func runRoot(cmd *cobra.Command, args []string) error {
	if oneShot != "" {
		res := newSession().Handle(oneShot)
		fmt.Fprint(cmd.OutOrStdout(), res.Text)
		return nil
	}
	return runConsole(cmd, args)
}

func printError(cmd *cobra.Command, msg string, err error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s: %v\n", msg, err)
}
