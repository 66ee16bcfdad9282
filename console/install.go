package console

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/clems4ever/cmdtree/cmdtree"
	"github.com/clems4ever/cmdtree/config"
)

// NewRegistry builds a registry shaped by cfg: limits and separator from the
// console section, the builtin commands unless disabled, then every
// configured command in file order.
func NewRegistry(cfg *config.Config, logger *zap.Logger) (*cmdtree.Registry, error) {
	opts := []cmdtree.Option{
		cmdtree.WithLogger(logger),
		cmdtree.WithMaxTokens(cfg.Console.MaxTokens),
	}
	if cfg.Console.Separator != "" {
		opts = append(opts, cmdtree.WithSeparator(cfg.Console.Separator))
	}
	reg := cmdtree.New(opts...)

	if !cfg.Console.NoBuiltins {
		if err := RegisterBuiltins(reg); err != nil {
			return nil, err
		}
	}
	if err := Install(reg, cfg.Commands); err != nil {
		return nil, err
	}
	return reg, nil
}

// RegisterBuiltins adds the commands every console offers.
func RegisterBuiltins(reg *cmdtree.Registry) error {
	if _, err := reg.Register("info", "System Information", Info, ""); err != nil {
		return fmt.Errorf("failed to register builtin commands: %w", err)
	}
	return nil
}

// Install registers the configured commands in order, so a parent must come
// before its children.
func Install(reg *cmdtree.Registry, cmds []config.CommandConfig) error {
	for i, c := range cmds {
		var action cmdtree.Action
		if c.Reply != "" {
			action = Reply(c.Reply)
		}
		if _, err := reg.Register(strings.TrimSpace(c.Name), c.Comment, action, c.Parent); err != nil {
			return fmt.Errorf("commands[%d]: %w", i, err)
		}
	}
	return nil
}

// Info reports the arguments it was called with.
func Info(args []string, out *cmdtree.Output) (int, error) {
	first := ""
	if len(args) > 0 {
		first = args[0]
	}
	return out.Printf("Info: argc=%d, arg[0]=%s\n", len(args), first), nil
}

// Reply returns an action printing text with "{args}" and "{argc}"
// substituted. A reply that expands to nothing counts as a failure.
func Reply(text string) cmdtree.Action {
	return func(args []string, out *cmdtree.Output) (int, error) {
		r := strings.NewReplacer(
			"{args}", strings.Join(args, " "),
			"{argc}", strconv.Itoa(len(args)),
		)
		n, _ := out.WriteString(r.Replace(text))
		return n, nil
	}
}
