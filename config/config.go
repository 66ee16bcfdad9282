// Package config loads the console and command-tree configuration from a
// TOML or YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/clems4ever/cmdtree/cmdtree"
	"github.com/clems4ever/cmdtree/tokenizer"
)

const (
	DefaultPrompt      = "console> "
	DefaultBufferSize  = 256
	DefaultQuitCommand = "/q"
)

// Config holds the complete application configuration.
type Config struct {
	Console  ConsoleConfig   `toml:"console" yaml:"console"`
	Log      LogConfig       `toml:"log" yaml:"log"`
	Commands []CommandConfig `toml:"commands" yaml:"commands"`
}

// ConsoleConfig holds settings of the line-oriented front end.
type ConsoleConfig struct {
	Prompt      string `toml:"prompt" yaml:"prompt"`
	BufferSize  int    `toml:"buffer_size" yaml:"buffer_size"`
	MaxTokens   int    `toml:"max_tokens" yaml:"max_tokens"`
	Separator   string `toml:"separator" yaml:"separator"`
	QuitCommand string `toml:"quit_command" yaml:"quit_command"`
	// NoBuiltins skips the builtin "info" command.
	NoBuiltins bool `toml:"no_builtins" yaml:"no_builtins"`
}

// LogConfig holds logging settings. Empty fields defer to the CMDTREE_ENV
// and CMDTREE_LOG_LEVEL environment variables.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
	Mode  string `toml:"mode" yaml:"mode"`
	File  string `toml:"file" yaml:"file"`
}

// CommandConfig declares one command. Parent is the space separated path of
// an earlier entry, or empty for a root command. Reply, when set, is printed
// by the command with "{args}" replaced by its arguments and "{argc}" by their
// count. Commands without a reply only group subcommands.
type CommandConfig struct {
	Name    string `toml:"name" yaml:"name"`
	Comment string `toml:"comment" yaml:"comment"`
	Parent  string `toml:"parent" yaml:"parent"`
	Reply   string `toml:"reply" yaml:"reply"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Console: ConsoleConfig{
			Prompt:      DefaultPrompt,
			BufferSize:  DefaultBufferSize,
			MaxTokens:   tokenizer.DefaultMaxTokens,
			Separator:   cmdtree.DefaultSeparator,
			QuitCommand: DefaultQuitCommand,
		},
	}
}

// Load reads path, picking the decoder from the file extension (.toml,
// .yaml or .yml). Values missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TOML config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown keys in TOML config %s: %v", path, undecoded)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse YAML config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the console cannot use.
// Command entries are checked against the registry's own limits when they
// are installed.
func (c *Config) Validate() error {
	if c.Console.BufferSize <= cmdtree.TerminatorLen {
		return fmt.Errorf("console.buffer_size must be greater than %d, got %d", cmdtree.TerminatorLen, c.Console.BufferSize)
	}
	if c.Console.MaxTokens < 0 {
		return fmt.Errorf("console.max_tokens must not be negative, got %d", c.Console.MaxTokens)
	}
	if c.Console.QuitCommand == "" {
		return fmt.Errorf("console.quit_command must not be empty")
	}
	for i, cmd := range c.Commands {
		if strings.TrimSpace(cmd.Name) == "" {
			return fmt.Errorf("commands[%d]: name is required", i)
		}
	}
	return nil
}

// Write encodes the configuration as TOML.
func (c *Config) Write(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
