package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultPrompt, cfg.Console.Prompt)
	assert.Equal(t, 256, cfg.Console.BufferSize)
	assert.Equal(t, 32, cfg.Console.MaxTokens)
	assert.Equal(t, "-", cfg.Console.Separator)
	assert.Equal(t, "/q", cfg.Console.QuitCommand)
	assert.Empty(t, cfg.Commands)
	assert.Empty(t, cfg.Log.Level, "level left to the environment")
	assert.Empty(t, cfg.Log.Mode, "mode left to the environment")
	assert.NoError(t, cfg.Validate())
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "tree.toml", `
[console]
prompt = "router> "
buffer_size = 512

[log]
level = "debug"
mode = "dev"

[[commands]]
name = "show"
comment = "Show information"

[[commands]]
name = "version"
comment = "Software version"
parent = "show"
reply = "v1.2.3\n"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "router> ", cfg.Console.Prompt)
	assert.Equal(t, 512, cfg.Console.BufferSize)
	assert.Equal(t, DefaultQuitCommand, cfg.Console.QuitCommand, "missing keys keep defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
	require.Len(t, cfg.Commands, 2)
	assert.Equal(t, CommandConfig{Name: "version", Comment: "Software version", Parent: "show", Reply: "v1.2.3\n"}, cfg.Commands[1])
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "tree.yaml", `
console:
  max_tokens: 8
  separator: ":"
commands:
  - name: net
    comment: Networking
  - name: ping
    comment: Ping a host
    parent: net
    reply: "pinging {args}\n"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Console.MaxTokens)
	assert.Equal(t, ":", cfg.Console.Separator)
	assert.Equal(t, DefaultPrompt, cfg.Console.Prompt)
	require.Len(t, cfg.Commands, 2)
	assert.Equal(t, "net", cfg.Commands[1].Parent)
}

func TestLoad_EmptyYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.yml", ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "failed to read config file")

	_, err = Load(writeFile(t, "tree.json", "{}"))
	assert.ErrorContains(t, err, "unsupported config format")

	_, err = Load(writeFile(t, "bad.toml", "[console\n"))
	assert.ErrorContains(t, err, "failed to parse TOML")

	_, err = Load(writeFile(t, "unknown.toml", "[console]\ncolour = \"red\"\n"))
	assert.ErrorContains(t, err, "unknown keys")

	_, err = Load(writeFile(t, "unknown.yaml", "console:\n  colour: red\n"))
	assert.ErrorContains(t, err, "failed to parse YAML")

	_, err = Load(writeFile(t, "small.toml", "[console]\nbuffer_size = 1\n"))
	assert.ErrorContains(t, err, "buffer_size")

	_, err = Load(writeFile(t, "noname.yaml", "commands:\n  - comment: anonymous\n"))
	assert.ErrorContains(t, err, "name is required")
}

func TestLoad_ExpandsEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.toml"), []byte("[console]\nprompt = \"$ \"\n"), 0644))
	t.Setenv("CMDTREE_TEST_DIR", dir)

	cfg, err := Load("$CMDTREE_TEST_DIR/c.toml")
	require.NoError(t, err)
	assert.Equal(t, "$ ", cfg.Console.Prompt)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Console.MaxTokens = -1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Console.QuitCommand = ""
	assert.Error(t, cfg.Validate())
}

func TestWrite_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Commands = []CommandConfig{
		{Name: "info", Comment: "System Information", Reply: "ok\n"},
	}

	var buf bytes.Buffer
	require.NoError(t, cfg.Write(&buf))

	path := writeFile(t, "out.toml", buf.String())
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
