package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTree = `
[console]
prompt = "t> "

[[commands]]
name = "show"
comment = "Show information"

[[commands]]
name = "version"
comment = "Software version"
parent = "show"
reply = "v1\n"

[[commands]]
name = "vlan"
comment = "VLAN table"
parent = "show"
reply = "{argc} vlan(s)\n"
`

// run executes the root command with args and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	cfgFile, oneShot, verbose, plain, strict, maxTokens = "", "", false, true, false, 0

	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeTree(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tree.toml")
	require.NoError(t, os.WriteFile(path, []byte(testTree), 0644))
	return path
}

func TestRoot_OneShot(t *testing.T) {
	out, err := run(t, "", "--config", writeTree(t), "-c", "show version")
	require.NoError(t, err)
	assert.Equal(t, "v1\n", out)

	out, err = run(t, "", "--config", writeTree(t), "-c", "show")
	require.NoError(t, err)
	assert.Equal(t, "version - Software version\nvlan - VLAN table\n", out)
}

func TestRoot_Console(t *testing.T) {
	out, err := run(t, "show vlan 1 2\n/nope\n/q\n", "--config", writeTree(t))
	require.NoError(t, err)
	assert.Equal(t, "t> 2 vlan(s)\nt> Unrecognized command: /nope\nt> Exit console.\n", out)
}

func TestConsoleCommand(t *testing.T) {
	out, err := run(t, "info z\n", "console")
	require.NoError(t, err)
	assert.Equal(t, "console> Info: argc=1, arg[0]=z\nconsole> \n", out)
}

func TestExec(t *testing.T) {
	out, err := run(t, "", "exec", "--config", writeTree(t), "show", "vlan", "10")
	require.NoError(t, err)
	assert.Equal(t, "1 vlan(s)\n", out)

	out, err = run(t, "", "exec")
	require.NoError(t, err)
	assert.Equal(t, "info - System Information\n", out)
}

func TestExec_DashWords(t *testing.T) {
	out, err := run(t, "", "exec", "info", "-x", "--strict")
	require.NoError(t, err)
	assert.Equal(t, "Info: argc=2, arg[0]=-x\n", out)
}

func TestExec_Strict(t *testing.T) {
	out, err := run(t, "", "exec", "--strict", "--config", writeTree(t), "show", "version")
	require.NoError(t, err)
	assert.Equal(t, "v1\n", out)

	cfg := filepath.Join(t.TempDir(), "group.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("commands:\n  - name: group\n    comment: Empty group\n"), 0644))

	out, err = run(t, "", "exec", "--strict", "--config", cfg, "group")
	assert.Error(t, err)
	assert.Contains(t, out, "Missing parameter or unsupported command.")
}

func TestExec_Completion(t *testing.T) {
	tree := writeTree(t)

	out, err := run(t, "", "__complete", "exec", "--config", tree, "show", "v")
	require.NoError(t, err)
	assert.Contains(t, out, "version\tSoftware version\n")
	assert.Contains(t, out, "vlan\tVLAN table\n")
	assert.NotContains(t, out, "info")

	out, err = run(t, "", "__complete", "exec", "--config", tree, "")
	require.NoError(t, err)
	assert.Contains(t, out, "info\tSystem Information\n")
	assert.Contains(t, out, "show\tShow information\n")
}

func TestTree(t *testing.T) {
	out, err := run(t, "", "tree", "--config", writeTree(t))
	require.NoError(t, err)
	assert.Equal(t, "info - System Information\nshow/ - Show information\n  version - Software version\n  vlan - VLAN table\n", out)
}

func TestComplete(t *testing.T) {
	out, err := run(t, "", "complete", "--config", writeTree(t), "show v")
	require.NoError(t, err)
	assert.Equal(t, "show version\nshow vlan\n", out)
}

func TestTokenize(t *testing.T) {
	out, err := run(t, "", "tokenize", "  show \t version  ")
	require.NoError(t, err)
	assert.Equal(t, "Tokens (2): [show | version]\n", out)

	out, err = run(t, "a b c\n\nd\n", "tokenize", "-n", "2")
	require.NoError(t, err)
	assert.Equal(t, "Tokens (2): [a | b]\nTruncated after 2 tokens\nTokens (0): []\nTokens (1): [d]\n", out)
}

func TestConfigCommand(t *testing.T) {
	out, err := run(t, "", "config", "--config", writeTree(t))
	require.NoError(t, err)
	assert.Contains(t, out, `prompt = "t> "`)
	assert.Contains(t, out, "[[commands]]")
	assert.Contains(t, out, `name = "version"`)
}

func TestBadConfig(t *testing.T) {
	_, err := run(t, "", "tree", "--config", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	cfg := filepath.Join(t.TempDir(), "orphan.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[[commands]]\nname = \"x\"\nparent = \"nowhere\"\n"), 0644))
	_, err = run(t, "", "tree", "--config", cfg)
	assert.ErrorContains(t, err, "failed to build command tree")
}

func TestLogLevelFromEnvironment(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "cmdtree.log")
	cfg := filepath.Join(t.TempDir(), "log.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[log]\nfile = \""+filepath.ToSlash(logFile)+"\"\n"), 0644))

	t.Setenv("CMDTREE_ENV", "")
	t.Setenv("CMDTREE_LOG_LEVEL", "")
	_, err := run(t, "", "tree", "--config", cfg)
	require.NoError(t, err)
	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "command tree ready")

	t.Setenv("CMDTREE_LOG_LEVEL", "debug")
	_, err = run(t, "", "tree", "--config", cfg)
	require.NoError(t, err)
	data, err = os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "command tree ready")
}
