package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yonasBSD/gitoxide/ripsrc/config"
)

func testCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	flags := cmd.Flags()
	flags.String("config", "", "")
	flags.Bool("debug", false, "")
	flags.StringArrayP("lines", "L", nil, "")
	flags.String("since", "", "")
	flags.String("format", config.FormatAnnotate, "")
	flags.String("diff", config.DiffDifflib, "")
	flags.Bool("no-color", false, "")
	return cmd
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(testCmd())
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	assert := assert.New(t)
	p := filepath.Join(t.TempDir(), "c.toml")
	require.NoError(t, os.WriteFile(p, []byte("[blame]\nsince = \"2020-01-01\"\n[output]\nformat = \"records\"\n"), 0644))

	cmd := testCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--config", p, "-L", "1,2", "-L", "5,+1", "--format", "msgp", "--no-color", "--debug"}))
	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal("2020-01-01", cfg.Blame.Since)
	assert.Equal([]string{"1,2", "5,+1"}, cfg.Blame.Ranges)
	assert.Equal(config.FormatMsgp, cfg.Output.Format)
	assert.False(cfg.Output.Color)
	assert.True(cfg.Log.Debug)
}

func TestLoadConfigInvalid(t *testing.T) {
	cmd := testCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--diff", "patience"}))
	_, err := loadConfig(cmd)
	assert.Error(t, err)
}
