package config

import (
	"path/filepath"
	"testing"

	"github.com/Thaonnor/finsight/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("FINSIGHT_DATA", "/var/lib/finsight")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "tilde alone", input: "~", want: home},
		{name: "tilde prefix", input: "~/dev/finsight.db", want: filepath.Join(home, "dev", "finsight.db")},
		{name: "env var", input: "$FINSIGHT_DATA/finsight.db", want: "/var/lib/finsight/finsight.db"},
		{name: "relative untouched", input: "src-tauri/finsight.db", want: "src-tauri/finsight.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FINSIGHT_DB", "")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, DefaultDatabasePath, cfg.DatabasePath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.False(t, cfg.AutoCheckpoint)
}

func TestLoad_Precedence(t *testing.T) {
	t.Setenv("FINSIGHT_DB", "/tmp/from-env.db")

	v := viper.New()
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-env.db", cfg.DatabasePath)

	v.Set("database.path", "/tmp/from-viper.db")
	v.Set("seed.checkpoint", true)
	cfg, err = Load(v)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-viper.db", cfg.DatabasePath)
	assert.True(t, cfg.AutoCheckpoint)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "bad log level", key: "logging.level", val: "verbose"},
		{name: "bad log format", key: "logging.format", val: "xml"},
		{name: "directory path", key: "database.path", val: "/tmp/finsight/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set(tt.key, tt.val)
			_, err := Load(v)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}
}
