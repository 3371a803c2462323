package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microc-lang/microc/pkg/cli"
)

func TestDefaults(t *testing.T) {
	cfg := New()
	assert.True(t, cfg.IsWarningEnabled(WarnJunk))
	assert.True(t, cfg.IsWarningEnabled(WarnEmptyCall))
	assert.Equal(t, WarnJunk, cfg.WarningMap["junk"])
	assert.Equal(t, WarnEmptyCall, cfg.WarningMap["empty-call"])
}

func TestSetWarning(t *testing.T) {
	cfg := New()
	cfg.SetWarning(WarnJunk, false)
	assert.False(t, cfg.IsWarningEnabled(WarnJunk))
	assert.True(t, cfg.IsWarningEnabled(WarnEmptyCall))

	cfg.SetWarning(WarnJunk, true)
	assert.True(t, cfg.IsWarningEnabled(WarnJunk))
}

func TestFlagGroupOverrides(t *testing.T) {
	cfg := New()
	fs := cli.NewFlagSet("test")
	entries := cfg.SetupFlagGroups(fs)

	require.NoError(t, fs.Parse([]string{"-Wno-junk"}))
	cfg.ApplyGroupOverrides(entries)

	assert.False(t, cfg.IsWarningEnabled(WarnJunk))
	assert.True(t, cfg.IsWarningEnabled(WarnEmptyCall))
}

func TestDisableWinsOverEnable(t *testing.T) {
	cfg := New()
	fs := cli.NewFlagSet("test")
	entries := cfg.SetupFlagGroups(fs)

	require.NoError(t, fs.Parse([]string{"-Wempty-call", "-Wno-empty-call"}))
	cfg.ApplyGroupOverrides(entries)

	assert.False(t, cfg.IsWarningEnabled(WarnEmptyCall))
}

func TestOverridesWithoutFlagsKeepDefaults(t *testing.T) {
	cfg := New()
	fs := cli.NewFlagSet("test")
	entries := cfg.SetupFlagGroups(fs)

	require.NoError(t, fs.Parse(nil))
	cfg.ApplyGroupOverrides(entries)

	assert.True(t, cfg.IsWarningEnabled(WarnJunk))
	assert.True(t, cfg.IsWarningEnabled(WarnEmptyCall))
}
