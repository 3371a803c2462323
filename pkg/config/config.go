package config

import (
	"github.com/microc-lang/microc/pkg/cli"
)

type Warning int

const (
	WarnJunk Warning = iota
	WarnEmptyCall
	WarnCount
)

type Info struct {
	Name        string
	Enabled     bool
	Description string
}

type Config struct {
	Warnings   map[Warning]Info
	WarningMap map[string]Warning
}

func New() *Config {
	cfg := &Config{
		Warnings:   make(map[Warning]Info),
		WarningMap: make(map[string]Warning),
	}

	warnings := map[Warning]Info{
		WarnJunk:      {"junk", true, "Warn when input outside the begin...end region is ignored."},
		WarnEmptyCall: {"empty-call", true, "Warn when read or write is called with no arguments."},
	}

	cfg.Warnings = warnings
	for wt, info := range warnings {
		cfg.WarningMap[info.Name] = wt
	}
	return cfg
}

func (c *Config) SetWarning(wt Warning, enabled bool) {
	if info, ok := c.Warnings[wt]; ok {
		info.Enabled = enabled
		c.Warnings[wt] = info
	}
}

func (c *Config) IsWarningEnabled(wt Warning) bool { return c.Warnings[wt].Enabled }

// SetupFlagGroups registers -W<name> / -Wno-<name> flags for every
// warning and returns the entries so the command can apply overrides
// after flag parsing.
func (c *Config) SetupFlagGroups(fs *cli.FlagSet) []cli.FlagGroupEntry {
	entries := make([]cli.FlagGroupEntry, WarnCount)
	for i := Warning(0); i < WarnCount; i++ {
		info := c.Warnings[i]
		entries[i] = cli.FlagGroupEntry{
			Name:     info.Name,
			Prefix:   "W",
			Usage:    info.Description,
			Enabled:  new(bool),
			Disabled: new(bool),
		}
	}
	fs.AddFlagGroup("Warnings", "warning", entries)
	return entries
}

// ApplyGroupOverrides folds parsed -W flags back into the registry.
// An explicit -Wno- wins over -W for the same warning.
func (c *Config) ApplyGroupOverrides(entries []cli.FlagGroupEntry) {
	for i, entry := range entries {
		if entry.Enabled != nil && *entry.Enabled {
			c.SetWarning(Warning(i), true)
		}
		if entry.Disabled != nil && *entry.Disabled {
			c.SetWarning(Warning(i), false)
		}
	}
}
