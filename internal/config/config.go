package config

import (
	"fmt"
	"time"

	"gitlink/internal/git"
)

// Config represents the application configuration
type Config struct {
	Remote    RemoteConfig    `mapstructure:"remote" yaml:"remote"`
	VCS       VCSConfig       `mapstructure:"vcs" yaml:"vcs"`
	Clipboard ClipboardConfig `mapstructure:"clipboard" yaml:"clipboard"`
	Browser   BrowserConfig   `mapstructure:"browser" yaml:"browser"`
	Workspace WorkspaceConfig `mapstructure:"workspace" yaml:"workspace"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
}

// RemoteConfig controls remote selection
type RemoteConfig struct {
	Preferred string `mapstructure:"preferred" yaml:"preferred"`
}

// VCSConfig selects the git backend
type VCSConfig struct {
	Backend string        `mapstructure:"backend" yaml:"backend"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// ClipboardConfig contains clipboard settings
type ClipboardConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// BrowserConfig contains browser settings
type BrowserConfig struct {
	Open bool `mapstructure:"open" yaml:"open"`
}

// WorkspaceConfig lists workspace folders used when none are given on the command line
type WorkspaceConfig struct {
	Folders []string `mapstructure:"folders" yaml:"folders"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate repairs out-of-range values and rejects unknown backends.
func (c *Config) Validate() error {
	if c.Remote.Preferred == "" {
		c.Remote.Preferred = DefaultRemote
	}
	if c.VCS.Backend == "" {
		c.VCS.Backend = DefaultBackend
	}
	if _, err := git.OpenerFor(c.VCS.Backend); err != nil {
		return fmt.Errorf("vcs.backend: %w", err)
	}
	if c.VCS.Timeout <= 0 {
		c.VCS.Timeout = DefaultTimeout
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format != "json" {
		c.Logging.Format = DefaultLogFormat
	}
	return nil
}
