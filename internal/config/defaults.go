package config

import (
	"os"
	"path/filepath"
	"time"

	"gitlink/internal/git"
)

// Default values
const (
	DefaultRemote    = "origin"
	DefaultBackend   = git.BackendExec
	DefaultTimeout   = 10 * time.Second
	DefaultClipboard = true
	DefaultOpen      = false
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "pretty"
)

// ConfigDir returns the per-user config directory, e.g. ~/.config/gitlink.
func ConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".gitlink"
	}
	return filepath.Join(dir, "gitlink")
}

// Default returns a validated config with every default applied.
func Default() *Config {
	return &Config{
		Remote:    RemoteConfig{Preferred: DefaultRemote},
		VCS:       VCSConfig{Backend: DefaultBackend, Timeout: DefaultTimeout},
		Clipboard: ClipboardConfig{Enabled: DefaultClipboard},
		Browser:   BrowserConfig{Open: DefaultOpen},
		Logging:   LoggingConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}
