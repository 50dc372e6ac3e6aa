package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Load reads defaults, the config file, GITLINK_* environment variables and
// any flags already bound to v, in increasing precedence. An explicit
// configFile must exist; the default locations are optional.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	v.SetEnvPrefix("GITLINK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("remote.preferred", DefaultRemote)

	v.SetDefault("vcs.backend", DefaultBackend)
	v.SetDefault("vcs.timeout", DefaultTimeout)

	v.SetDefault("clipboard.enabled", DefaultClipboard)
	v.SetDefault("browser.open", DefaultOpen)
	v.SetDefault("workspace.folders", []string{})

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}
