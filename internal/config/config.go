// Package config loads client settings from defaults, an optional YAML file,
// ASEMPV_* environment variables and command-line flags, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"asempv/internal/backend"
	"asempv/internal/pager"
)

const (
	EnvPrefix      = "ASEMPV"
	ConfigFilename = "config.yml"
	defaultDirName = ".asempv"
)

// Keys shared by the config file, env (upper-cased, "-" as "_") and flags.
const (
	KeyHome            = "home"
	KeyBaseURL         = "base-url"
	KeyPageSize        = "page-size"
	KeyOrdering        = "ordering"
	KeyLang            = "lang"
	KeyPartner         = "partner"
	KeyConnectTimeout  = "connect-timeout"
	KeyReadTimeout     = "read-timeout"
	KeyWriteTimeout    = "write-timeout"
	KeyTokenPassphrase = "token-passphrase"
	KeyDebug           = "debug"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Home            string        `mapstructure:"home"`
	BaseURL         string        `mapstructure:"base-url"`
	PageSize        int           `mapstructure:"page-size"`
	Ordering        string        `mapstructure:"ordering"`
	Lang            string        `mapstructure:"lang"`
	Partner         string        `mapstructure:"partner"`
	ConnectTimeout  time.Duration `mapstructure:"connect-timeout"`
	ReadTimeout     time.Duration `mapstructure:"read-timeout"`
	WriteTimeout    time.Duration `mapstructure:"write-timeout"`
	TokenPassphrase string        `mapstructure:"token-passphrase"`
	Debug           bool          `mapstructure:"debug"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

// LogDir is where the log file goes.
func (c Config) LogDir() string { return filepath.Join(c.Home, "logs") }

// Load resolves the configuration. path selects the config file; when empty
// <home>/config.yml is tried. flags may be nil; only flags the user actually
// set override lower layers.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	var cfg Config

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	defaultHome, err := defaultHomeDir()
	if err != nil {
		return cfg, err
	}
	v.SetDefault(KeyHome, defaultHome)
	v.SetDefault(KeyBaseURL, backend.DefaultBaseURL)
	v.SetDefault(KeyPageSize, pager.DefaultPageSize)
	v.SetDefault(KeyOrdering, pager.DefaultOrdering)
	v.SetDefault(KeyLang, backend.DefaultLang)
	v.SetDefault(KeyPartner, "")
	v.SetDefault(KeyConnectTimeout, 30*time.Second)
	v.SetDefault(KeyReadTimeout, 30*time.Second)
	v.SetDefault(KeyWriteTimeout, 30*time.Second)
	v.SetDefault(KeyTokenPassphrase, "")
	v.SetDefault(KeyDebug, false)

	if flags != nil {
		for _, key := range []string{KeyHome, KeyBaseURL, KeyPageSize, KeyLang, KeyPartner, KeyTokenPassphrase, KeyDebug} {
			if f := flags.Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return cfg, fmt.Errorf("binding flag %s: %w", key, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigFile(filepath.Join(expandHome(v.GetString(KeyHome)), ConfigFilename))
	}
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
	} else {
		cfg.File = v.ConfigFileUsed()
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Home = expandHome(cfg.Home)
	return cfg, cfg.Validate()
}

// Validate checks the values the client cannot run without.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %s must be an absolute URL, got %q", ErrInvalid, KeyBaseURL, c.BaseURL)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalid, KeyPageSize, c.PageSize)
	}
	for key, d := range map[string]time.Duration{
		KeyConnectTimeout: c.ConnectTimeout,
		KeyReadTimeout:    c.ReadTimeout,
		KeyWriteTimeout:   c.WriteTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %s", ErrInvalid, key, d)
		}
	}
	if c.Home == "" {
		return fmt.Errorf("%w: %s is empty", ErrInvalid, KeyHome)
	}
	return nil
}

func defaultHomeDir() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(dir, defaultDirName), nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if dir, err := os.UserHomeDir(); err == nil {
			return filepath.Join(dir, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
