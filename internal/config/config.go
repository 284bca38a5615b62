package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Config holds application configuration.
type Config struct {
	Log      LogConfig
	Security SecurityConfig
	UI       UIConfig
}

// LogConfig holds log file settings. An empty Path discards logs.
type LogConfig struct {
	Path       string
	Level      string
	MaxSizeMB  int `mapstructure:"max_size_mb"`
	MaxBackups int `mapstructure:"max_backups"`
	MaxAgeDays int `mapstructure:"max_age_days"`
}

// SecurityConfig holds credential hashing settings.
type SecurityConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	AltScreen          bool `mapstructure:"alt_screen"`
	SimilarityDistance int  `mapstructure:"similarity_distance"`
}

// Flag names understood by Load.
const (
	FlagConfig   = "config"
	FlagLogLevel = "log-level"
	FlagLogPath  = "log-path"
)

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", "path to config.toml")
	fs.String(FlagLogLevel, "", "log level (debug, info, warn, error)")
	fs.String(FlagLogPath, "", "log file path")
}

// Load reads configuration from defaults, file, env and flags, later sources
// winning. Env var overrides use prefix USERMGR_. fs may be nil.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "usermgr", "usermgr.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("security.bcrypt_cost", bcrypt.DefaultCost)
	v.SetDefault("ui.alt_screen", true)
	v.SetDefault("ui.similarity_distance", 2)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("USERMGR_CONFIG")
	if fs != nil {
		if f := fs.Lookup(FlagConfig); f != nil && f.Changed {
			cfgPath = f.Value.String()
		}
	}
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "usermgr"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("USERMGR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for key, name := range map[string]string{"log.level": FlagLogLevel, "log.path": FlagLogPath} {
			if f := fs.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects values the rest of the program cannot use.
func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Security.BcryptCost < bcrypt.MinCost || c.Security.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("security.bcrypt_cost: %d outside [%d, %d]", c.Security.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}
