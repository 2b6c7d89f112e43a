// Package config provides configuration management for navsim using Viper
// for loading from files, environment variables, and command-line flags.
//
// Precedence, highest first: flags, NAVSIM_<SECTION>_<OPTION> environment
// variables, the config file (YAML or TOML), defaults.
package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/BrandonKowalski/navigator/pkg/navigator/constants"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

var (
	ErrInvalidLogLevel = errors.New("config: invalid log level")
	ErrInvalidAddr     = errors.New("config: invalid listen address")
	ErrInvalidLanguage = errors.New("config: invalid language tag")
	ErrInvalidDuration = errors.New("config: duration must be positive")
	ErrInvalidBuffer   = errors.New("config: send buffer must be positive")
)

type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Server   ServerConfig   `mapstructure:"server"`
	Scenario ScenarioConfig `mapstructure:"scenario"`
}

type LogConfig struct {
	Level         string `mapstructure:"level"`
	InternalLevel string `mapstructure:"internal_level"`
	Path          string `mapstructure:"path"`
}

type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	SendBuffer     int           `mapstructure:"send_buffer"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	ShutdownGrace  time.Duration `mapstructure:"shutdown_grace"`
}

type ScenarioConfig struct {
	Watch    bool          `mapstructure:"watch"`
	Debounce time.Duration `mapstructure:"debounce"`
	Language string        `mapstructure:"language"`
}

// Keys shared by flags and the config file.
const (
	KeyLogLevel         = "log.level"
	KeyLogInternalLevel = "log.internal_level"
	KeyLogPath          = "log.path"
	KeyServerAddr       = "server.addr"
	KeyServerOrigins    = "server.allowed_origins"
	KeyServerSendBuffer = "server.send_buffer"
	KeyServerWrite      = "server.write_timeout"
	KeyServerShutdown   = "server.shutdown_grace"
	KeyScenarioWatch    = "scenario.watch"
	KeyScenarioDebounce = "scenario.debounce"
	KeyScenarioLanguage = "scenario.language"
)

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	level := "info"
	if constants.IsDevMode() {
		level = "debug"
	}
	v.SetDefault(KeyLogLevel, level)
	v.SetDefault(KeyLogInternalLevel, "warn")
	v.SetDefault(KeyLogPath, "")
	v.SetDefault(KeyServerAddr, constants.DefaultListenAddr)
	v.SetDefault(KeyServerOrigins, []string{})
	v.SetDefault(KeyServerSendBuffer, constants.DefaultClientSendBuffer)
	v.SetDefault(KeyServerWrite, constants.DefaultWriteTimeout)
	v.SetDefault(KeyServerShutdown, constants.DefaultShutdownGracePeriod)
	v.SetDefault(KeyScenarioWatch, false)
	v.SetDefault(KeyScenarioDebounce, constants.DefaultWatchDebounce)
	v.SetDefault(KeyScenarioLanguage, "en")
}

// SetupEnv enables NAVSIM_ prefixed environment overrides on v.
func SetupEnv(v *viper.Viper) {
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// BindFlags binds the flags in fs that map to config keys. Flags that are
// not defined in fs are skipped.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	bindings := map[string]string{
		"log-level":     KeyLogLevel,
		"log-path":      KeyLogPath,
		"addr":          KeyServerAddr,
		"allow-origin":  KeyServerOrigins,
		"watch":         KeyScenarioWatch,
		"debounce":      KeyScenarioDebounce,
		"language":      KeyScenarioLanguage,
		"send-buffer":   KeyServerSendBuffer,
		"write-timeout": KeyServerWrite,
	}
	for name, key := range bindings {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("config: bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load unmarshals v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	// Viper does not split comma separated env values for slices.
	if len(cfg.Server.AllowedOrigins) == 1 && strings.Contains(cfg.Server.AllowedOrigins[0], ",") {
		cfg.Server.AllowedOrigins = splitList(cfg.Server.AllowedOrigins[0])
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field and returns the first problem found.
func (c *Config) Validate() error {
	for _, level := range []string{c.Log.Level, c.Log.InternalLevel} {
		if !validLevel(level) {
			return fmt.Errorf("%w: %q (supported: debug, info, warn, error)", ErrInvalidLogLevel, level)
		}
	}

	if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidAddr, c.Server.Addr, err)
	}
	if c.Server.SendBuffer <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBuffer, c.Server.SendBuffer)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("%w: server.write_timeout=%s", ErrInvalidDuration, c.Server.WriteTimeout)
	}
	if c.Server.ShutdownGrace <= 0 {
		return fmt.Errorf("%w: server.shutdown_grace=%s", ErrInvalidDuration, c.Server.ShutdownGrace)
	}

	if c.Scenario.Debounce <= 0 {
		return fmt.Errorf("%w: scenario.debounce=%s", ErrInvalidDuration, c.Scenario.Debounce)
	}
	if _, err := language.Parse(c.Scenario.Language); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidLanguage, c.Scenario.Language, err)
	}
	return nil
}

func validLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
