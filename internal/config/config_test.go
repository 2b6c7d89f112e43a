package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.InternalLevel)
	assert.Equal(t, "127.0.0.1:8787", cfg.Server.Addr)
	assert.Equal(t, 16, cfg.Server.SendBuffer)
	assert.Equal(t, 5*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownGrace)
	assert.Equal(t, 200*time.Millisecond, cfg.Scenario.Debounce)
	assert.Equal(t, "en", cfg.Scenario.Language)
	assert.False(t, cfg.Scenario.Watch)
	assert.Empty(t, cfg.Server.AllowedOrigins)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(v *viper.Viper)
		expectError error
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "overrides",
			setup: func(v *viper.Viper) {
				v.Set(KeyLogLevel, "debug")
				v.Set(KeyServerAddr, ":9000")
				v.Set(KeyScenarioDebounce, "1s")
				v.Set(KeyScenarioLanguage, "de")
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.Log.Level)
				assert.Equal(t, ":9000", cfg.Server.Addr)
				assert.Equal(t, time.Second, cfg.Scenario.Debounce)
				assert.Equal(t, "de", cfg.Scenario.Language)
			},
		},
		{
			name:  "comma separated origins",
			setup: func(v *viper.Viper) { v.Set(KeyServerOrigins, []string{"a.example, b.example"}) },
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"a.example", "b.example"}, cfg.Server.AllowedOrigins)
			},
		},
		{
			name:        "invalid log level",
			setup:       func(v *viper.Viper) { v.Set(KeyLogLevel, "loud") },
			expectError: ErrInvalidLogLevel,
		},
		{
			name:        "invalid internal log level",
			setup:       func(v *viper.Viper) { v.Set(KeyLogInternalLevel, "") },
			expectError: ErrInvalidLogLevel,
		},
		{
			name:        "address without port",
			setup:       func(v *viper.Viper) { v.Set(KeyServerAddr, "localhost") },
			expectError: ErrInvalidAddr,
		},
		{
			name:        "zero send buffer",
			setup:       func(v *viper.Viper) { v.Set(KeyServerSendBuffer, 0) },
			expectError: ErrInvalidBuffer,
		},
		{
			name:        "negative debounce",
			setup:       func(v *viper.Viper) { v.Set(KeyScenarioDebounce, "-1s") },
			expectError: ErrInvalidDuration,
		},
		{
			name:        "zero write timeout",
			setup:       func(v *viper.Viper) { v.Set(KeyServerWrite, 0) },
			expectError: ErrInvalidDuration,
		},
		{
			name:        "bad language",
			setup:       func(v *viper.Viper) { v.Set(KeyScenarioLanguage, "not a tag!") },
			expectError: ErrInvalidLanguage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			tt.setup(v)

			cfg, err := Load(v)
			if tt.expectError != nil {
				require.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "navsim.yml",
			content: `log:
  level: error
server:
  addr: "0.0.0.0:7000"
scenario:
  watch: true
  debounce: 50ms
`,
		},
		{
			name: "toml",
			file: "navsim.toml",
			content: `[log]
level = "error"

[server]
addr = "0.0.0.0:7000"

[scenario]
watch = true
debounce = "50ms"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			v := newViper()
			v.SetConfigFile(path)
			require.NoError(t, v.ReadInConfig())

			cfg, err := Load(v)
			require.NoError(t, err)
			assert.Equal(t, "error", cfg.Log.Level)
			assert.Equal(t, "0.0.0.0:7000", cfg.Server.Addr)
			assert.True(t, cfg.Scenario.Watch)
			assert.Equal(t, 50*time.Millisecond, cfg.Scenario.Debounce)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("NAVSIM_SERVER_ADDR", "127.0.0.1:9999")
	t.Setenv("NAVSIM_SCENARIO_WATCH", "true")

	v := newViper()
	SetupEnv(v)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	assert.True(t, cfg.Scenario.Watch)
}

func TestBindFlags(t *testing.T) {
	fs := pflag.NewFlagSet("navsim", pflag.ContinueOnError)
	fs.String("log-level", "info", "")
	fs.String("addr", "", "")
	fs.Bool("watch", false, "")

	v := newViper()
	require.NoError(t, BindFlags(v, fs))
	require.NoError(t, fs.Parse([]string{"--log-level=debug", "--addr=:1234", "--watch"}))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":1234", cfg.Server.Addr)
	assert.True(t, cfg.Scenario.Watch)
}

func TestBindFlagsUnchangedFlagKeepsDefault(t *testing.T) {
	fs := pflag.NewFlagSet("navsim", pflag.ContinueOnError)
	fs.String("addr", "0.0.0.0:1", "")

	v := newViper()
	require.NoError(t, BindFlags(v, fs))
	require.NoError(t, fs.Parse(nil))

	assert.Equal(t, "127.0.0.1:8787", v.GetString(KeyServerAddr))
}
