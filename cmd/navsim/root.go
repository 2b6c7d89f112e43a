// Command navsim drives the pokedex navigator without a UI: it plays scripted
// navigation scenarios, serves the back stack to remote clients over
// websocket, and encodes or decodes deep links.
//
// Configuration, highest priority first:
//  1. Command-line flags (--config, --log-level, --addr, ...)
//  2. NAVSIM_CONFIG_FILE: path to a config file
//  3. NAVSIM_<SECTION>_<OPTION> environment variables (NAVSIM_SERVER_ADDR, ...)
//  4. .navsim.yml in the current directory
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/BrandonKowalski/navigator/internal/config"
	"github.com/BrandonKowalski/navigator/pkg/navigator"
	"github.com/BrandonKowalski/navigator/pkg/navigator/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "navsim",
	Short: "Headless driver for the pokedex navigator",
	Long: `navsim drives the pokedex navigator without a UI.

Commands:
  navsim run scenario.yaml          Play a navigation scenario and check its expectations
  navsim run scenario.toml --watch  Replay the scenario whenever the file changes
  navsim serve                      Stream the back stack to websocket clients
  navsim encode 4                   Print the deep link for a pokemon
  navsim decode 'details/...'       Decode a deep link`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	PersistentPostRun: func(*cobra.Command, []string) {
		navigator.CloseLogger()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .navsim.yml, can also use NAVSIM_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-path", "", "write logs to this file instead of stderr")
}

// initConfig selects the config file and enables environment overrides.
// A missing default file is not an error; a missing explicit one is reported
// by loadConfig.
func initConfig() {
	v := viper.GetViper()
	config.SetDefaults(v)
	config.SetupEnv(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv(constants.ConfigFileEnvVar); envConfigFile != "" {
		v.SetConfigFile(envConfigFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".navsim")
	}
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	v := viper.GetViper()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		explicit := cfgFile != "" || os.Getenv(constants.ConfigFileEnvVar) != ""
		if explicit || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}

	loaded, err := config.Load(v)
	if err != nil {
		return err
	}
	cfg = loaded

	if cfg.Log.Path != "" {
		navigator.SetLogPath(cfg.Log.Path)
	}
	navigator.SetRawLogLevel(cfg.Log.Level)
	if !constants.IsDebug() {
		navigator.SetInternalLogLevel(navigator.ParseLevel(cfg.Log.InternalLevel))
	}

	if used := v.ConfigFileUsed(); used != "" {
		navigator.GetLogger().Debug("using config file", "path", used)
	}
	return nil
}
