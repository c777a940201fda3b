package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const (
	appName   = "goat"
	envPrefix = "GOAT"
)

func DefaultConfig() *Config {

	v := viper.New()

	// Set default values
	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		logrus.Fatalf("error unmarshaling default config: %v", err)
	}

	return &config
}

// Load loads the configuration from .env, an optional config.yaml and GOAT_*
// environment variables, then configures logging from it.
func Load(configFile string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	v := viper.New()

	setupViperConfig(v, configFile)

	bindEnvironmentVariables(v)

	config, err := readAndUnmarshalConfig(v)
	if err != nil {
		return nil, err
	}

	if err := setupLogging(config, v); err != nil {
		return nil, err
	}

	return config, nil
}

// loadEnvFile loads the .env file if it exists
func loadEnvFile() error {
	if err := gotenv.Load(); err != nil {
		// .env file not found, that's okay - continue with other sources
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
		}
	}
	return nil
}

// setupViperConfig configures viper with file paths and defaults
func setupViperConfig(v *viper.Viper, configFile string) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(filepath.Join(xdg.ConfigHome, appName))

	if home, err := os.UserHomeDir(); err == nil && len(home) > 0 {
		v.AddConfigPath(filepath.Join(home, ".config", appName))
	}

	if len(configFile) > 0 {
		v.SetConfigFile(configFile)
	}

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// bindEnvironmentVariables binds the variables Unmarshal would not see
// through AutomaticEnv alone
func bindEnvironmentVariables(v *viper.Viper) {
	v.BindEnv("store.path", "GOAT_STORE_PATH", "GOAT_STORE")

	v.BindEnv("git.binary", "GOAT_GIT_BINARY")
	v.BindEnv("gh.binary", "GOAT_GH_BINARY")
	v.BindEnv("gh.hostname", "GOAT_GH_HOSTNAME", "GH_HOST")

	v.BindEnv("identity.backend", "GOAT_IDENTITY_BACKEND")

	v.BindEnv("timeouts.session", "GOAT_TIMEOUTS_SESSION")
	v.BindEnv("timeouts.identity", "GOAT_TIMEOUTS_IDENTITY")
	v.BindEnv("timeouts.update", "GOAT_TIMEOUTS_UPDATE")

	v.BindEnv("update.owner", "GOAT_UPDATE_OWNER")
	v.BindEnv("update.repo", "GOAT_UPDATE_REPO")

	v.BindEnv("logging.level", "GOAT_LOGGING_LEVEL")
	v.BindEnv("logging.format", "GOAT_LOGGING_FORMAT")
	v.BindEnv("logging.output", "GOAT_LOGGING_OUTPUT")
}

// readAndUnmarshalConfig reads the configuration file and unmarshals it
func readAndUnmarshalConfig(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults and environment variables
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	config.source = v.ConfigFileUsed()

	return &config, nil
}

// setupLogging configures logrus based on the config
func setupLogging(config *Config, v *viper.Viper) error {
	logrusLevel, err := logrus.ParseLevel(config.Logging.Level)
	if err != nil {
		return fmt.Errorf("error parsing log level: %w", err)
	}

	logrus.SetLevel(logrusLevel)

	output, err := openLogOutput(config.Logging.Output)
	if err != nil {
		return err
	}
	logrus.SetOutput(output)

	switch strings.ToLower(config.Logging.Format) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	default:
		logrus.WithFields(logrus.Fields{
			"format": config.Logging.Format,
		}).Warn("Unknown log format")
	}

	// Dump out the config settings if in debug mode
	if logrusLevel >= logrus.DebugLevel {
		for key, value := range v.AllSettings() {
			logrus.Debugf("Config '%s': %v", key, value)
		}
	}

	return nil
}

func openLogOutput(output string) (io.Writer, error) {
	switch strings.ToLower(strings.TrimSpace(output)) {
	case "", "stderr":
		return os.Stderr, nil
	case "stdout":
		return os.Stdout, nil
	default:
		file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("error opening log output: %w", err)
		}
		return file, nil
	}
}

// SetVerbose forces debug logging, used by the --verbose flag.
func SetVerbose() {
	logrus.SetLevel(logrus.DebugLevel)
}

func setDefaults(v *viper.Viper) {

	// Credential store defaults to ~/.goat.toml
	v.SetDefault("store.path", "")

	v.SetDefault("git.binary", "git")
	v.SetDefault("gh.binary", "gh")
	v.SetDefault("gh.hostname", "github.com")

	v.SetDefault("identity.backend", "exec")

	// Bounds on external processes; expiry counts as an authentication failure
	v.SetDefault("timeouts.session", "30s")
	v.SetDefault("timeouts.identity", "10s")
	v.SetDefault("timeouts.update", "2m")

	v.SetDefault("update.owner", "aegooby")
	v.SetDefault("update.repo", "goat")

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stderr")
}
