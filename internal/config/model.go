package config

import "time"

// Config represents the application configuration structure
type Config struct {
	Store    StoreConfig    `mapstructure:"store"`
	Git      GitConfig      `mapstructure:"git"`
	GH       GHConfig       `mapstructure:"gh"`
	Identity IdentityConfig `mapstructure:"identity"`
	Timeouts TimeoutConfig  `mapstructure:"timeouts"`
	Update   UpdateConfig   `mapstructure:"update"`
	Logging  LoggingConfig  `mapstructure:"logging"`

	// File the configuration was read from, empty when only defaults and
	// environment variables were used
	source string
}

type StoreConfig struct {
	// Path to the credential file. Empty selects ~/.goat.toml; a .yaml or
	// .yml extension switches the file to YAML.
	Path string `mapstructure:"path"`
}

type GitConfig struct {
	Binary string `mapstructure:"binary" default:"git"`
}

type GHConfig struct {
	Binary   string `mapstructure:"binary" default:"gh"`
	Hostname string `mapstructure:"hostname" default:"github.com"`
}

type IdentityConfig struct {
	Backend string `mapstructure:"backend" default:"exec"` // exec or go-git
}

type TimeoutConfig struct {
	Session  time.Duration `mapstructure:"session" default:"30s"`
	Identity time.Duration `mapstructure:"identity" default:"10s"`
	Update   time.Duration `mapstructure:"update" default:"2m"`
}

type UpdateConfig struct {
	Owner string `mapstructure:"owner" default:"aegooby"`
	Repo  string `mapstructure:"repo" default:"goat"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" default:"warn"`
	Format string `mapstructure:"format" default:"text"`
	Output string `mapstructure:"output" default:"stderr"`
}

func (c *Config) Source() string {
	return c.source
}
