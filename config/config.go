// Package config holds the textsign runtime configuration.
//
// Values are resolved by viper in the usual order: bound command line
// flags, TEXTSIGN_* environment variables (dots become underscores, e.g.
// TEXTSIGN_SERVER_ADDR), the optional configuration file, then defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "TEXTSIGN"

// ErrInvalidConfig is returned by Validate for unusable values.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the complete runtime configuration.
type Config struct {
	LogLevel  string `yaml:"logLevel" mapstructure:"logLevel"`
	LogOutput string `yaml:"logOutput" mapstructure:"logOutput"`

	Server Server `yaml:"server" mapstructure:"server"`
	Keys   Keys   `yaml:"keys" mapstructure:"keys"`
}

// Server configures the HTTP signing service.
type Server struct {
	Addr string `yaml:"addr" mapstructure:"addr"`

	// MaxBodyBytes caps request bodies, which are buffered in full.
	MaxBodyBytes int64 `yaml:"maxBodyBytes" mapstructure:"maxBodyBytes"`

	// MaxConns caps simultaneously accepted connections.
	MaxConns int `yaml:"maxConns" mapstructure:"maxConns"`

	ReadTimeout  time.Duration `yaml:"readTimeout" mapstructure:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout" mapstructure:"writeTimeout"`

	// AllowedOrigins enables CORS for the listed origins. Empty disables CORS.
	AllowedOrigins []string `yaml:"allowedOrigins" mapstructure:"allowedOrigins"`
}

// Keys names the key files used by the HTTP signing service. A key file is
// read on every request. An empty path disables the operations needing it.
type Keys struct {
	Blake3           string `yaml:"blake3" mapstructure:"blake3"`
	Ed25519Signing   string `yaml:"ed25519Signing" mapstructure:"ed25519Signing"`
	Ed25519Verifying string `yaml:"ed25519Verifying" mapstructure:"ed25519Verifying"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogOutput: "stderr",
		Server: Server{
			Addr:         "127.0.0.1:8080",
			MaxBodyBytes: 10 << 20,
			MaxConns:     256,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
}

// SetDefaults registers Default values on v so that environment variables
// are honored for every key.
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("logLevel", d.LogLevel)
	v.SetDefault("logOutput", d.LogOutput)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.maxBodyBytes", d.Server.MaxBodyBytes)
	v.SetDefault("server.maxConns", d.Server.MaxConns)
	v.SetDefault("server.readTimeout", d.Server.ReadTimeout)
	v.SetDefault("server.writeTimeout", d.Server.WriteTimeout)
	v.SetDefault("server.allowedOrigins", d.Server.AllowedOrigins)
	v.SetDefault("keys.blake3", d.Keys.Blake3)
	v.SetDefault("keys.ed25519Signing", d.Keys.Ed25519Signing)
	v.SetDefault("keys.ed25519Verifying", d.Keys.Ed25519Verifying)
}

// Load resolves the configuration from v. When path is not empty the file
// is read first and must exist.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that limits and addresses are usable.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server address must not be empty", ErrInvalidConfig)
	}

	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: server.maxBodyBytes must be greater than zero", ErrInvalidConfig)
	}

	if c.Server.MaxConns <= 0 {
		return fmt.Errorf("%w: server.maxConns must be greater than zero", ErrInvalidConfig)
	}

	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return fmt.Errorf("%w: server timeouts must not be negative", ErrInvalidConfig)
	}

	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Write stores cfg as YAML at path. Existing files are not overwritten.
func Write(path string, cfg Config) error {
	b, err := Marshal(cfg)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}

	if _, err := f.Write(b); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
