// Package config loads dynform settings from defaults, an optional YAML file,
// a .env file, DYNFORM_ environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/goliatone/go-dynform/internal/logging"
	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/question"
	"github.com/goliatone/go-dynform/pkg/submit"
)

// EnvPrefix prefixes every environment override, e.g. DYNFORM_SUBMIT_URL.
const EnvPrefix = "DYNFORM"

// Config is the complete runtime configuration.
type Config struct {
	Schema  SchemaConfig  `mapstructure:"schema"`
	Submit  SubmitConfig  `mapstructure:"submit"`
	Server  ServerConfig  `mapstructure:"server"`
	Page    PageConfig    `mapstructure:"page"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SchemaConfig locates the question schema.
type SchemaConfig struct {
	Source  string        `mapstructure:"source"`
	Timeout time.Duration `mapstructure:"timeout"`
	Strict  bool          `mapstructure:"strict"`
	// Preset is an optional JSON or YAML document of descriptor overrides.
	Preset string `mapstructure:"preset"`
}

// SubmitConfig locates the submission endpoint.
type SubmitConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ServerConfig configures the HTTP host.
type ServerConfig struct {
	Addr          string        `mapstructure:"addr"`
	ShutdownGrace time.Duration `mapstructure:"shutdown_grace"`
	SessionTTL    time.Duration `mapstructure:"session_ttl"`
	Mock          bool          `mapstructure:"mock"`
}

// PageConfig holds the texts shown around the form.
type PageConfig struct {
	Title          string `mapstructure:"title"`
	Intro          string `mapstructure:"intro"`
	SubmitLabel    string `mapstructure:"submit_label"`
	SuccessMessage string `mapstructure:"success_message"`
	FailureMessage string `mapstructure:"failure_message"`
}

// LoggingConfig selects the log level and output format.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type loadOptions struct {
	envFile string
	flags   *pflag.FlagSet
	binds   map[string]string
}

// Option customises Load.
type Option func(*loadOptions)

// WithEnvFile reads path instead of ./.env. A missing file is ignored.
func WithEnvFile(path string) Option {
	return func(o *loadOptions) {
		o.envFile = path
	}
}

// WithFlags binds configuration keys to flags of set. Only flags the user
// changed override lower layers.
func WithFlags(set *pflag.FlagSet, bindings map[string]string) Option {
	return func(o *loadOptions) {
		o.flags = set
		o.binds = bindings
	}
}

// Load resolves the configuration. configPath may be empty, in which case
// .dynform.yaml is looked up in the working directory and
// $HOME/.config/dynform; a missing file is not an error.
func Load(configPath string, options ...Option) (*Config, error) {
	opts := loadOptions{envFile: ".env"}
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}

	if opts.envFile != "" {
		if err := godotenv.Load(opts.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load env file %s: %w", opts.envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("config: config file: %w", err)
		}
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(".dynform")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "dynform"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.flags != nil {
		for key, name := range opts.binds {
			flag := opts.flags.Lookup(name)
			if flag == nil {
				return nil, fmt.Errorf("config: flag %q bound to %s is not defined", name, key)
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("config: bind flag %q: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("schema.source", orchestrator.DefaultSchemaURL)
	v.SetDefault("schema.timeout", time.Duration(0))
	v.SetDefault("schema.strict", false)
	v.SetDefault("schema.preset", "")

	v.SetDefault("submit.url", orchestrator.DefaultSubmitURL)
	v.SetDefault("submit.timeout", time.Duration(0))

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_grace", 5*time.Second)
	v.SetDefault("server.session_ttl", 30*time.Minute)
	v.SetDefault("server.mock", false)

	defaults := submit.DefaultMessages()
	v.SetDefault("page.title", "")
	v.SetDefault("page.intro", "")
	v.SetDefault("page.submit_label", "Submit")
	v.SetDefault("page.success_message", defaults.Success)
	v.SetDefault("page.failure_message", defaults.Failure)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", logging.FormatConsole)
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if _, err := question.ParseSource(c.Schema.Source); err != nil {
		return fmt.Errorf("schema.source: %w", err)
	}
	if c.Schema.Timeout < 0 {
		return errors.New("schema.timeout must not be negative")
	}
	if u, err := url.ParseRequestURI(strings.TrimSpace(c.Submit.URL)); err != nil || u.Host == "" {
		return fmt.Errorf("submit.url %q is not an absolute URL", c.Submit.URL)
	}
	if c.Submit.Timeout < 0 {
		return errors.New("submit.timeout must not be negative")
	}
	if c.Server.SessionTTL <= 0 {
		return errors.New("server.session_ttl must be positive")
	}
	if c.Server.ShutdownGrace < 0 {
		return errors.New("server.shutdown_grace must not be negative")
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("logging.format %q must be console or json", c.Logging.Format)
	}
	return nil
}

// SchemaSource parses the configured schema location.
func (c *Config) SchemaSource() (question.Source, error) {
	return question.ParseSource(c.Schema.Source)
}

// Messages returns the configured notification texts.
func (c *Config) Messages() submit.Messages {
	return submit.Messages{Success: c.Page.SuccessMessage, Failure: c.Page.FailureMessage}
}
