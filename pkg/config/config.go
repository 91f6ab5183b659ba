package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Distinguished error classes for configuration failures. All three are
// fatal before any directory is checked; callers use errors.Is to tell
// them apart.
var (
	ErrNotFound  = errors.New("config file not found")
	ErrMalformed = errors.New("config file is not valid YAML")
	ErrInvalid   = errors.New("config failed validation")
)

// Env var overrides so SMTP credentials can stay out of the YAML file.
const (
	EnvSMTPUsername = "SENTINEL_SMTP_USERNAME"
	EnvSMTPPassword = "SENTINEL_SMTP_PASSWORD"
)

// Duration wraps time.Duration so it can be written as "5m" in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// SMTP holds the mail server connection settings.
type SMTP struct {
	Host       string   `yaml:"host" validate:"required"`
	Port       int      `yaml:"port" validate:"required"`
	Username   string   `yaml:"username" validate:"required"`
	Password   string   `yaml:"password" validate:"required"`
	Sender     string   `yaml:"sender" validate:"required,email"`
	Recipients []string `yaml:"recipients" validate:"min=1,dive,email"`
}

// Recovery holds the external report generator settings.
type Recovery struct {
	// Script is the path to the tool's entry-point file. Its parent
	// directory is treated as the project directory.
	Script string `yaml:"script" validate:"required"`

	// Python is the base interpreter used to create the isolated
	// environment. Defaults to "python3".
	Python string `yaml:"python"`

	// Timeout is the execution ceiling for the entry point. Zero disables
	// the ceiling, which is the default.
	Timeout Duration `yaml:"timeout"`
}

// Metrics holds run-metric output settings.
type Metrics struct {
	// Textfile is where the run metrics are written in Prometheus text
	// format, for the node_exporter textfile collector. Empty disables it.
	Textfile string `yaml:"textfile"`
}

// Log holds logging settings.
type Log struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Config is the full sentinel configuration. Loaded once per run and
// immutable afterwards.
type Config struct {
	SMTP        SMTP     `yaml:"smtp"`
	ReportPaths []string `yaml:"report_paths" validate:"min=1"`
	Recovery    Recovery `yaml:"recovery"`
	Metrics     Metrics  `yaml:"metrics"`
	Log         Log      `yaml:"log"`
}

// DefaultPath resolves config.yaml next to the executable, the conventional
// location for cron invocation.
func DefaultPath() string {
	exe, err := os.Executable()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(filepath.Dir(exe), "config.yaml")
}

// Load reads, defaults, and validates the configuration at path. A local
// .env file is applied first so credentials can be injected via the
// environment.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Recovery.Python == "" {
		c.Recovery.Python = "python3"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) applyEnvOverrides() {
	if v, ok := os.LookupEnv(EnvSMTPUsername); ok {
		c.SMTP.Username = v
	}
	if v, ok := os.LookupEnv(EnvSMTPPassword); ok {
		c.SMTP.Password = v
	}
}
