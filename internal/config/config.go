// Package config handles loading application configuration from YAML or
// TOML files, a .env file and QRGEN_ environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"qr-code-generator/internal/imageio"
	"qr-code-generator/internal/qr"
)

const envPrefix = "QRGEN_"

// codecOpenCV mirrors cvcodec.Name without importing gocv here
const codecOpenCV = "opencv"

// Window holds the fixed main-window geometry.
type Window struct {
	Title  string  `yaml:"title" toml:"title"`
	Width  float32 `yaml:"width" toml:"width"`
	Height float32 `yaml:"height" toml:"height"`
}

// QR holds the generation parameters.
type QR struct {
	Size       int    `yaml:"size" toml:"size"`
	Level      string `yaml:"level" toml:"level"`
	Backend    string `yaml:"backend" toml:"backend"`
	MaxWorkers int    `yaml:"max_workers" toml:"max_workers"`
}

// Config holds all application configuration values.
type Config struct {
	Window        Window   `yaml:"window" toml:"window"`
	QR            QR       `yaml:"qr" toml:"qr"`
	Decoder       string   `yaml:"decoder" toml:"decoder"`
	Encoder       string   `yaml:"encoder" toml:"encoder"`
	FrameInterval Duration `yaml:"frame_interval" toml:"frame_interval"`
	LogLevel      string   `yaml:"log_level" toml:"log_level"`
}

// Duration is a wrapper around time.Duration that reads human-readable
// strings like "16ms" from YAML and TOML.
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// UnmarshalText is used by the TOML decoder.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Defaults returns the compiled-in configuration.
func Defaults() *Config {
	params := qr.DefaultParams()
	return &Config{
		Window: Window{
			Title:  "QR Code Generator",
			Width:  400,
			Height: 450,
		},
		QR: QR{
			Size:       params.Size,
			Level:      params.Level.String(),
			Backend:    qr.BackendSkip2,
			MaxWorkers: 1,
		},
		Decoder:       imageio.DecoderStd,
		Encoder:       imageio.EncoderStd,
		FrameInterval: Duration{16 * time.Millisecond},
		LogLevel:      "info",
	}
}

// LoadDotEnv reads KEY=value pairs from path into the process environment.
// A missing file is not an error; variables already set are kept.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from path, falling back to defaults if the file
// does not exist. The format follows the extension (.yaml, .yml or .toml).
// QRGEN_* environment variables override file and default values.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		} else if err := decode(path, data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Unmarshal(data, cfg)
	case ".yaml", ".yml", "":
		return yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
	}
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv(envPrefix + "LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(envPrefix + "QR_LEVEL"); v != "" {
		cfg.QR.Level = v
	}
	if v := os.Getenv(envPrefix + "QR_BACKEND"); v != "" {
		cfg.QR.Backend = v
	}
	if v := os.Getenv(envPrefix + "DECODER"); v != "" {
		cfg.Decoder = v
	}
	if v := os.Getenv(envPrefix + "ENCODER"); v != "" {
		cfg.Encoder = v
	}
	if v := os.Getenv(envPrefix + "QR_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sQR_SIZE %q: %w", envPrefix, v, err)
		}
		cfg.QR.Size = n
	}
	if v := os.Getenv(envPrefix + "MAX_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sMAX_WORKERS %q: %w", envPrefix, v, err)
		}
		cfg.QR.MaxWorkers = n
	}
	if v := os.Getenv(envPrefix + "FRAME_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sFRAME_INTERVAL %q: %w", envPrefix, v, err)
		}
		cfg.FrameInterval = Duration{d}
	}
	return nil
}

// Validate rejects values the application cannot run with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size: %vx%v", c.Window.Width, c.Window.Height)
	}
	if c.QR.Size <= 0 {
		return fmt.Errorf("invalid qr size: %d", c.QR.Size)
	}
	if c.QR.MaxWorkers < 1 {
		return fmt.Errorf("max_workers must be at least 1, got %d", c.QR.MaxWorkers)
	}
	if _, err := qr.ParseLevel(c.QR.Level); err != nil {
		return err
	}
	if !qr.IsValidBackend(c.QR.Backend) {
		return fmt.Errorf("unknown qr backend %q (have %s)", c.QR.Backend, strings.Join(qr.BackendNames(), ", "))
	}
	if c.Decoder != imageio.DecoderStd && c.Decoder != codecOpenCV {
		return fmt.Errorf("unknown decoder %q", c.Decoder)
	}
	if c.Encoder != imageio.EncoderStd && c.Encoder != codecOpenCV {
		return fmt.Errorf("unknown encoder %q", c.Encoder)
	}
	if c.FrameInterval.Duration <= 0 {
		return fmt.Errorf("frame_interval must be positive, got %s", c.FrameInterval.Duration)
	}
	return nil
}

// Params converts the QR section into generator params.
func (c *Config) Params() (qr.Params, error) {
	level, err := qr.ParseLevel(c.QR.Level)
	if err != nil {
		return qr.Params{}, err
	}
	return qr.Params{Level: level, Size: c.QR.Size}, nil
}
