package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"qr-code-generator/internal/qr"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)

	params, err := cfg.Params()
	require.NoError(t, err)
	assert.Equal(t, qr.DefaultParams(), params)
	assert.Equal(t, float32(400), cfg.Window.Width)
	assert.Equal(t, float32(450), cfg.Window.Height)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
qr:
  size: 512
  level: high
  backend: rsc
  max_workers: 3
decoder: std
frame_interval: 33ms
log_level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 512, cfg.QR.Size)
	assert.Equal(t, "high", cfg.QR.Level)
	assert.Equal(t, qr.BackendRSC, cfg.QR.Backend)
	assert.Equal(t, 3, cfg.QR.MaxWorkers)
	assert.Equal(t, 33*time.Millisecond, cfg.FrameInterval.Duration)
	assert.Equal(t, "debug", cfg.LogLevel)
	// untouched sections keep their defaults
	assert.Equal(t, "QR Code Generator", cfg.Window.Title)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
log_level = "warn"
frame_interval = "50ms"

[qr]
level = "M"
size = 300
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	params, err := cfg.Params()
	require.NoError(t, err)
	assert.Equal(t, qr.Params{Level: qr.Medium, Size: 300}, params)
	assert.Equal(t, 50*time.Millisecond, cfg.FrameInterval.Duration)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "config.yaml", "qr:\n  size: 512\n")
	t.Setenv("QRGEN_QR_SIZE", "128")
	t.Setenv("QRGEN_QR_LEVEL", "q")
	t.Setenv("QRGEN_MAX_WORKERS", "2")
	t.Setenv("QRGEN_FRAME_INTERVAL", "1s")
	t.Setenv("QRGEN_LOG_LEVEL", "error")
	t.Setenv("QRGEN_ENCODER", "opencv")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.QR.Size)
	assert.Equal(t, "q", cfg.QR.Level)
	assert.Equal(t, 2, cfg.QR.MaxWorkers)
	assert.Equal(t, time.Second, cfg.FrameInterval.Duration)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "opencv", cfg.Encoder)
}

func TestInvalidEnvValueIsAnError(t *testing.T) {
	t.Setenv("QRGEN_QR_SIZE", "big")
	_, err := Load("")
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*Config){
		"size":     func(c *Config) { c.QR.Size = 0 },
		"level":    func(c *Config) { c.QR.Level = "ultra" },
		"backend":  func(c *Config) { c.QR.Backend = "zxing" },
		"decoder":  func(c *Config) { c.Decoder = "magick" },
		"encoder":  func(c *Config) { c.Encoder = "magick" },
		"workers":  func(c *Config) { c.QR.MaxWorkers = 0 },
		"window":   func(c *Config) { c.Window.Width = -1 },
		"interval": func(c *Config) { c.FrameInterval = Duration{} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Defaults()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, Defaults().Validate())
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	path := writeFile(t, "config.ini", "size=1")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")))

	t.Setenv("QRGEN_QR_BACKEND", "")
	path := writeFile(t, ".env", "QRGEN_QR_BACKEND=rsc\n")
	os.Unsetenv("QRGEN_QR_BACKEND")
	require.NoError(t, LoadDotEnv(path))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, qr.BackendRSC, cfg.QR.Backend)
}

func TestConfigSurvivesYAMLRoundTrip(t *testing.T) {
	want := Defaults()
	want.QR.Size = 384
	want.QR.Level = "quartile"
	want.Encoder = "opencv"
	want.FrameInterval = Duration{250 * time.Millisecond}

	data, err := yaml.Marshal(want)
	require.NoError(t, err)
	assert.Contains(t, string(data), "frame_interval: 250ms")

	got, err := Load(writeFile(t, "config.yaml", string(data)))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
