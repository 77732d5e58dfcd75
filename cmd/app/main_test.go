package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qr-code-generator/assets"
	"qr-code-generator/internal/imageio"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func isolatedArgs(t *testing.T, args ...string) []string {
	dir := t.TempDir()
	return append(args,
		"--config", filepath.Join(dir, "missing.yaml"),
		"--env", filepath.Join(dir, "missing.env"),
	)
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Equal(t, AppName+" "+AppVersion+"\n", out)
}

func TestGenerateWritesPNG(t *testing.T) {
	output := filepath.Join(t.TempDir(), "code.png")

	_, err := runCommand(t, isolatedArgs(t, "generate", "https://example.com", "-o", output)...)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, 256, img.Bounds().Dy())
}

func TestGenerateHonoursConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[qr]\nsize = 320\nbackend = \"rsc\"\n"), 0o644))
	output := filepath.Join(dir, "code.png")

	_, err := runCommand(t, "generate", "hello", "-o", output, "--config", cfgPath, "--env", filepath.Join(dir, "none.env"))
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
}

func TestGenerateReportsEncodingFailure(t *testing.T) {
	output := filepath.Join(t.TempDir(), "code.png")

	_, err := runCommand(t, isolatedArgs(t, "generate", strings.Repeat("a", 4000), "-o", output)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too long")

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerateRequiresExactlyOneArgument(t *testing.T) {
	_, err := runCommand(t, isolatedArgs(t, "generate")...)
	assert.Error(t, err)
}

func TestInitLoggerLevels(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, initLogger(true, "error").GetLevel())
	assert.Equal(t, logrus.WarnLevel, initLogger(false, "warn").GetLevel())
	assert.Equal(t, logrus.InfoLevel, initLogger(false, "chatty").GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, initLogger(false, "info").Formatter)
}

func TestIconResource(t *testing.T) {
	loader := imageio.NewImageLoader(nil, nil, logrus.New())

	res := iconResource(loader, assets.IconPNG)
	require.NotNil(t, res)
	assert.Equal(t, "icon.png", res.Name())

	assert.Nil(t, iconResource(loader, []byte("broken")))
}

func TestNewCodecs(t *testing.T) {
	assert.Equal(t, "opencv", newDecoder("opencv").Name())
	assert.Equal(t, imageio.DecoderStd, newDecoder("std").Name())
	assert.Equal(t, "opencv", newEncoder("opencv").Name())
	assert.Equal(t, imageio.EncoderStd, newEncoder("std").Name())
}

func TestGenerateWritesBMPThroughOpenCV(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("encoder: opencv\n"), 0o644))
	output := filepath.Join(dir, "code.bmp")

	_, err := runCommand(t, "generate", "hello", "-o", output, "--config", cfgPath, "--env", filepath.Join(dir, "none.env"))
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("BM")))
}

func TestGenerateRejectsFormatTheEncoderCannotWrite(t *testing.T) {
	output := filepath.Join(t.TempDir(), "code.bmp")

	_, err := runCommand(t, isolatedArgs(t, "generate", "hello", "-o", output)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".png")

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestTerminalFlagNamesItsEncoder(t *testing.T) {
	flag := newGenerateCommand(&globalFlags{}).Flags().Lookup("terminal")
	require.NotNil(t, flag)
	assert.Contains(t, flag.Usage, "rsc")
}
