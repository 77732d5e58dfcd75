package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"github.com/sirupsen/logrus"

	"qr-code-generator/internal/config"
	"qr-code-generator/internal/core"
	"qr-code-generator/internal/imageio"
	"qr-code-generator/internal/imageio/cvcodec"
	"qr-code-generator/internal/qr"
)

type components struct {
	cfg       *config.Config
	logger    *logrus.Logger
	generator *qr.Generator
	loader    *imageio.ImageLoader
	session   *core.Session
}

func loadConfig(flags *globalFlags) (*config.Config, error) {
	if err := config.LoadDotEnv(flags.envPath); err != nil {
		return nil, err
	}
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func newDecoder(name string) imageio.Decoder {
	if name == cvcodec.Name {
		return cvcodec.Decoder{}
	}
	return imageio.StdDecoder{}
}

func newEncoder(name string) imageio.Encoder {
	if name == cvcodec.Name {
		return cvcodec.Encoder{}
	}
	return imageio.StdEncoder{}
}

func buildComponents(flags *globalFlags) (*components, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}

	logger := initLogger(flags.debug, cfg.LogLevel)

	params, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	gen, err := qr.NewGenerator(cfg.QR.Backend, params, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	loader := imageio.NewImageLoader(newDecoder(cfg.Decoder), newEncoder(cfg.Encoder), logger)
	session := core.NewSession(gen, loader,
		core.WithLogger(logger),
		core.WithMaxWorkers(cfg.QR.MaxWorkers),
	)

	logger.WithFields(logrus.Fields{
		"version":     AppVersion,
		"debug_mode":  flags.debug,
		"backend":     gen.BackendName(),
		"level":       params.Level.String(),
		"size":        params.Size,
		"decoder":     cfg.Decoder,
		"encoder":     cfg.Encoder,
		"formats":     loader.GetSupportedFormats(),
		"max_workers": cfg.QR.MaxWorkers,
	}).Info("Components initialised")

	return &components{
		cfg:       cfg,
		logger:    logger,
		generator: gen,
		loader:    loader,
		session:   session,
	}, nil
}

// iconResource returns nil when the bundled icon is unusable
func iconResource(loader *imageio.ImageLoader, data []byte) fyne.Resource {
	if loader.LoadIcon(data) == nil {
		return nil
	}
	return fyne.NewStaticResource("icon.png", data)
}
