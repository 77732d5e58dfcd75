// QR Code Generator Application
// Author: qrgen contributors
// License: MIT
// Version: 1.0.0 - Async generation + headless CLI

package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	AppName    = "QR Code Generator"
	AppID      = "io.github.qrgen.qr-code-generator"
	AppVersion = "1.0.0"
)

type globalFlags struct {
	configPath string
	envPath    string
	debug      bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:          "qrgen",
		Short:        "Type a link, get a QR code",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(flags)
		},
	}
	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "config.yaml", "Path to config file (.yaml or .toml)")
	root.PersistentFlags().StringVar(&flags.envPath, "env", ".env", "Path to .env file")
	root.PersistentFlags().BoolVar(&flags.debug, "debug", false, "Enable debug mode with verbose logging")

	root.AddCommand(newGenerateCommand(flags))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), AppName+" "+AppVersion)
		},
	})

	return root
}

// initLogger initializes the logger with appropriate level
func initLogger(debugMode bool, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
		return logger
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		logger.WithField("log_level", level).Warn("Unknown log level, using info")
	}

	return logger
}
