package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"qr-code-generator/internal/qr"
)

type generateFlags struct {
	output   string
	terminal bool
	timeout  time.Duration
}

func newGenerateCommand(global *globalFlags) *cobra.Command {
	flags := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate [text]",
		Short: "Generate a QR code without opening a window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), global, flags, args[0])
		},
	}
	cmd.Flags().StringVarP(&flags.output, "output", "o", "qr-code.png", "Output image path (.png, .jpg)")
	cmd.Flags().BoolVarP(&flags.terminal, "terminal", "t", false,
		"Print the code to the terminal instead of writing a file (always drawn by the rsc encoder, whatever qr.backend says)")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 30*time.Second, "Give up after this long")

	return cmd
}

// runGenerate pushes the text through the same session the window uses
func runGenerate(ctx context.Context, global *globalFlags, flags *generateFlags, text string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	c, err := buildComponents(global)
	if err != nil {
		return err
	}
	defer c.session.Close()

	if flags.terminal {
		if name := c.generator.BackendName(); name != qr.BackendRSC {
			c.logger.WithField("backend", name).Warn("Terminal output is drawn by the rsc encoder, ignoring configured backend")
		}
		return qr.RenderTerminal(os.Stdout, text, c.generator.Params().Level)
	}

	ctx, cancel := context.WithTimeout(ctx, flags.timeout)
	defer cancel()

	c.session.SetLink(text)
	c.session.Generate(ctx)
	if err := c.session.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for qr code: %w", err)
	}

	d := c.session.Display()
	if d.Err != nil {
		return d.Err
	}
	if err := c.loader.SaveTexture(d.Texture, flags.output); err != nil {
		return err
	}

	c.logger.WithFields(logrus.Fields{
		"output": flags.output,
		"width":  d.Texture.Width,
		"height": d.Texture.Height,
	}).Info("QR code written")
	return nil
}
