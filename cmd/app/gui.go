package main

import (
	"fyne.io/fyne/v2/app"

	"qr-code-generator/assets"
	"qr-code-generator/internal/gui"
)

func runGUI(flags *globalFlags) error {
	c, err := buildComponents(flags)
	if err != nil {
		return err
	}

	c.logger.Info("Starting QR Code Generator")

	myApp := app.NewWithID(AppID)
	icon := iconResource(c.loader, assets.IconPNG)
	if icon != nil {
		myApp.SetIcon(icon)
	}

	mainApp := gui.NewApplication(myApp, c.cfg, c.session, icon, c.logger)
	mainApp.ShowAndRun()

	c.logger.WithFields(c.session.Stats().Fields()).Info("Application shutting down gracefully")
	return nil
}
