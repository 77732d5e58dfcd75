// Main application window: link entry, QR area and Generate button
package gui

import (
	"context"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"qr-code-generator/internal/config"
	"qr-code-generator/internal/core"
)

const generatingText = "Generating..."

// Application represents the QR generator window
type Application struct {
	app    fyne.App
	window fyne.Window
	cfg    *config.Config
	logger logrus.FieldLogger

	// Core components
	session *core.Session
	poller  *FramePoller
	ctx     context.Context
	cancel  context.CancelFunc
	closed  sync.Once

	// GUI components
	entry      *widget.Entry
	button     *widget.Button
	qrPanel    *CenterPanel
	statusText *widget.Label
}

// NewApplication builds the window. icon may be nil.
func NewApplication(app fyne.App, cfg *config.Config, session *core.Session, icon fyne.Resource, logger logrus.FieldLogger) *Application {
	app.Settings().SetTheme(newWhiteTheme())

	window := app.NewWindow(cfg.Window.Title)
	window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	window.SetFixedSize(true)
	window.CenterOnScreen()
	if icon != nil {
		window.SetIcon(icon)
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &Application{
		app:     app,
		window:  window,
		cfg:     cfg,
		logger:  logger,
		session: session,
		ctx:     ctx,
		cancel:  cancel,
	}

	a.initializeGUI()
	a.setupLayout()
	a.setupCallbacks()
	a.poller = NewFramePoller(cfg.FrameInterval.Duration, a.pollFrame)

	return a
}

func (a *Application) initializeGUI() {
	a.entry = widget.NewEntry()
	a.entry.SetPlaceHolder("https://")

	a.button = widget.NewButton("Generate", nil)

	a.qrPanel = NewCenterPanel(float32(a.cfg.QR.Size))

	a.statusText = widget.NewLabel("")
	a.statusText.Alignment = fyne.TextAlignCenter
	a.statusText.Wrapping = fyne.TextWrapWord
	a.statusText.Importance = widget.LowImportance
}

func (a *Application) setupLayout() {
	heading := widget.NewLabelWithStyle("QR Code Generator", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	prompt := widget.NewLabelWithStyle("Insert your link here:", fyne.TextAlignCenter, fyne.TextStyle{})

	// entry spans 80% of the window width
	margin := canvas.NewRectangle(color.Transparent)
	margin.SetMinSize(fyne.NewSize(a.cfg.Window.Width*0.1, 0))
	rightMargin := canvas.NewRectangle(color.Transparent)
	rightMargin.SetMinSize(fyne.NewSize(a.cfg.Window.Width*0.1, 0))
	entryRow := container.NewBorder(nil, nil, margin, rightMargin, a.entry)

	content := container.NewVBox(
		heading,
		layout.NewSpacer(),
		prompt,
		entryRow,
		a.qrPanel.GetContainer(),
		a.statusText,
		container.NewCenter(a.button),
		layout.NewSpacer(),
	)

	a.window.SetContent(container.NewPadded(content))
}

func (a *Application) setupCallbacks() {
	a.entry.OnChanged = func(text string) {
		a.session.SetLink(text)
	}
	a.entry.OnSubmitted = func(string) {
		a.onGenerate()
	}
	a.button.OnTapped = a.onGenerate

	a.window.SetCloseIntercept(func() {
		a.cleanup()
		a.app.Quit()
	})
}

func (a *Application) onGenerate() {
	seq := a.session.Generate(a.ctx)
	a.logger.WithField("seq", seq).Debug("GUI: Generate tapped")
	a.refreshDisplay()
}

// pollFrame runs once per frame on the UI goroutine
func (a *Application) pollFrame() {
	if a.session.Poll() {
		a.refreshDisplay()
	}
}

func (a *Application) refreshDisplay() {
	d := a.session.Display()

	if d.HasImage() {
		if a.qrPanel.Image() != d.Texture.Image {
			a.qrPanel.UpdateImage(d.Texture.Image)
		}
	} else if a.qrPanel.HasImage() {
		a.qrPanel.Reset()
	}

	switch {
	case d.Pending:
		a.updateStatus(generatingText, widget.LowImportance)
	case d.Err != nil:
		a.updateStatus(d.Err.Error(), widget.DangerImportance)
	default:
		a.updateStatus("", widget.LowImportance)
	}
}

func (a *Application) updateStatus(message string, importance widget.Importance) {
	if a.statusText.Text == message && a.statusText.Importance == importance {
		return
	}
	a.statusText.Text = message
	a.statusText.Importance = importance
	a.statusText.Refresh()
}

func (a *Application) Window() fyne.Window {
	return a.window
}

func (a *Application) ShowAndRun() {
	a.logger.Info("Showing main application window")
	a.poller.Start(a.ctx)
	a.window.ShowAndRun()
	a.cleanup()
}

func (a *Application) cleanup() {
	a.closed.Do(func() {
		a.logger.Info("Cleaning up application resources")
		a.cancel()
		a.session.Close()
	})
}
