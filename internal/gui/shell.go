// Package gui provides the Fyne desktop shell: video panel, controls,
// status line, and the static gesture guide.
package gui

import (
	"fmt"
	"image"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/slideshow"
)

const (
	WindowTitle  = "Mudra - Gesture-Controlled Presenter"
	WindowWidth  = 1000
	WindowHeight = 700
	VideoWidth   = 640
	VideoHeight  = 480
)

// Shell owns the main window and wires user actions to the application.
type Shell struct {
	fyneApp fyne.App
	window  fyne.Window
	session *app.App
	log     zerolog.Logger

	video  *canvas.Image
	status *widget.Label
	toggle *widget.Button

	trayMenu    *fyne.Menu
	trayGesture *fyne.MenuItem
}

// New builds the shell around the given application session.
func New(fyneApp fyne.App, session *app.App, log zerolog.Logger) *Shell {
	s := &Shell{
		fyneApp: fyneApp,
		window:  fyneApp.NewWindow(WindowTitle),
		session: session,
		log:     log.With().Str("component", "gui").Logger(),
	}

	s.video = canvas.NewImageFromImage(nil)
	s.video.FillMode = canvas.ImageFillContain // preserve aspect ratio in the display box
	s.video.SetMinSize(fyne.NewSize(VideoWidth, VideoHeight))

	s.status = widget.NewLabel("Status: Idle")

	openButton := widget.NewButton("Open Presentation", s.handleOpen)
	s.toggle = widget.NewButton("Start Gesture Control", s.handleToggle)

	controls := container.NewHBox(openButton, s.toggle)

	left := container.NewVBox(
		s.video,
		controls,
		s.status,
	)

	content := container.NewBorder(nil, nil, nil, gestureGuide(), left)

	s.window.SetContent(content)
	s.window.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	s.window.SetCloseIntercept(s.handleClose)

	s.session.OnFrame(s.showFrame)
	s.session.OnGesture(s.showGesture)

	s.setupTray()

	return s
}

// ShowAndRun displays the window and enters the event loop.
func (s *Shell) ShowAndRun() {
	s.window.ShowAndRun()
}

// gestureGuide builds the static legend panel.
func gestureGuide() fyne.CanvasObject {
	rows := []struct {
		title, description string
	}{
		{"Next Slide", "Index finger extended"},
		{"Previous Slide", "Thumb extended"},
		{"Go to Slide", "Index and middle finger extended"},
	}

	items := make([]fyne.CanvasObject, 0, len(rows)*2)
	for _, row := range rows {
		items = append(items,
			widget.NewRichTextFromMarkdown(fmt.Sprintf("**%s**\n\n%s", row.title, row.description)),
			widget.NewSeparator(),
		)
	}

	return widget.NewCard("Gesture Guide", "", container.NewVBox(items...))
}

// showFrame renders one annotated frame into the video panel.
// Called from the capture loop goroutine.
func (s *Shell) showFrame(img image.Image) {
	fyne.Do(func() {
		s.video.Image = img
		s.video.Refresh()
	})
}

// showGesture updates the status line for a dispatched gesture.
// Called from the capture loop goroutine.
func (s *Shell) showGesture(ev app.Event) {
	fyne.Do(func() {
		s.status.SetText("Status: Detected " + string(ev.Gesture))
		if s.trayGesture != nil {
			s.trayGesture.Label = "Last gesture: " + string(ev.Gesture)
			s.trayMenu.Refresh()
		}
	})
}

// handleOpen runs the file picker and opens the chosen presentation.
// Controller failures of any kind end up in the status line.
func (s *Shell) handleOpen() {
	picker := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			s.status.SetText("Error: " + err.Error())
			return
		}
		if reader == nil {
			return // cancelled
		}

		path := reader.URI().Path()
		reader.Close()

		if err := s.session.OpenPresentation(path); err != nil {
			s.log.Warn().Err(err).Str("path", path).Msg("failed to open presentation")
			s.status.SetText("Error: " + err.Error())
			return
		}

		s.status.SetText("Status: Opened " + filepath.Base(path))
	}, s.window)

	picker.SetFilter(storage.NewExtensionFileFilter([]string{slideshow.Extension}))
	picker.Show()
}

// handleToggle starts or stops the detection session. The button label
// always reflects the current state.
func (s *Shell) handleToggle() {
	if !s.session.Detecting() {
		if err := s.session.StartDetection(); err != nil {
			s.log.Warn().Err(err).Msg("failed to start detection")
			s.status.SetText("Error: " + err.Error())
			return
		}
		s.toggle.SetText("Stop Gesture Control")
		s.status.SetText("Status: Gesture Control Active")
		return
	}

	s.session.StopDetection()
	s.toggle.SetText("Start Gesture Control")
	s.status.SetText("Status: Gesture Control Stopped")
}

// handleClose stops detection, tears the presentation session down,
// and closes the window.
func (s *Shell) handleClose() {
	s.session.Close()
	s.window.Close()
}

// setupTray adds a system tray menu on desktop platforms.
func (s *Shell) setupTray() {
	desk, ok := s.fyneApp.(desktop.App)
	if !ok {
		return
	}

	s.trayGesture = fyne.NewMenuItem("Last gesture: none", nil)
	s.trayGesture.Disabled = true

	s.trayMenu = fyne.NewMenu("Mudra",
		s.trayGesture,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Toggle Gesture Control", func() {
			fyne.Do(s.handleToggle)
		}),
		fyne.NewMenuItem("Quit", func() {
			fyne.Do(s.handleClose)
		}),
	)
	desk.SetSystemTrayMenu(s.trayMenu)
}
