package main

import (
	"os"

	fyneapp "fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gui"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/slideshow"
)

const monitorAddr = "127.0.0.1:8591"

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Logger()

	logger.Info().Msg("Mudra gesture-controlled presenter")

	// Try MediaPipe first, fall back to the mock detector so the UI
	// still comes up without the inference helper installed.
	var det detector.Detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig(), logger); err == nil {
		det = mp
		logger.Info().Msg("using MediaPipe hand detection")
	} else {
		logger.Warn().Err(err).Msg("MediaPipe not available, using mock detector")
		det = detector.NewMockDetector()
	}
	defer det.Close()

	host := slideshow.NewBridgeHost(logger)

	session := app.New(app.Config{}, det, host, logger)

	monitor := server.New(logger)
	session.OnGesture(func(ev app.Event) {
		monitor.Publish(ev.Session, string(ev.Gesture), ev.At)
	})
	go func() {
		if err := monitor.ListenAndServe(monitorAddr); err != nil {
			logger.Warn().Err(err).Msg("monitor server stopped")
		}
	}()

	shell := gui.New(fyneapp.NewWithID("com.ayusman.mudra"), session, logger)
	shell.ShowAndRun()

	// The window is gone; release whatever is still held.
	session.Close()
	logger.Info().Msg("shutdown complete")
}
