// Package slideshow controls an external presentation application
// through a narrow automation capability interface.
package slideshow

import "errors"

// Sentinel errors for presentation control.
var (
	// ErrHostUnavailable means the automation host application could not
	// be created or reached.
	ErrHostUnavailable = errors.New("presentation host unavailable")
	// ErrInvalidFormat means the file does not carry the supported
	// presentation extension.
	ErrInvalidFormat = errors.New("only .pptx files are supported")
	// ErrFileNotFound means the presentation file does not exist.
	ErrFileNotFound = errors.New("presentation file not found")
	// ErrNoActiveSession means a navigation command was issued while no
	// slideshow is running.
	ErrNoActiveSession = errors.New("no active slideshow session")
)

// Host is the capability interface over the automation application.
// The concrete binding (COM automation behind a helper process) never
// leaks past this package; tests substitute FakeHost.
type Host interface {
	// Start acquires the host application.
	Start() error
	// Open opens a presentation by absolute path and returns its slide count.
	Open(path string) (int, error)
	// StartShow begins the slideshow view at the given slide index (1-based).
	StartShow(from int) error
	// Next advances the slideshow by one slide.
	Next() error
	// Previous steps the slideshow back by one slide.
	Previous() error
	// Goto jumps the slideshow to the given slide index (1-based).
	Goto(n int) error
	// EndShow exits the slideshow view.
	EndShow() error
	// ClosePresentation closes the open presentation.
	ClosePresentation() error
	// Quit shuts the host application down.
	Quit() error
}
