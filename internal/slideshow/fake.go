package slideshow

import (
	"errors"
	"sync"
)

// FakeHost is an in-memory Host for tests. It tracks the slide pointer
// and records lifecycle calls so tests can assert teardown order.
type FakeHost struct {
	mu sync.Mutex

	StartErr error
	OpenErr  error
	Slides   int // slide count reported by Open; defaults to 10

	started    bool
	openPath   string
	showing    bool
	slide      int
	endShows   int
	closeCalls int
	quitCalls  int
}

// NewFakeHost creates a FakeHost reporting the given slide count.
func NewFakeHost(slides int) *FakeHost {
	if slides <= 0 {
		slides = 10
	}
	return &FakeHost{Slides: slides}
}

func (f *FakeHost) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.StartErr != nil {
		return f.StartErr
	}
	f.started = true
	return nil
}

func (f *FakeHost) Open(path string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.started {
		return 0, errors.New("host not started")
	}
	if f.OpenErr != nil {
		return 0, f.OpenErr
	}
	f.openPath = path
	return f.Slides, nil
}

func (f *FakeHost) StartShow(from int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.openPath == "" {
		return errors.New("no presentation open")
	}
	f.showing = true
	f.slide = from
	return nil
}

func (f *FakeHost) Next() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.showing {
		return errors.New("slideshow not running")
	}
	if f.slide < f.Slides {
		f.slide++
	}
	return nil
}

func (f *FakeHost) Previous() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.showing {
		return errors.New("slideshow not running")
	}
	if f.slide > 1 {
		f.slide--
	}
	return nil
}

func (f *FakeHost) Goto(n int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.showing {
		return errors.New("slideshow not running")
	}
	f.slide = n
	return nil
}

func (f *FakeHost) EndShow() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.showing = false
	f.endShows++
	return nil
}

func (f *FakeHost) ClosePresentation() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.openPath = ""
	f.closeCalls++
	return nil
}

func (f *FakeHost) Quit() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = false
	f.quitCalls++
	return nil
}

// Started reports whether the host application has been acquired.
func (f *FakeHost) Started() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.started
}

// Slide returns the current slide pointer.
func (f *FakeHost) Slide() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slide
}

// Showing reports whether the slideshow view is active.
func (f *FakeHost) Showing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.showing
}

// QuitCalls returns how many times Quit has been invoked.
func (f *FakeHost) QuitCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.quitCalls
}
