// Package windowtest provides an in-memory window.Service for tests.
package windowtest

import (
	"sync"

	"image-overlay/internal/window"
)

// Event is an emitted frontend event.
type Event struct {
	Name    string
	Payload any
}

// Service is a fake window.Service holding at most one window.
type Service struct {
	mu      sync.Mutex
	label   string
	win     *Window
	events  []Event
	EmitErr error

	ScreenWidth  int
	ScreenHeight int
	ScreenErr    error
}

// NewService returns a service with no window registered.
func NewService() *Service {
	return &Service{ScreenWidth: 1920, ScreenHeight: 1080}
}

// Open registers a hidden window under label and returns it.
func (s *Service) Open(label string) *Window {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.label = label
	s.win = &Window{width: 800, height: 600}
	return s.win
}

// Destroy removes the registered window.
func (s *Service) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.win = nil
}

func (s *Service) Lookup(label string) (window.Window, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.win == nil || label != s.label {
		return nil, false
	}
	return s.win, true
}

func (s *Service) Emit(event string, payload any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.EmitErr != nil {
		return s.EmitErr
	}
	s.events = append(s.events, Event{Name: event, Payload: payload})
	return nil
}

func (s *Service) Screen() (int, int, error) {
	if s.ScreenErr != nil {
		return 0, 0, s.ScreenErr
	}
	return s.ScreenWidth, s.ScreenHeight, nil
}

// Events returns a copy of everything emitted so far.
func (s *Service) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

// Window is a fake window.Window that records its calls.
type Window struct {
	mu            sync.Mutex
	visible       bool
	focused       bool
	ignore        bool
	width, height int
	centered      int
	pages         []string
	applyCalls    int

	// ApplyErr is returned by SetIgnorePointerEvents when set.
	ApplyErr error
	// HideErr is returned by Hide when set.
	HideErr error
	// ShowErr is returned by Show when set.
	ShowErr error
	// NavigateErr is returned by Navigate when set.
	NavigateErr error
}

func (w *Window) Show() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.ShowErr != nil {
		return w.ShowErr
	}
	w.visible = true
	return nil
}

func (w *Window) Hide() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.HideErr != nil {
		return w.HideErr
	}
	w.visible = false
	w.focused = false
	return nil
}

func (w *Window) IsVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}

func (w *Window) SetFocus() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.focused = true
	return nil
}

func (w *Window) SetIgnorePointerEvents(ignore bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.applyCalls++
	if w.ApplyErr != nil {
		return w.ApplyErr
	}
	w.ignore = ignore
	return nil
}

func (w *Window) Navigate(page string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.NavigateErr != nil {
		return w.NavigateErr
	}
	w.pages = append(w.pages, page)
	return nil
}

func (w *Window) Size() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width, w.height
}

func (w *Window) SetSize(width, height int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.width, w.height = width, height
	return nil
}

func (w *Window) Center() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.centered++
	return nil
}

// IgnoresPointer reports the last successfully applied passthrough value.
func (w *Window) IgnoresPointer() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ignore
}

// ApplyCalls counts SetIgnorePointerEvents calls, failed ones included.
func (w *Window) ApplyCalls() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.applyCalls
}

func (w *Window) Focused() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.focused
}

func (w *Window) Centered() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.centered
}

// Pages returns every page navigated to, oldest first.
func (w *Window) Pages() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.pages...)
}
