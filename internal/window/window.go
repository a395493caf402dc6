// Package window exposes the overlay window and the UI event channel to the
// rest of the application.
package window

import "errors"

// ErrNotAttached is returned when the window runtime has not started yet or
// has already shut down.
var ErrNotAttached = errors.New("window runtime not attached")

// ErrPassthroughUnsupported is returned when pointer passthrough cannot be
// enabled on this platform.
var ErrPassthroughUnsupported = errors.New("pointer passthrough not supported on this platform")

// Window is a handle to a live overlay window.
type Window interface {
	Show() error
	Hide() error
	IsVisible() bool
	SetFocus() error
	// SetIgnorePointerEvents makes the window transparent to mouse input when
	// ignore is true.
	SetIgnorePointerEvents(ignore bool) error
	// Navigate loads page (relative to the asset root) into the window.
	Navigate(page string) error
	Size() (width, height int)
	SetSize(width, height int) error
	Center() error
}

// Service looks up windows by label and emits events to the frontend.
type Service interface {
	// Lookup returns the window registered under label. A missing window is
	// a normal condition, not an error.
	Lookup(label string) (Window, bool)
	Emit(event string, payload any) error
	// Screen returns the size of the screen the overlay is on.
	Screen() (width, height int, err error)
}
