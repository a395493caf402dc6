// Package penetration keeps the overlay's click-through flag in step with the
// native window property and with the frontend.
//
// The flag starts false (the window captures pointer input). Toggle and
// OnHotkey flip it; ResetOnClose and Reset force it back to false. A single
// mutex serializes every mutation. It is held only around the flag itself,
// never across window calls or event emission, because those re-enter the
// windowing system.
package penetration

import (
	"errors"
	"fmt"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/logger"

	"image-overlay/internal/window"
)

// EventChanged is emitted with the new flag value after every flip.
const EventChanged = "penetrable-changed"

var (
	// ErrWindowNotFound is returned when the overlay window does not exist.
	ErrWindowNotFound = errors.New("overlay window not found")
	// ErrApplyFailed wraps failures to set a native window property.
	ErrApplyFailed = errors.New("failed to apply window property")
	// ErrEmitFailed wraps failures to notify the frontend. It is only ever
	// logged.
	ErrEmitFailed = errors.New("failed to emit event")
)

// Controller owns the click-through flag of one overlay window.
type Controller struct {
	windows window.Service
	label   string
	log     logger.Logger

	mu         sync.Mutex
	penetrable bool
}

// New creates a controller for the window registered under label.
func New(windows window.Service, label string, log logger.Logger) *Controller {
	return &Controller{
		windows: windows,
		label:   label,
		log:     log,
	}
}

// Penetrable reports whether the overlay currently ignores pointer input.
func (c *Controller) Penetrable() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.penetrable
}

// Toggle flips the flag, applies it to the window and notifies the frontend.
// It returns the new value. With no window the flag is left untouched.
//
// A failure to apply the native property is returned but the flag keeps its
// new value; the next toggle starts from there.
func (c *Controller) Toggle() (bool, error) {
	win, ok := c.windows.Lookup(c.label)
	if !ok {
		return c.Penetrable(), ErrWindowNotFound
	}
	return c.flip(win)
}

// OnHotkey is the global shortcut entry. It only acts when the window exists
// and is visible, and it never reports errors: the caller is an OS callback.
func (c *Controller) OnHotkey() {
	win, ok := c.windows.Lookup(c.label)
	if !ok || !win.IsVisible() {
		c.log.Debug("hotkey ignored: overlay not shown")
		return
	}
	v, err := c.flip(win)
	if err != nil {
		c.log.Error(fmt.Sprintf("hotkey toggle: %v", err))
		return
	}
	c.log.Info(fmt.Sprintf("click-through switched to %t by hotkey", v))
}

// ResetOnClose forces the flag to false, restores pointer capture and hides
// the window. Calling it again is harmless. The flag is reset even when the
// window is gone.
func (c *Controller) ResetOnClose() error {
	win, err := c.resetApply()
	if err != nil || win == nil {
		return err
	}
	if err := win.Hide(); err != nil {
		return fmt.Errorf("%w: hide: %w", ErrApplyFailed, err)
	}
	return nil
}

// Reset forces the flag to false and restores pointer capture without
// changing visibility. It runs before every show.
func (c *Controller) Reset() error {
	_, err := c.resetApply()
	return err
}

// resetApply returns a nil window when there is none to apply to.
func (c *Controller) resetApply() (window.Window, error) {
	c.mu.Lock()
	c.penetrable = false
	c.mu.Unlock()

	win, ok := c.windows.Lookup(c.label)
	if !ok {
		return nil, nil
	}
	if err := win.SetIgnorePointerEvents(false); err != nil {
		return win, fmt.Errorf("%w: ignore pointer events=false: %w", ErrApplyFailed, err)
	}
	return win, nil
}

// flip is shared by Toggle and OnHotkey.
func (c *Controller) flip(win window.Window) (bool, error) {
	c.mu.Lock()
	c.penetrable = !c.penetrable
	v := c.penetrable
	c.mu.Unlock()

	if err := win.SetIgnorePointerEvents(v); err != nil {
		return v, fmt.Errorf("%w: ignore pointer events=%t: %w", ErrApplyFailed, v, err)
	}
	if err := c.windows.Emit(EventChanged, v); err != nil {
		c.log.Warning(fmt.Errorf("%w %s: %w", ErrEmitFailed, EventChanged, err).Error())
	}
	return v, nil
}
