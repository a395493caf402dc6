package window

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/logger"
	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// Wails implements Service on top of the Wails v2 runtime. The application
// has a single native window, registered under one label.
type Wails struct {
	label  string
	native *nativeWindow
	log    logger.Logger

	mu      sync.RWMutex
	ctx     context.Context
	visible bool
}

// NewWails creates a service for the window titled title, reachable through
// Lookup(label). It is unusable until Attach is called.
func NewWails(label, title string, log logger.Logger) *Wails {
	return &Wails{
		label:  label,
		native: newNativeWindow(title, log),
		log:    log,
	}
}

// Attach binds the runtime context handed to OnStartup.
func (w *Wails) Attach(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ctx = ctx
}

// Detach drops the runtime context; every later Lookup misses.
func (w *Wails) Detach() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ctx = nil
	w.visible = false
}

func (w *Wails) context() (context.Context, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.ctx == nil {
		return nil, ErrNotAttached
	}
	return w.ctx, nil
}

// Lookup returns the overlay window when label matches and the runtime is up.
func (w *Wails) Lookup(label string) (Window, bool) {
	if label != w.label {
		return nil, false
	}
	if _, err := w.context(); err != nil {
		return nil, false
	}
	return &wailsWindow{svc: w}, true
}

// Emit sends an event to every frontend listener.
func (w *Wails) Emit(event string, payload any) error {
	ctx, err := w.context()
	if err != nil {
		return fmt.Errorf("emit %s: %w", event, err)
	}
	wailsruntime.EventsEmit(ctx, event, payload)
	return nil
}

// Screen returns the current screen size, falling back to the primary one.
func (w *Wails) Screen() (int, int, error) {
	ctx, err := w.context()
	if err != nil {
		return 0, 0, err
	}
	screens, err := wailsruntime.ScreenGetAll(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list screens: %w", err)
	}
	var fallback *wailsruntime.Screen
	for i := range screens {
		if screens[i].IsCurrent {
			return screens[i].Width, screens[i].Height, nil
		}
		if screens[i].IsPrimary && fallback == nil {
			fallback = &screens[i]
		}
	}
	if fallback == nil {
		return 0, 0, fmt.Errorf("no screen found")
	}
	return fallback.Width, fallback.Height, nil
}

func (w *Wails) setVisible(v bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.visible = v
}

type wailsWindow struct {
	svc *Wails
}

func (ww *wailsWindow) Show() error {
	ctx, err := ww.svc.context()
	if err != nil {
		return err
	}
	wailsruntime.WindowShow(ctx)
	wailsruntime.WindowUnminimise(ctx)
	ww.svc.setVisible(true)
	return nil
}

func (ww *wailsWindow) Hide() error {
	ctx, err := ww.svc.context()
	if err != nil {
		return err
	}
	wailsruntime.WindowHide(ctx)
	ww.svc.setVisible(false)
	return nil
}

func (ww *wailsWindow) IsVisible() bool {
	ctx, err := ww.svc.context()
	if err != nil {
		return false
	}
	ww.svc.mu.RLock()
	visible := ww.svc.visible
	ww.svc.mu.RUnlock()
	return visible && !wailsruntime.WindowIsMinimised(ctx)
}

func (ww *wailsWindow) SetFocus() error {
	if _, err := ww.svc.context(); err != nil {
		return err
	}
	return ww.svc.native.focus()
}

func (ww *wailsWindow) SetIgnorePointerEvents(ignore bool) error {
	if _, err := ww.svc.context(); err != nil {
		return err
	}
	return ww.svc.native.setClickThrough(ignore)
}

func (ww *wailsWindow) Navigate(page string) error {
	ctx, err := ww.svc.context()
	if err != nil {
		return err
	}
	wailsruntime.WindowExecJS(ctx, "window.location.href = "+strconv.Quote(page)+";")
	return nil
}

func (ww *wailsWindow) Size() (int, int) {
	ctx, err := ww.svc.context()
	if err != nil {
		return 0, 0
	}
	return wailsruntime.WindowGetSize(ctx)
}

func (ww *wailsWindow) SetSize(width, height int) error {
	ctx, err := ww.svc.context()
	if err != nil {
		return err
	}
	wailsruntime.WindowSetSize(ctx, width, height)
	return nil
}

func (ww *wailsWindow) Center() error {
	ctx, err := ww.svc.context()
	if err != nil {
		return err
	}
	wailsruntime.WindowCenter(ctx)
	return nil
}
