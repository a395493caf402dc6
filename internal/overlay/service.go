package overlay

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/logger"

	"image-overlay/internal/config"
	"image-overlay/internal/imageinfo"
	"image-overlay/internal/penetration"
	"image-overlay/internal/window"
)

const (
	// Page is the frontend page that renders the image.
	Page = "image-overlay.html"
	// ImageRoute serves the image currently shown.
	ImageRoute = "/overlay/image"
	// EventOpacityChanged carries the new opacity after StepOpacity.
	EventOpacityChanged = "opacity-changed"
)

// ErrNoImage is returned by operations that need an image on screen.
var ErrNoImage = errors.New("no image shown")

// Service drives the overlay window: what it shows, its size and opacity.
// Click-through is delegated to the penetration controller.
type Service struct {
	windows     window.Service
	label       string
	cfg         config.OverlayConfig
	penetration *penetration.Controller
	images      *imageinfo.Service
	log         logger.Logger

	mu      sync.RWMutex
	current *imageinfo.Info
	opacity float64
}

// New creates a new overlay service
func New(windows window.Service, label string, cfg config.OverlayConfig, pen *penetration.Controller, images *imageinfo.Service, log logger.Logger) *Service {
	return &Service{
		windows:     windows,
		label:       label,
		cfg:         cfg,
		penetration: pen,
		images:      images,
		log:         log,
		opacity:     cfg.Opacity,
	}
}

// ImageURL returns the frontend page URL for imagePath.
func ImageURL(imagePath string) string {
	return Page + "?img=" + url.QueryEscape(imagePath)
}

// Show loads imagePath into the overlay, sizes the window to the image and
// shows it. Click-through is always reset first, so a new show starts
// interactive.
func (s *Service) Show(imagePath string) error {
	win, ok := s.windows.Lookup(s.label)
	if !ok {
		return penetration.ErrWindowNotFound
	}

	info, err := s.images.Lookup(imagePath)
	if err != nil {
		return fmt.Errorf("cannot show image: %w", err)
	}

	if err := s.penetration.Reset(); err != nil {
		return err
	}

	// The page requests the image as soon as it loads, so it is published
	// before navigating and withdrawn if the show does not complete.
	s.mu.Lock()
	s.current = info
	s.opacity = s.cfg.Opacity
	s.mu.Unlock()

	if err := s.present(win, info, imagePath); err != nil {
		s.mu.Lock()
		s.current = nil
		s.mu.Unlock()
		return err
	}

	s.log.Info(fmt.Sprintf("Showing %s (%dx%d %s)", info.Path, info.Width, info.Height, info.Format))
	return nil
}

func (s *Service) present(win window.Window, info *imageinfo.Info, imagePath string) error {
	if err := win.Navigate(ImageURL(imagePath)); err != nil {
		return fmt.Errorf("failed to load overlay page: %w", err)
	}
	s.fit(win, info)
	if err := win.Show(); err != nil {
		return fmt.Errorf("%w: show: %w", penetration.ErrApplyFailed, err)
	}
	if err := win.SetFocus(); err != nil {
		return fmt.Errorf("%w: focus: %w", penetration.ErrApplyFailed, err)
	}
	return nil
}

// fit resizes the window to the image, bounded by the screen. Sizing is
// cosmetic; failures are logged and the show goes on.
func (s *Service) fit(win window.Window, info *imageinfo.Info) {
	sw, sh, err := s.windows.Screen()
	if err != nil {
		s.log.Warning(fmt.Sprintf("Failed to read screen size: %v", err))
		return
	}
	w, h := imageinfo.Fit(info.Width, info.Height, sw, sh, s.cfg.FitRatio)
	if w <= 0 || h <= 0 {
		return
	}
	if err := win.SetSize(w, h); err != nil {
		s.log.Warning(fmt.Sprintf("Failed to resize window to fit image: %v", err))
		return
	}
	if err := win.Center(); err != nil {
		s.log.Warning(fmt.Sprintf("Failed to center window: %v", err))
	}
}

// Close resets click-through and hides the overlay.
func (s *Service) Close() error {
	err := s.penetration.ResetOnClose()

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	return err
}

// TogglePenetrable flips click-through and returns the new value.
func (s *Service) TogglePenetrable() (bool, error) {
	return s.penetration.Toggle()
}

// OnHotkey handles the global shortcut.
func (s *Service) OnHotkey() {
	s.penetration.OnHotkey()
}

// IsPenetrable reports the current click-through state.
func (s *Service) IsPenetrable() bool {
	return s.penetration.Penetrable()
}

// CurrentImage returns the image on screen, or nil.
func (s *Service) CurrentImage() *imageinfo.Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Opacity returns the image opacity.
func (s *Service) Opacity() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opacity
}

// StepOpacity raises or lowers the opacity by one step and notifies the
// frontend. The value stays within [MinOpacity, 1].
func (s *Service) StepOpacity(up bool) (float64, error) {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return 0, ErrNoImage
	}
	step := s.cfg.OpacityStep
	if !up {
		step = -step
	}
	// Round to avoid drift from repeated float steps.
	v := math.Round((s.opacity+step)*100) / 100
	v = math.Max(s.cfg.MinOpacity, math.Min(1, v))
	s.opacity = v
	s.mu.Unlock()

	if err := s.windows.Emit(EventOpacityChanged, v); err != nil {
		s.log.Warning(fmt.Sprintf("%v %s: %v", penetration.ErrEmitFailed, EventOpacityChanged, err))
	}
	return v, nil
}

// Zoom grows or shrinks the window by one step within the configured bounds.
func (s *Service) Zoom(in bool) error {
	if s.CurrentImage() == nil {
		return ErrNoImage
	}
	win, ok := s.windows.Lookup(s.label)
	if !ok {
		return penetration.ErrWindowNotFound
	}

	factor := 1 - s.cfg.ZoomStep
	if in {
		factor = 1 + s.cfg.ZoomStep
	}
	w, h := win.Size()
	nw := clamp(int(math.Round(float64(w)*factor)), s.cfg.MinWidth, s.cfg.MaxWidth)
	nh := clamp(int(math.Round(float64(h)*factor)), s.cfg.MinHeight, s.cfg.MaxHeight)
	if err := win.SetSize(nw, nh); err != nil {
		return fmt.Errorf("%w: resize: %w", penetration.ErrApplyFailed, err)
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ServeHTTP serves the image currently on screen. Any other path is refused,
// so the page cannot be used to read arbitrary files.
func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != ImageRoute {
		http.NotFound(w, r)
		return
	}
	current := s.CurrentImage()
	if current == nil || r.URL.Query().Get("path") != current.Path {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, current.Path)
}
