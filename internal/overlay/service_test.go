package overlay

import (
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"image-overlay/internal/config"
	"image-overlay/internal/imageinfo"
	"image-overlay/internal/penetration"
	"image-overlay/internal/window/windowtest"
)

const label = "image-overlay"

var testConfig = config.OverlayConfig{
	FitRatio:    0.8,
	ZoomStep:    0.1,
	MinWidth:    200,
	MinHeight:   150,
	MaxWidth:    3000,
	MaxHeight:   2000,
	Opacity:     0.7,
	OpacityStep: 0.1,
	MinOpacity:  0.1,
}

func newService(t *testing.T) (*Service, *windowtest.Service) {
	t.Helper()
	svc := windowtest.NewService()
	log := &windowtest.Logger{}
	pen := penetration.New(svc, label, log)
	return New(svc, label, testConfig, pen, imageinfo.New(8), log), svc
}

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shot.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestShow_NoWindow(t *testing.T) {
	s, _ := newService(t)
	if err := s.Show(writePNG(t, 10, 10)); !errors.Is(err, penetration.ErrWindowNotFound) {
		t.Fatalf("Expected ErrWindowNotFound, got %v", err)
	}
}

func TestShow_MissingImage(t *testing.T) {
	s, svc := newService(t)
	win := svc.Open(label)

	err := s.Show(filepath.Join(t.TempDir(), "nope.png"))
	if err == nil {
		t.Fatal("Expected an error for a missing image")
	}
	if win.IsVisible() {
		t.Error("Window should stay hidden")
	}
}

func TestShow_FitsAndShows(t *testing.T) {
	s, svc := newService(t)
	win := svc.Open(label)
	path := writePNG(t, 3000, 1000)

	if err := s.Show(path); err != nil {
		t.Fatalf("Show failed: %v", err)
	}

	if !win.IsVisible() || !win.Focused() {
		t.Error("Window should be visible and focused")
	}
	if w, h := win.Size(); w != 1536 || h != 512 {
		t.Errorf("Window size = %dx%d; want 1536x512", w, h)
	}
	if win.Centered() != 1 {
		t.Errorf("Expected one center call, got %d", win.Centered())
	}

	pages := win.Pages()
	if len(pages) != 1 || pages[0] != ImageURL(path) {
		t.Errorf("Unexpected pages %v", pages)
	}
	u, err := url.Parse(pages[0])
	if err != nil {
		t.Fatal(err)
	}
	if u.Query().Get("img") != path {
		t.Errorf("img param = %q; want %q", u.Query().Get("img"), path)
	}
	if s.CurrentImage() == nil || s.CurrentImage().Path != path {
		t.Error("Current image not recorded")
	}
}

func TestShow_ResetsClickThrough(t *testing.T) {
	s, svc := newService(t)
	win := svc.Open(label)
	path := writePNG(t, 100, 100)

	if err := s.Show(path); err != nil {
		t.Fatal(err)
	}
	if v, err := s.TogglePenetrable(); err != nil || !v {
		t.Fatalf("TogglePenetrable() = %t, %v", v, err)
	}

	// Show again without closing: a new show starts interactive.
	if err := s.Show(path); err != nil {
		t.Fatal(err)
	}
	if s.IsPenetrable() || win.IgnoresPointer() {
		t.Error("Show should reset click-through")
	}
}

func TestShow_FailureForgetsImage(t *testing.T) {
	tests := []struct {
		name  string
		setup func(w *windowtest.Window)
	}{
		{"navigate", func(w *windowtest.Window) { w.NavigateErr = errors.New("webview gone") }},
		{"show", func(w *windowtest.Window) { w.ShowErr = errors.New("window gone") }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, svc := newService(t)
			win := svc.Open(label)
			path := writePNG(t, 4, 4)
			tc.setup(win)

			if err := s.Show(path); err == nil {
				t.Fatal("Expected Show to fail")
			}
			if s.CurrentImage() != nil {
				t.Error("Failed show left an image recorded")
			}
			if _, err := s.StepOpacity(true); !errors.Is(err, ErrNoImage) {
				t.Errorf("Expected ErrNoImage after failed show, got %v", err)
			}

			rec := httptest.NewRecorder()
			s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, ImageRoute+"?path="+url.QueryEscape(path), nil))
			if rec.Code != http.StatusNotFound {
				t.Errorf("Failed show: status %d; want 404", rec.Code)
			}
		})
	}
}

func TestClose(t *testing.T) {
	s, svc := newService(t)
	win := svc.Open(label)
	if err := s.Show(writePNG(t, 100, 100)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.TogglePenetrable(); err != nil {
		t.Fatal(err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if s.IsPenetrable() || win.IgnoresPointer() || win.IsVisible() {
		t.Error("Close should leave the window interactive and hidden")
	}
	if s.CurrentImage() != nil {
		t.Error("Close should forget the image")
	}
	if err := s.Close(); err != nil {
		t.Errorf("Second close failed: %v", err)
	}
}

func TestOnHotkey_HiddenIsNoOp(t *testing.T) {
	s, svc := newService(t)
	svc.Open(label)

	s.OnHotkey()
	if s.IsPenetrable() {
		t.Error("Hotkey on hidden overlay changed state")
	}

	if err := s.Show(writePNG(t, 100, 100)); err != nil {
		t.Fatal(err)
	}
	s.OnHotkey()
	if !s.IsPenetrable() {
		t.Error("Hotkey on shown overlay should toggle")
	}
}

func TestStepOpacity(t *testing.T) {
	s, svc := newService(t)
	svc.Open(label)

	if _, err := s.StepOpacity(true); !errors.Is(err, ErrNoImage) {
		t.Fatalf("Expected ErrNoImage, got %v", err)
	}
	if err := s.Show(writePNG(t, 100, 100)); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		up   bool
		want float64
	}{
		{true, 0.8},
		{true, 0.9},
		{true, 1},
		{true, 1},
		{false, 0.9},
	}
	for i, tc := range tests {
		got, err := s.StepOpacity(tc.up)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if got != tc.want {
			t.Errorf("step %d = %v; want %v", i, got, tc.want)
		}
	}

	for i := 0; i < 20; i++ {
		_, _ = s.StepOpacity(false)
	}
	if s.Opacity() != 0.1 {
		t.Errorf("Opacity floor = %v; want 0.1", s.Opacity())
	}

	events := svc.Events()
	last := events[len(events)-1]
	if last.Name != EventOpacityChanged || last.Payload != 0.1 {
		t.Errorf("Unexpected last event %+v", last)
	}
}

func TestOpacity_FollowsConfig(t *testing.T) {
	svc := windowtest.NewService()
	svc.Open(label)
	log := &windowtest.Logger{}
	cfg := testConfig
	cfg.Opacity = 0.5
	s := New(svc, label, cfg, penetration.New(svc, label, log), imageinfo.New(8), log)

	if s.Opacity() != 0.5 {
		t.Errorf("Initial opacity = %v; want 0.5", s.Opacity())
	}
	if err := s.Show(writePNG(t, 10, 10)); err != nil {
		t.Fatal(err)
	}
	if got, err := s.StepOpacity(true); err != nil || got != 0.6 {
		t.Errorf("StepOpacity(true) = %v, %v; want 0.6", got, err)
	}

	// A new show starts again from the configured opacity.
	if err := s.Show(writePNG(t, 10, 10)); err != nil {
		t.Fatal(err)
	}
	if s.Opacity() != 0.5 {
		t.Errorf("Opacity after new show = %v; want 0.5", s.Opacity())
	}
}

func TestZoom(t *testing.T) {
	s, svc := newService(t)
	win := svc.Open(label)

	if err := s.Zoom(true); !errors.Is(err, ErrNoImage) {
		t.Fatalf("Expected ErrNoImage, got %v", err)
	}
	if err := s.Show(writePNG(t, 1000, 500)); err != nil {
		t.Fatal(err)
	}

	if err := s.Zoom(true); err != nil {
		t.Fatal(err)
	}
	if w, h := win.Size(); w != 1100 || h != 550 {
		t.Errorf("Zoom in = %dx%d; want 1100x550", w, h)
	}

	_ = win.SetSize(210, 160)
	if err := s.Zoom(false); err != nil {
		t.Fatal(err)
	}
	if w, h := win.Size(); w != 200 || h != 150 {
		t.Errorf("Zoom out = %dx%d; want clamped 200x150", w, h)
	}

	_ = win.SetSize(2900, 1900)
	if err := s.Zoom(true); err != nil {
		t.Fatal(err)
	}
	if w, h := win.Size(); w != 3000 || h != 2000 {
		t.Errorf("Zoom in = %dx%d; want clamped 3000x2000", w, h)
	}
}

func TestServeHTTP(t *testing.T) {
	s, svc := newService(t)
	svc.Open(label)
	path := writePNG(t, 4, 4)

	get := func(target string) int {
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		return rec.Code
	}
	imageTarget := ImageRoute + "?path=" + url.QueryEscape(path)

	if code := get(imageTarget); code != http.StatusNotFound {
		t.Errorf("Before show: status %d; want 404", code)
	}

	if err := s.Show(path); err != nil {
		t.Fatal(err)
	}
	if code := get(imageTarget); code != http.StatusOK {
		t.Errorf("Current image: status %d; want 200", code)
	}
	if code := get(ImageRoute + "?path=" + url.QueryEscape("/etc/passwd")); code != http.StatusNotFound {
		t.Errorf("Other file: status %d; want 404", code)
	}
	if code := get("/elsewhere"); code != http.StatusNotFound {
		t.Errorf("Other route: status %d; want 404", code)
	}
}
