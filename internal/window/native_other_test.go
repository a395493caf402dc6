//go:build !windows && !darwin

package window

import (
	"context"
	"errors"
	"testing"

	"github.com/wailsapp/wails/v2/pkg/logger"
)

func TestSetIgnorePointerEvents_Unsupported(t *testing.T) {
	w := NewWails("image-overlay", "Image Overlay", logger.NewDefaultLogger())
	w.Attach(context.Background())

	win, ok := w.Lookup("image-overlay")
	if !ok {
		t.Fatal("Expected the attached window to be found")
	}

	if err := win.SetIgnorePointerEvents(true); !errors.Is(err, ErrPassthroughUnsupported) {
		t.Errorf("SetIgnorePointerEvents(true) = %v; want ErrPassthroughUnsupported", err)
	}
	if err := win.SetIgnorePointerEvents(false); err != nil {
		t.Errorf("SetIgnorePointerEvents(false) = %v; want nil", err)
	}
}
