//go:build !windows && !darwin

package window

import (
	"github.com/wailsapp/wails/v2/pkg/logger"
)

// nativeWindow has no passthrough primitive on this platform. Disabling
// passthrough is the native default and always succeeds, so close and reset
// keep working; enabling it fails.
type nativeWindow struct {
	log logger.Logger
}

func newNativeWindow(_ string, log logger.Logger) *nativeWindow {
	return &nativeWindow{log: log}
}

func (n *nativeWindow) setClickThrough(enable bool) error {
	if enable {
		return ErrPassthroughUnsupported
	}
	return nil
}

func (n *nativeWindow) focus() error {
	return nil
}
