//go:build windows

package window

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/wailsapp/wails/v2/pkg/logger"
	"golang.org/x/sys/windows"
)

// Windows constants for extended window styles
const (
	_GWL_EXSTYLE       int32 = -20
	_WS_EX_TRANSPARENT int32 = 0x00000020
	_WS_EX_LAYERED     int32 = 0x00080000
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	kernel32                = windows.NewLazySystemDLL("kernel32.dll")
	procFindWindowW         = user32.NewProc("FindWindowW")
	procIsWindow            = user32.NewProc("IsWindow")
	procGetWindowLongW      = user32.NewProc("GetWindowLongW")
	procSetWindowLongW      = user32.NewProc("SetWindowLongW")
	procSetForegroundWindow = user32.NewProc("SetForegroundWindow")
	procSetLastError        = kernel32.NewProc("SetLastError")
)

// nativeWindow resolves the overlay HWND by title and toggles
// WS_EX_TRANSPARENT so mouse events pass through it.
type nativeWindow struct {
	title string
	log   logger.Logger

	mu   sync.Mutex
	hwnd uintptr
}

func newNativeWindow(title string, log logger.Logger) *nativeWindow {
	return &nativeWindow{title: title, log: log}
}

// resolve finds and caches the HWND. A cached handle that no longer names a
// window is looked up again.
func (n *nativeWindow) resolve() (uintptr, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.hwnd != 0 {
		if ok, _, _ := procIsWindow.Call(n.hwnd); ok != 0 {
			return n.hwnd, nil
		}
		n.hwnd = 0
	}

	title, err := windows.UTF16PtrFromString(n.title)
	if err != nil {
		return 0, fmt.Errorf("invalid window title %q: %w", n.title, err)
	}
	hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(title)))
	if hwnd == 0 {
		return 0, fmt.Errorf("no native window titled %q", n.title)
	}
	n.hwnd = hwnd
	return hwnd, nil
}

func (n *nativeWindow) setClickThrough(enable bool) error {
	hwnd, err := n.resolve()
	if err != nil {
		return err
	}

	idx := _GWL_EXSTYLE
	exStyle, _, _ := procGetWindowLongW.Call(hwnd, uintptr(idx))
	cur := int32(exStyle)
	newStyle := cur | _WS_EX_LAYERED
	if enable {
		newStyle = newStyle | _WS_EX_TRANSPARENT
	} else {
		newStyle = newStyle &^ _WS_EX_TRANSPARENT
	}
	if newStyle == cur {
		return nil
	}

	// SetWindowLongW returns the previous value, which may legitimately be 0.
	procSetLastError.Call(0)
	ret, _, callErr := procSetWindowLongW.Call(hwnd, uintptr(idx), uintptr(uint32(newStyle)))
	if ret == 0 && callErr != windows.ERROR_SUCCESS {
		return fmt.Errorf("SetWindowLongW: %w", callErr)
	}
	n.log.Debug(fmt.Sprintf("WS_EX_TRANSPARENT=%t on hwnd 0x%x", enable, hwnd))
	return nil
}

func (n *nativeWindow) focus() error {
	hwnd, err := n.resolve()
	if err != nil {
		return err
	}
	// SetForegroundWindow is refused when another process owns the
	// foreground; the window is still shown, so this is not an error.
	if ok, _, _ := procSetForegroundWindow.Call(hwnd); ok == 0 {
		n.log.Debug("SetForegroundWindow refused")
	}
	return nil
}
