//go:build darwin

package window

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa
#include <stdlib.h>
#include <Cocoa/Cocoa.h>

static void overlay_on_main(void (^block)(void)) {
  if ([NSThread isMainThread]) {
    block();
  } else {
    dispatch_sync(dispatch_get_main_queue(), block);
  }
}

static NSWindow* overlay_find(const char* title) {
  NSString* want = [NSString stringWithUTF8String:title];
  for (NSWindow* win in [NSApp windows]) {
    if ([[win title] isEqualToString:want]) {
      return win;
    }
  }
  return nil;
}

// Returns 0 when no window carries the title.
static int overlay_set_click_through(const char* title, int on) {
  __block int found = 0;
  overlay_on_main(^{
    NSWindow* win = overlay_find(title);
    if (!win) return;
    [win setIgnoresMouseEvents:on ? YES : NO];
    found = 1;
  });
  return found;
}

static int overlay_focus(const char* title) {
  __block int found = 0;
  overlay_on_main(^{
    NSWindow* win = overlay_find(title);
    if (!win) return;
    [NSApp activateIgnoringOtherApps:YES];
    [win makeKeyAndOrderFront:nil];
    found = 1;
  });
  return found;
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/wailsapp/wails/v2/pkg/logger"
)

// nativeWindow finds the Wails NSWindow by title and sets
// ignoresMouseEvents on it.
type nativeWindow struct {
	title string
	log   logger.Logger
}

func newNativeWindow(title string, log logger.Logger) *nativeWindow {
	return &nativeWindow{title: title, log: log}
}

func (n *nativeWindow) setClickThrough(enable bool) error {
	title := C.CString(n.title)
	defer C.free(unsafe.Pointer(title))

	on := C.int(0)
	if enable {
		on = 1
	}
	if C.overlay_set_click_through(title, on) == 0 {
		return fmt.Errorf("no native window titled %q", n.title)
	}
	n.log.Debug(fmt.Sprintf("ignoresMouseEvents=%t on %q", enable, n.title))
	return nil
}

func (n *nativeWindow) focus() error {
	title := C.CString(n.title)
	defer C.free(unsafe.Pointer(title))

	if C.overlay_focus(title) == 0 {
		return fmt.Errorf("no native window titled %q", n.title)
	}
	return nil
}
