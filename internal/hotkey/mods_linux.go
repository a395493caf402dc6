//go:build linux

package hotkey

import "golang.design/x/hotkey"

// DefaultBinding is the shortcut used when none is configured.
const DefaultBinding = "Ctrl+1"

// X11 maps Alt to Mod1 and Super to Mod4 on common keyboard layouts.
var modifiers = map[string]hotkey.Modifier{
	"ctrl":    hotkey.ModCtrl,
	"control": hotkey.ModCtrl,
	"shift":   hotkey.ModShift,
	"alt":     hotkey.Mod1,
	"super":   hotkey.Mod4,
	"win":     hotkey.Mod4,
	"cmd":     hotkey.Mod4,
}
