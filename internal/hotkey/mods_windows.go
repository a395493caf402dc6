//go:build windows

package hotkey

import "golang.design/x/hotkey"

// DefaultBinding is the shortcut used when none is configured.
const DefaultBinding = "Ctrl+1"

var modifiers = map[string]hotkey.Modifier{
	"ctrl":    hotkey.ModCtrl,
	"control": hotkey.ModCtrl,
	"shift":   hotkey.ModShift,
	"alt":     hotkey.ModAlt,
	"win":     hotkey.ModWin,
	"super":   hotkey.ModWin,
	"cmd":     hotkey.ModWin,
}
