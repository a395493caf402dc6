// Package hotkey registers the global shortcut that toggles click-through.
package hotkey

import (
	"fmt"
	"strings"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/logger"
	"golang.design/x/hotkey"
)

// Binding is a parsed shortcut such as "Ctrl+1".
type Binding struct {
	Mods []hotkey.Modifier
	Key  hotkey.Key
	text string
}

func (b Binding) String() string { return b.text }

// Parse converts a binding like "Ctrl+Shift+1" into modifiers and a key.
// Matching is case-insensitive. Exactly one non-modifier key is required.
func Parse(binding string) (Binding, error) {
	if strings.TrimSpace(binding) == "" {
		return Binding{}, fmt.Errorf("empty hotkey binding")
	}

	b := Binding{text: binding}
	haveKey := false
	for _, part := range strings.Split(binding, "+") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			return Binding{}, fmt.Errorf("hotkey %q: empty key name", binding)
		}
		if mod, ok := modifiers[name]; ok {
			b.Mods = append(b.Mods, mod)
			continue
		}
		key, ok := keys[name]
		if !ok {
			return Binding{}, fmt.Errorf("hotkey %q: unknown key %q", binding, part)
		}
		if haveKey {
			return Binding{}, fmt.Errorf("hotkey %q: more than one key", binding)
		}
		b.Key = key
		haveKey = true
	}
	if !haveKey {
		return Binding{}, fmt.Errorf("hotkey %q: no key, only modifiers", binding)
	}
	return b, nil
}

// Listener delivers key-press transitions of one registered hotkey.
type Listener struct {
	hk   *hotkey.Hotkey
	log  logger.Logger
	done chan struct{}
	once sync.Once
}

// Listen registers b as a global hotkey and calls fn on every key press.
// Releases are ignored. fn runs on the listener's goroutine; a panic in fn is
// logged and the listener keeps running.
func Listen(b Binding, log logger.Logger, fn func()) (*Listener, error) {
	hk := hotkey.New(b.Mods, b.Key)
	if err := hk.Register(); err != nil {
		return nil, fmt.Errorf("failed to register hotkey %s: %w", b, err)
	}

	l := &Listener{
		hk:   hk,
		log:  log,
		done: make(chan struct{}),
	}
	go l.loop(hk.Keydown(), b, fn)
	log.Info(fmt.Sprintf("Global hotkey registered: %s", b))
	return l, nil
}

func (l *Listener) loop(keydown <-chan hotkey.Event, b Binding, fn func()) {
	for {
		select {
		case <-l.done:
			return
		case _, ok := <-keydown:
			if !ok {
				return
			}
			l.log.Debug(fmt.Sprintf("Hotkey %s pressed", b))
			l.dispatch(fn)
		}
	}
}

func (l *Listener) dispatch(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error(fmt.Sprintf("PANIC in hotkey callback: %v", r))
		}
	}()
	fn()
}

// Stop unregisters the hotkey. It is safe to call more than once.
func (l *Listener) Stop() error {
	var err error
	l.once.Do(func() {
		close(l.done)
		err = l.hk.Unregister()
	})
	return err
}
