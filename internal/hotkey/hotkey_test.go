package hotkey

import (
	"testing"

	"golang.design/x/hotkey"
)

func TestParse(t *testing.T) {
	tests := []struct {
		binding string
		mods    []hotkey.Modifier
		key     hotkey.Key
	}{
		{"Ctrl+1", []hotkey.Modifier{hotkey.ModCtrl}, hotkey.Key1},
		{"ctrl + shift + q", []hotkey.Modifier{hotkey.ModCtrl, hotkey.ModShift}, hotkey.KeyQ},
		{"F5", nil, hotkey.KeyF5},
		{"Shift+Space", []hotkey.Modifier{hotkey.ModShift}, hotkey.KeySpace},
		{"CONTROL+Esc", []hotkey.Modifier{hotkey.ModCtrl}, hotkey.KeyEscape},
	}

	for _, tt := range tests {
		t.Run(tt.binding, func(t *testing.T) {
			b, err := Parse(tt.binding)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.binding, err)
			}
			if b.Key != tt.key {
				t.Errorf("Parse(%q) key = %v; want %v", tt.binding, b.Key, tt.key)
			}
			if len(b.Mods) != len(tt.mods) {
				t.Fatalf("Parse(%q) returned %d modifiers, expected %d", tt.binding, len(b.Mods), len(tt.mods))
			}
			for i := range tt.mods {
				if b.Mods[i] != tt.mods[i] {
					t.Errorf("Parse(%q) modifier %d = %v; want %v", tt.binding, i, b.Mods[i], tt.mods[i])
				}
			}
			if b.String() != tt.binding {
				t.Errorf("String() = %q; want %q", b.String(), tt.binding)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, binding := range []string{"", "   ", "Ctrl+", "Ctrl+Shift", "Ctrl+1+2", "Ctrl+Banana"} {
		t.Run(binding, func(t *testing.T) {
			if _, err := Parse(binding); err == nil {
				t.Errorf("Parse(%q) should fail", binding)
			}
		})
	}
}

func TestDefaultBindingParses(t *testing.T) {
	b, err := Parse(DefaultBinding)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", DefaultBinding, err)
	}
	if b.Key != hotkey.Key1 || len(b.Mods) != 1 {
		t.Errorf("Unexpected default binding %+v", b)
	}
}
