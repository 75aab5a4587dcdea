package input

import "testing"

func TestFirstDirectionPrecedence(t *testing.T) {
	tests := []struct {
		name string
		held []string
		want string
		ok   bool
	}{
		{"none", nil, "", false},
		{"right", []string{ArrowRight}, ArrowRight, true},
		{"left beats right", []string{ArrowRight, ArrowLeft}, ArrowLeft, true},
		{"up beats down", []string{ArrowDown, ArrowUp}, ArrowUp, true},
		{"right beats up", []string{ArrowUp, ArrowRight}, ArrowRight, true},
		{"unknown key", []string{"Space"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := FirstDirection(NewKeyState(tt.held...))
			if ok != tt.ok || d.Name != tt.want {
				t.Errorf("Expected %q/%v, got %q/%v", tt.want, tt.ok, d.Name, ok)
			}
		})
	}
}

func TestFirstDirectionNilReader(t *testing.T) {
	if _, ok := FirstDirection(nil); ok {
		t.Error("Expected no direction from nil reader")
	}
}

func TestKeyStateSnapshotResets(t *testing.T) {
	keys := NewKeyState()
	keys.Press(ArrowUp)

	frame := keys.Snapshot()
	if !frame.Key(ArrowUp) {
		t.Error("Expected snapshot to hold ArrowUp")
	}
	if keys.Len() != 0 {
		t.Errorf("Expected source reset, got %d keys", keys.Len())
	}

	frame.Reset()
	if frame.Key(ArrowUp) {
		t.Error("Expected ArrowUp released")
	}
}
