package renderer

import "testing"

func TestParseMode(t *testing.T) {
	tests := []struct {
		name    string
		want    Mode
		wantErr bool
	}{
		{"lines", ModeLines, false},
		{"", ModeLines, false},
		{"points", ModePoints, false},
		{"triangles", ModeTriangles, false},
		{"wireframe", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestModeRoundTrip(t *testing.T) {
	for _, m := range []Mode{ModeLines, ModePoints, ModeTriangles} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if s := Mode(9).String(); s != "Mode(9)" {
		t.Errorf("unknown mode string = %q", s)
	}
}

func TestIndexed(t *testing.T) {
	if ModeLines.Indexed() || ModePoints.Indexed() {
		t.Error("lines and points draw without indices")
	}
	if !ModeTriangles.Indexed() {
		t.Error("triangles need an index buffer")
	}
}
