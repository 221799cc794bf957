package palette

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#3aa99f", "#3AA99F"},
		{"3AA99F", "#3AA99F"},
		{"#fff", "#FFFFFF"},
		{"  #0a0  ", "#00AA00"},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, in := range []string{"", "#12", "#1234", "#GGGGGG", "red", "#12345678"} {
		if _, err := Parse(in); !errors.Is(err, ErrInvalidHex) {
			t.Errorf("Parse(%q) err = %v, want ErrInvalidHex", in, err)
		}
	}
}

func TestOrDefault(t *testing.T) {
	if got := OrDefault("nope", Default); got != Default {
		t.Errorf("OrDefault(invalid) = %q, want %q", got, Default)
	}
	if got := OrDefault("#abc", Default); got != "#AABBCC" {
		t.Errorf("OrDefault(#abc) = %q, want #AABBCC", got)
	}
}

func TestForeground(t *testing.T) {
	if got := Foreground("#FFFFFF"); got != "#100F0F" {
		t.Errorf("Foreground(white) = %q, want dark text", got)
	}
	if got := Foreground("#000000"); got != "#FFFCF0" {
		t.Errorf("Foreground(black) = %q, want light text", got)
	}
}

func TestBlend_Endpoints(t *testing.T) {
	if got := Blend("#000000", "#FFFFFF", 0); got != "#000000" {
		t.Errorf("Blend t=0 = %q, want #000000", got)
	}
	if got := Blend("#000000", "#FFFFFF", 1); got != "#FFFFFF" {
		t.Errorf("Blend t=1 = %q, want #FFFFFF", got)
	}
}
