package theme

import (
	"testing"

	"github.com/muesli/termenv"
)

func TestFor(t *testing.T) {
	tests := []struct {
		dark    bool
		profile termenv.Profile
		want    string
	}{
		{true, termenv.TrueColor, "flexoki-dark"},
		{false, termenv.TrueColor, "flexoki-light"},
		{false, termenv.ANSI256, "flexoki-light"},
		{true, termenv.ANSI, "terminal"},
		{false, termenv.Ascii, "terminal"},
	}
	for _, tt := range tests {
		if got := For(tt.dark, tt.profile).Name; got != tt.want {
			t.Fatalf("For(%v, %v) = %q, want %q", tt.dark, tt.profile, got, tt.want)
		}
	}
}

func TestApplyFollowsTerminalProfile(t *testing.T) {
	defer func() { Active = FlexokiDark }()
	Apply(false)
	if want := For(false, termenv.EnvColorProfile()); Active.Name != want.Name {
		t.Fatalf("Active = %q, want %q", Active.Name, want.Name)
	}
}
