package selfcontrol

import (
	"path/filepath"
	"testing"
)

func TestBlockStarted(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{name: "empty", raw: "", want: false},
		{name: "distant future sentinel", raw: "4001-01-01 00:00:00 +0000\n", want: false},
		{name: "real start date", raw: "2024-01-01 09:00:00 +0000\n", want: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := blockStarted(tt.raw); got != tt.want {
				t.Fatalf("blockStarted(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestBinaryPath(t *testing.T) {
	t.Parallel()
	got := binaryPath("/Applications/SelfControl.app")
	want := filepath.Join("/Applications/SelfControl.app", "Contents", "MacOS", "org.eyebeam.SelfControl")
	if got != want {
		t.Fatalf("binaryPath = %q, want %q", got, want)
	}
}
