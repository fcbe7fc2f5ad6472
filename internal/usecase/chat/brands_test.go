package chat

import "testing"

func TestBrandCarryQuery(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"do you carry olay", "olay"},
		{"Do you sell La Colors?", "la colors"},
		{"do you stock black opal products", "black opal products"},
		{"what brands do you have", ""},
	}
	for _, tt := range tests {
		if got := brandCarryQuery(tt.text); got != tt.want {
			t.Errorf("brandCarryQuery(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestBrandKnown(t *testing.T) {
	brands := []string{"Olay", "La Colors", "Black Opal"}
	if !brandKnown("olay", brands) {
		t.Error("exact match should be known")
	}
	if !brandKnown("la colors products", brands) {
		t.Error("superstring of a catalog brand should be known")
	}
	if brandKnown("glossier", brands) {
		t.Error("unknown brand reported as known")
	}
}
