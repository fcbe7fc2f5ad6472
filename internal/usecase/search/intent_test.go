package search

import "testing"

func TestIsProductIntent(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		// Follow-ups continue a product conversation.
		{"show me other types", true},
		{"anything similar?", true},

		// Affirmative continuations.
		{"yes i need the cream", true},

		// Short acknowledgements carry no intent.
		{"yes", false},
		{"ok", false},
		{"thanks", false},

		// Lone capitalized unknown tokens look like label brand codes.
		{"SVR", true},
		{"TIAM", true}, // allow-listed, falls through to the pattern, which matches
		{"Xylophone", false},

		// Vague requests are rejected.
		{"what do you have", false},
		{"help me", false},

		// The broad pattern.
		{"do you have black soap", true},
		{"i want a niacinamide serum", true},
		{"what are your store hours", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsProductIntent(tt.text); got != tt.want {
			t.Errorf("IsProductIntent(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
