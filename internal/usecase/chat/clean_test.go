package chat

import "testing"

func TestCleanReply_StripsListFormatting(t *testing.T) {
	in := "Here are some options:\n1. Shea Soap\n2. Argan Oil\n3.\n- Charcoal Bar"
	got := cleanReply(in, true)
	want := "Here are some options:\nShea Soap\nArgan Oil\nCharcoal Bar"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCleanReply_StripsRepeatedGreeting(t *testing.T) {
	got := cleanReply("Hi there! We have shea soap in stock.", false)
	if got != "We have shea soap in stock." {
		t.Errorf("got %q", got)
	}
}

func TestCleanReply_KeepsGreetingOnFirstMessage(t *testing.T) {
	in := "Hello! Welcome to MamaTega."
	if got := cleanReply(in, true); got != in {
		t.Errorf("first-message greeting should survive, got %q", got)
	}
}
