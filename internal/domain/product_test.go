package domain

import "testing"

func TestProductKey(t *testing.T) {
	p := Product{Title: "Shea Soap", Handle: "shea-soap"}
	if got := p.Key(); got != "shea-soap" {
		t.Errorf("expected handle as key, got %q", got)
	}
	p.Handle = ""
	if got := p.Key(); got != "Shea Soap" {
		t.Errorf("expected title fallback, got %q", got)
	}
}

func TestMergeProducts_FirstSourceWins(t *testing.T) {
	local := []Product{
		{Title: "Shea Soap", Handle: "shea-soap", Description: "local copy"},
	}
	live := []Product{
		{Title: "Shea Soap (new)", Handle: "shea-soap", Description: "live copy"},
		{Title: "Argan Oil", Handle: "argan-oil"},
	}

	got := MergeProducts(local, live)
	if len(got) != 2 {
		t.Fatalf("expected 2 merged products, got %d", len(got))
	}
	if got[0].Description != "local copy" {
		t.Errorf("expected the first source to win the duplicate, got %q", got[0].Description)
	}
	if got[1].Handle != "argan-oil" {
		t.Errorf("expected the live-only product appended, got %q", got[1].Handle)
	}
}

func TestMergeProducts_TitleFallbackKey(t *testing.T) {
	a := []Product{{Title: "Rose Water"}}
	b := []Product{{Title: "Rose Water"}, {Title: "Rose Oil"}}
	got := MergeProducts(a, b)
	if len(got) != 2 {
		t.Errorf("expected title-keyed dedup, got %d products", len(got))
	}
}

func TestMergeProducts_KeysAreCaseSensitive(t *testing.T) {
	a := []Product{{Title: "Foo Serum", Handle: "Foo"}}
	b := []Product{{Title: "foo serum", Handle: "foo"}}
	got := MergeProducts(a, b)
	if len(got) != 2 {
		t.Errorf("keys differing only by case must stay distinct, got %d products", len(got))
	}
}

func TestMergeProducts_Idempotent(t *testing.T) {
	src := []Product{
		{Title: "A", Handle: "a"},
		{Title: "B", Handle: "b"},
	}
	once := MergeProducts(src)
	twice := MergeProducts(once, once)
	if len(twice) != len(once) {
		t.Errorf("merge not idempotent: %d vs %d", len(twice), len(once))
	}
}
