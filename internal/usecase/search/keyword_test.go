package search

import (
	"testing"

	"github.com/mamatega/assistant/internal/domain"
)

func TestKeywordSearch_AdditiveScoring(t *testing.T) {
	catalog := []domain.Product{
		// Matches "brightening" in title only.
		{Title: "Brightening Toner"},
		// Matches both tokens in title: ranks first.
		{Title: "Brightening Face Serum"},
		// Matches "serum" in description only.
		{Title: "Vitamin C Booster", Description: "a lightweight serum for daily use"},
	}

	got := KeywordSearch("brightening serum", catalog, 10)
	if len(got) != 3 {
		t.Fatalf("expected 3 results, got %d", len(got))
	}
	if got[0].Title != "Brightening Face Serum" {
		t.Errorf("expected two-token title match first, got %q", got[0].Title)
	}
	if got[2].Title != "Vitamin C Booster" {
		t.Errorf("expected description-only match last, got %q", got[2].Title)
	}
}

func TestKeywordSearch_DeduplicatesByTitle(t *testing.T) {
	catalog := []domain.Product{
		{Title: "Shea Soap", Description: "a soap with shea", Tags: []string{"soap"}},
	}
	got := KeywordSearch("shea soap", catalog, 10)
	if len(got) != 1 {
		t.Errorf("expected 1 deduplicated result, got %d", len(got))
	}
}

func TestKeywordSearch_TagMatch(t *testing.T) {
	catalog := []domain.Product{
		{Title: "Daily Defense Bar", Tags: []string{"acne", "cleansing"}},
		{Title: "Night Repair Cream"},
	}
	got := KeywordSearch("acne", catalog, 10)
	if len(got) != 1 || got[0].Title != "Daily Defense Bar" {
		t.Errorf("expected tag match only, got %v", got)
	}
}

func TestKeywordSearch_ShortTokensOnlyMatchAsPhrase(t *testing.T) {
	catalog := []domain.Product{
		{Title: "CC Cream"},
		{Title: "Accent Blush", Description: "cc shade match"},
	}
	// "cc" is below the token length floor, so the token passes are skipped
	// and only the whole-phrase title pass can fire.
	got := KeywordSearch("cc", catalog, 10)
	if len(got) != 2 {
		t.Fatalf("expected 2 phrase matches, got %d", len(got))
	}
}
