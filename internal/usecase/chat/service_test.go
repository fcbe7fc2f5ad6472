package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mamatega/assistant/internal/domain"
)

// --- Mocks ---

type mockSearcher struct {
	results []domain.Product
	calls   int
}

func (m *mockSearcher) Search(_ context.Context, _ string, _ int) []domain.Product {
	m.calls++
	return m.results
}

type mockStorefront struct {
	results []domain.Product
	err     error
	calls   int
}

func (m *mockStorefront) SearchProducts(_ context.Context, _ string, _ int) ([]domain.Product, error) {
	m.calls++
	return m.results, m.err
}

type mockCompleter struct {
	reply    string
	err      error
	calls    int
	lastMsgs []domain.Message
}

func (m *mockCompleter) Complete(_ context.Context, messages []domain.Message, _ float32, _ int) (string, error) {
	m.calls++
	m.lastMsgs = messages
	return m.reply, m.err
}

type mockSessions struct {
	stored map[string][]domain.Message
	saved  map[string][]domain.Message
}

func newMockSessions() *mockSessions {
	return &mockSessions{
		stored: make(map[string][]domain.Message),
		saved:  make(map[string][]domain.Message),
	}
}

func (m *mockSessions) History(_ context.Context, key string) ([]domain.Message, error) {
	return m.stored[key], nil
}

func (m *mockSessions) SaveHistory(_ context.Context, key string, history []domain.Message) error {
	m.saved[key] = history
	return nil
}

type mockCatalog struct {
	products []domain.Product
	brands   []string
}

func (m *mockCatalog) Products() []domain.Product { return m.products }

func (m *mockCatalog) Brands(limit int) []string {
	if len(m.brands) > limit {
		return m.brands[:limit]
	}
	return m.brands
}

func newTestService() (*Service, *mockSearcher, *mockStorefront, *mockCompleter, *mockSessions) {
	searcher := &mockSearcher{}
	storefront := &mockStorefront{}
	completer := &mockCompleter{reply: "Here you go!"}
	sessions := newMockSessions()
	catalog := &mockCatalog{
		products: []domain.Product{
			{Title: "Olay Night Cream", Brand: "Olay", Handle: "olay-night"},
			{Title: "Nivea Body Lotion", Brand: "Nivea", Handle: "nivea-lotion"},
		},
		brands: []string{"Olay", "Nivea"},
	}
	svc := New(searcher, storefront, completer, sessions, catalog)
	return svc, searcher, storefront, completer, sessions
}

// --- Tests ---

func TestAsk_EmptyPrompt(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	_, err := svc.Ask(context.Background(), AskRequest{Prompt: "   "})
	if !errors.Is(err, domain.ErrEmptyPrompt) {
		t.Errorf("expected ErrEmptyPrompt, got %v", err)
	}
}

func TestAsk_BrandListSkipsCompletion(t *testing.T) {
	svc, _, _, completer, _ := newTestService()

	reply, err := svc.Ask(context.Background(), AskRequest{Prompt: "what brands do you carry?"})
	if err != nil {
		t.Fatal(err)
	}
	if completer.calls != 0 {
		t.Errorf("completer called %d times for a brand list query, want 0", completer.calls)
	}
	if !strings.Contains(reply.Answer, "Olay") || !strings.Contains(reply.Answer, "Nivea") {
		t.Errorf("expected brand names in answer, got %q", reply.Answer)
	}
}

func TestAsk_BrandCarryKnownBrand(t *testing.T) {
	svc, _, _, completer, _ := newTestService()

	reply, err := svc.Ask(context.Background(), AskRequest{Prompt: "do you carry olay"})
	if err != nil {
		t.Fatal(err)
	}
	if completer.calls != 0 {
		t.Error("completer should not run for a known-brand carry query")
	}
	if !strings.Contains(reply.Answer, "Olay") {
		t.Errorf("expected brand confirmation, got %q", reply.Answer)
	}
	if len(reply.Results) == 0 {
		t.Error("expected brand products in results")
	}
}

func TestAsk_BrandCarryUnknownBrandOffersHandoff(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	reply, err := svc.Ask(context.Background(), AskRequest{Prompt: "do you carry glossier"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(strings.ToLower(reply.Answer), "connect with a team member") {
		t.Errorf("expected a handoff offer, got %q", reply.Answer)
	}
}

func TestAsk_HandoffYesReturnsWhatsAppLink(t *testing.T) {
	svc, _, _, completer, _ := newTestService()

	history := []domain.Message{
		{Role: domain.RoleUser, Content: "do you have the foo thing"},
		{Role: domain.RoleAssistant, Content: "Would you like to connect with a team member on WhatsApp?"},
	}
	reply, err := svc.Ask(context.Background(), AskRequest{Prompt: "yes", History: history})
	if err != nil {
		t.Fatal(err)
	}
	if completer.calls != 0 {
		t.Error("completer should not run on a handoff confirmation")
	}
	if !strings.HasPrefix(reply.WhatsAppURL, "https://wa.me/2348189880899?text=") {
		t.Errorf("unexpected WhatsApp URL %q", reply.WhatsAppURL)
	}
}

func TestAsk_FAQSkipsCompletion(t *testing.T) {
	svc, _, _, completer, _ := newTestService()

	reply, err := svc.Ask(context.Background(), AskRequest{Prompt: "what are your store hours?"})
	if err != nil {
		t.Fatal(err)
	}
	if completer.calls != 0 {
		t.Error("completer should not run for an FAQ")
	}
	if !strings.Contains(reply.Answer, "8:00 AM") {
		t.Errorf("expected store hours, got %q", reply.Answer)
	}
}

func TestAsk_BehaviorRuleSkipsCompletion(t *testing.T) {
	svc, _, _, completer, _ := newTestService()
	rule := BehaviorRule{
		When: "installment payment question",
		Then: "Explain that we accept full payment only, no installments.",
	}
	svc.WithBehaviorRules([]BehaviorRule{rule})

	reply, err := svc.Ask(context.Background(), AskRequest{Prompt: "do you take installment plans?"})
	if err != nil {
		t.Fatal(err)
	}
	if completer.calls != 0 {
		t.Errorf("completer called %d times for a policy rule, want 0", completer.calls)
	}
	if reply.Answer != rule.Then {
		t.Errorf("answer = %q, want the rule outcome", reply.Answer)
	}
}

func TestAsk_ProductIntentMergesSources(t *testing.T) {
	svc, searcher, storefront, _, _ := newTestService()
	searcher.results = []domain.Product{
		{Title: "Shea Soap", Handle: "shea-soap"},
	}
	storefront.results = []domain.Product{
		{Title: "Shea Soap Live", Handle: "shea-soap"}, // duplicate by handle
		{Title: "Charcoal Soap", Handle: "charcoal-soap"},
	}

	reply, err := svc.Ask(context.Background(), AskRequest{Prompt: "do you have black soap"})
	if err != nil {
		t.Fatal(err)
	}
	if storefront.calls != 1 {
		t.Errorf("storefront called %d times, want 1", storefront.calls)
	}
	if len(reply.Results) != 2 {
		t.Fatalf("expected 2 deduplicated results, got %d", len(reply.Results))
	}
	if reply.Results[0].Title != "Shea Soap" {
		t.Errorf("expected local result to win the duplicate, got %q", reply.Results[0].Title)
	}
}

func TestAsk_StorefrontFailureAbsorbed(t *testing.T) {
	svc, searcher, storefront, _, _ := newTestService()
	searcher.results = []domain.Product{{Title: "Shea Soap", Handle: "shea-soap"}}
	storefront.err = errors.New("storefront down")

	reply, err := svc.Ask(context.Background(), AskRequest{Prompt: "do you have black soap"})
	if err != nil {
		t.Fatal(err)
	}
	if len(reply.Results) != 1 {
		t.Errorf("expected local results despite storefront failure, got %d", len(reply.Results))
	}
}

func TestAsk_ResultsCappedAtThree(t *testing.T) {
	svc, searcher, _, _, _ := newTestService()
	searcher.results = []domain.Product{
		{Title: "A", Handle: "a"}, {Title: "B", Handle: "b"},
		{Title: "C", Handle: "c"}, {Title: "D", Handle: "d"},
	}

	reply, err := svc.Ask(context.Background(), AskRequest{Prompt: "do you have black soap"})
	if err != nil {
		t.Fatal(err)
	}
	if len(reply.Results) != 3 {
		t.Errorf("expected 3 results, got %d", len(reply.Results))
	}
}

func TestAsk_NonProductIntentHasNoResults(t *testing.T) {
	svc, searcher, _, _, _ := newTestService()

	reply, err := svc.Ask(context.Background(), AskRequest{Prompt: "tell me a joke"})
	if err != nil {
		t.Fatal(err)
	}
	if searcher.calls != 0 {
		t.Errorf("searcher called %d times for non-product text, want 0", searcher.calls)
	}
	if reply.Results != nil {
		t.Errorf("expected nil results, got %v", reply.Results)
	}
}

func TestAsk_CompletionFailureFallsBack(t *testing.T) {
	svc, _, _, completer, _ := newTestService()
	completer.err = errors.New("provider down")

	reply, err := svc.Ask(context.Background(), AskRequest{Prompt: "tell me a joke"})
	if err != nil {
		t.Fatal(err)
	}
	if reply.Answer != fallbackAnswer {
		t.Errorf("expected fallback answer, got %q", reply.Answer)
	}
}

func TestAsk_HistorySavedWithBothTurns(t *testing.T) {
	svc, _, _, _, sessions := newTestService()

	_, err := svc.Ask(context.Background(), AskRequest{Prompt: "tell me a joke", SessionID: "s1"})
	if err != nil {
		t.Fatal(err)
	}
	saved := sessions.saved["s1"]
	if len(saved) != 2 {
		t.Fatalf("expected 2 saved turns, got %d", len(saved))
	}
	if saved[0].Role != domain.RoleUser || saved[1].Role != domain.RoleAssistant {
		t.Errorf("unexpected roles: %v / %v", saved[0].Role, saved[1].Role)
	}
}

func TestAsk_LongerStoredHistoryWins(t *testing.T) {
	svc, _, _, completer, sessions := newTestService()
	sessions.stored["s1"] = []domain.Message{
		{Role: domain.RoleUser, Content: "first"},
		{Role: domain.RoleAssistant, Content: "reply one"},
		{Role: domain.RoleUser, Content: "second"},
		{Role: domain.RoleAssistant, Content: "reply two"},
	}

	reply, err := svc.Ask(context.Background(), AskRequest{
		Prompt:    "tell me a joke",
		SessionID: "s1",
		History:   []domain.Message{{Role: domain.RoleUser, Content: "first"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	// stored(4) + user + assistant
	if len(reply.History) != 6 {
		t.Errorf("expected 6 turns in history, got %d", len(reply.History))
	}
	if completer.calls != 1 {
		t.Errorf("expected 1 completion, got %d", completer.calls)
	}
}

func TestAsk_NoMatchInstructionInjected(t *testing.T) {
	svc, _, _, completer, _ := newTestService()

	_, err := svc.Ask(context.Background(), AskRequest{Prompt: "do you have black soap"})
	if err != nil {
		t.Fatal(err)
	}
	last := completer.lastMsgs[len(completer.lastMsgs)-1]
	if last.Content != noMatchInstruction {
		t.Errorf("expected no-match instruction as final message, got %q", last.Content)
	}
}

func TestAsk_SessionKeyFallsBackToChatID(t *testing.T) {
	svc, _, _, _, sessions := newTestService()

	_, err := svc.Ask(context.Background(), AskRequest{Prompt: "tell me a joke", ChatID: "c7"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := sessions.saved["c7"]; !ok {
		t.Error("expected history saved under the chat ID")
	}
}
