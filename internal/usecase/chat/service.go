// Package chat orchestrates one /ask turn: canned answers for brand and FAQ
// questions, the product-resolution pipeline for product intents, and an LLM
// completion over the assembled context.
package chat

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/mamatega/assistant/internal/domain"
	"github.com/mamatega/assistant/internal/logger"
	"github.com/mamatega/assistant/internal/usecase/search"
)

const (
	searchK           = 10 // candidates pulled from each source
	resultLimit       = 3  // product cards returned to the widget
	brandListLimit    = 20
	brandMatchLimit   = 5
	diverseCount      = 20 // extra variety for "other types" follow-ups
	historyWindow     = 6  // turns sent to the model verbatim
	summaryThreshold  = 10 // turns before older history is summarized
	summaryTokens     = 150
	summaryTemp       = 0.3
	handoffMarker     = "connect with a team member"
	fallbackAnswer    = "Sorry, something went wrong. Please try again later."
	defaultWhatsApp   = "2348189880899"
	defaultSessionKey = "default"
)

// AskRequest is one inbound chat turn.
type AskRequest struct {
	Prompt    string
	History   []domain.Message
	SessionID string
	ChatID    string
}

// Service handles chat turns.
type Service struct {
	searcher       ProductSearcher
	storefront     Storefront
	completer      Completer
	sessions       HistoryStore
	catalog        CatalogReader
	rules          []BehaviorRule
	temperature    float32
	maxTokens      int
	whatsAppNumber string
}

// New creates a chat service.
func New(
	searcher ProductSearcher,
	storefront Storefront,
	completer Completer,
	sessions HistoryStore,
	catalog CatalogReader,
) *Service {
	return &Service{
		searcher:       searcher,
		storefront:     storefront,
		completer:      completer,
		sessions:       sessions,
		catalog:        catalog,
		temperature:    0.9,
		maxTokens:      1000,
		whatsAppNumber: defaultWhatsApp,
	}
}

// WithCompletion overrides the completion parameters.
func (s *Service) WithCompletion(temperature float32, maxTokens int) *Service {
	if temperature > 0 {
		s.temperature = temperature
	}
	if maxTokens > 0 {
		s.maxTokens = maxTokens
	}
	return s
}

// WithWhatsAppNumber overrides the handoff number.
func (s *Service) WithWhatsAppNumber(number string) *Service {
	if number != "" {
		s.whatsAppNumber = number
	}
	return s
}

// WithBehaviorRules installs the editable prompt-rule table checked after
// the built-in FAQ entries.
func (s *Service) WithBehaviorRules(rules []BehaviorRule) *Service {
	s.rules = rules
	return s
}

// Ask processes one chat turn.
func (s *Service) Ask(ctx context.Context, req AskRequest) (domain.ChatReply, error) {
	log := logger.FromContext(ctx)

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return domain.ChatReply{}, domain.ErrEmptyPrompt
	}
	sessionKey := sessionKeyFor(req)

	// Canned paths first: none of these need a completion.
	if isBrandListQuery(prompt) {
		return s.brandListReply(prompt), nil
	}
	if brand := brandCarryQuery(prompt); brand != "" {
		return s.brandCarryReply(ctx, prompt, brand, req.History), nil
	}
	if reply, ok := s.handoffReply(prompt, req.History); ok {
		return reply, nil
	}
	if answer := faqAnswer(prompt); answer != "" {
		return domain.ChatReply{Answer: answer, Suggestions: Suggestions(prompt)}, nil
	}
	if answer := policyAnswer(s.rules, prompt); answer != "" {
		return domain.ChatReply{Answer: answer, Suggestions: Suggestions(prompt)}, nil
	}

	productIntent := search.IsProductIntent(prompt)

	var merged []domain.Product
	if productIntent {
		merged = s.resolveProducts(ctx, prompt)
	}

	history := s.mergedHistory(ctx, sessionKey, req.History)
	firstMessage := len(history) == 0
	history = append(history, domain.Message{Role: domain.RoleUser, Content: prompt})

	messages := s.buildMessages(ctx, prompt, productIntent, merged, history)

	answer, err := s.completer.Complete(ctx, messages, s.temperature, s.maxTokens)
	if err != nil {
		log.Error("completion failed", zap.Error(err))
		answer = fallbackAnswer
	}
	answer = cleanReply(answer, firstMessage)

	history = append(history, domain.Message{Role: domain.RoleAssistant, Content: answer})
	if err := s.sessions.SaveHistory(ctx, sessionKey, history); err != nil {
		log.Warn("failed to save chat history", zap.String("session", sessionKey), zap.Error(err))
	}

	reply := domain.ChatReply{
		Answer:      answer,
		Suggestions: Suggestions(prompt),
		History:     history,
	}
	if productIntent {
		results := merged
		if len(results) > resultLimit {
			results = results[:resultLimit]
		}
		reply.Results = results
	}
	return reply, nil
}

// resolveProducts runs local search, widens "other types" follow-ups with
// catalog variety, merges in live storefront results, and deduplicates.
func (s *Service) resolveProducts(ctx context.Context, prompt string) []domain.Product {
	log := logger.FromContext(ctx)

	local := s.searcher.Search(ctx, prompt, searchK)

	lower := strings.ToLower(prompt)
	if strings.Contains(lower, "other") || strings.Contains(lower, "types") ||
		strings.Contains(lower, "more") || strings.Contains(lower, "different") {
		catalog := s.catalog.Products()
		n := len(catalog)
		if n > diverseCount {
			n = diverseCount
		}
		local = append(local, catalog[:n]...)
	}

	var live []domain.Product
	if s.storefront != nil {
		var err error
		live, err = s.storefront.SearchProducts(ctx, prompt, searchK)
		if err != nil {
			log.Warn("storefront search failed", zap.Error(err))
			live = nil
		}
	}

	return domain.MergeProducts(local, live)
}

func (s *Service) buildMessages(
	ctx context.Context, prompt string, productIntent bool,
	products []domain.Product, history []domain.Message,
) []domain.Message {
	system := systemPrompt
	if productIntent {
		system += "\n\nRelevant Products:\n" + productContext(products)
	}

	messages := []domain.Message{{Role: domain.RoleSystem, Content: system}}

	if len(history) > summaryThreshold {
		if summary := s.summarize(ctx, history[:len(history)-historyWindow]); summary != "" {
			messages = append(messages, domain.Message{
				Role:    domain.RoleSystem,
				Content: "Conversation summary so far: " + summary,
			})
		}
	}

	start := len(history) - historyWindow
	if start < 0 {
		start = 0
	}
	for _, turn := range history[start:] {
		if turn.Role != "" && turn.Content != "" {
			messages = append(messages, turn)
		}
	}

	lower := strings.ToLower(prompt)
	switch {
	case productIntent && len(products) == 0:
		messages = append(messages, domain.Message{Role: domain.RoleUser, Content: noMatchInstruction})
	case productIntent && strings.Contains(lower, "other"):
		messages = append(messages, domain.Message{Role: domain.RoleUser, Content: otherTypesInstruction})
	case productIntent && bareBrandToken.MatchString(lower):
		messages = append(messages, domain.Message{Role: domain.RoleUser, Content: brandQueryInstruction})
	}

	return messages
}

// summarize condenses older turns into a couple of sentences. Failures are
// absorbed: a missing summary only costs context, not the turn.
func (s *Service) summarize(ctx context.Context, older []domain.Message) string {
	messages := make([]domain.Message, 0, len(older)+1)
	messages = append(messages, domain.Message{
		Role:    domain.RoleSystem,
		Content: "Summarize the following conversation between a user and MamaTega Assistant in 2-3 sentences. Focus on the user's needs, preferences, and any unresolved questions.",
	})
	messages = append(messages, older...)

	summary, err := s.completer.Complete(ctx, messages, summaryTemp, summaryTokens)
	if err != nil {
		logger.FromContext(ctx).Warn("history summarization failed", zap.Error(err))
		return ""
	}
	return strings.TrimSpace(summary)
}

// mergedHistory reconciles stored history with what the widget sent: the
// longer of the two wins, so a cleared widget doesn't truncate the session.
func (s *Service) mergedHistory(ctx context.Context, sessionKey string, fromRequest []domain.Message) []domain.Message {
	stored, err := s.sessions.History(ctx, sessionKey)
	if err != nil {
		logger.FromContext(ctx).Warn("failed to load chat history",
			zap.String("session", sessionKey), zap.Error(err))
		stored = nil
	}
	if len(fromRequest) > len(stored) {
		return append([]domain.Message(nil), fromRequest...)
	}
	return append([]domain.Message(nil), stored...)
}

func (s *Service) brandListReply(prompt string) domain.ChatReply {
	brands := s.catalog.Brands(brandListLimit)

	var answer string
	if len(brands) > 0 {
		shown := brands
		suffix := ""
		if len(shown) > 10 {
			shown = shown[:10]
			suffix = ", and more"
		}
		answer = fmt.Sprintf(
			"We carry brands like %s%s. Would you like to know about a specific one?",
			strings.Join(shown, ", "), suffix,
		)
	} else {
		answer = "I'm sorry, I couldn't find any brands in our catalog right now."
	}

	return domain.ChatReply{Answer: answer, Suggestions: Suggestions(prompt)}
}

func (s *Service) brandCarryReply(
	ctx context.Context, prompt, brand string, history []domain.Message,
) domain.ChatReply {
	catalogBrands := s.catalog.Brands(1000)

	if brandKnown(brand, catalogBrands) {
		var results []domain.Product
		for _, p := range s.catalog.Products() {
			name := p.Brand
			if name == "" {
				name = p.Title
			}
			if strings.Contains(strings.ToLower(name), brand) {
				results = append(results, p)
				if len(results) == brandMatchLimit {
					break
				}
			}
		}
		return domain.ChatReply{
			Answer: fmt.Sprintf("Yes, we carry %s! Would you like to see some products?",
				titleCase(brand)),
			Results:     results,
			Suggestions: Suggestions(prompt),
		}
	}

	// Affirmative after an earlier offer goes straight to WhatsApp.
	lastTurn := ""
	if len(history) > 0 {
		lastTurn = strings.ToLower(history[len(history)-1].Content)
	}
	if strings.Contains(lastTurn, "yes") || strings.Contains(strings.ToLower(prompt), "yes") {
		return s.whatsAppReply(prompt, "Hi MamaTega! I have a question about a brand.")
	}

	return domain.ChatReply{
		Answer: fmt.Sprintf(
			"I couldn't find %s in our online catalog, but we might have it in-store. Would you like to connect with a team member on WhatsApp?",
			titleCase(brand)),
		Suggestions: Suggestions(prompt),
	}
}

// handoffReply catches a bare "yes" after the assistant offered a WhatsApp
// handoff.
func (s *Service) handoffReply(prompt string, history []domain.Message) (domain.ChatReply, bool) {
	if strings.ToLower(strings.TrimSpace(prompt)) != "yes" || len(history) == 0 {
		return domain.ChatReply{}, false
	}
	lastBotMsg := strings.ToLower(history[len(history)-1].Content)
	if !strings.Contains(lastBotMsg, handoffMarker) {
		return domain.ChatReply{}, false
	}
	return s.whatsAppReply(prompt, "Hi MamaTega! I have a question about a product."), true
}

func (s *Service) whatsAppReply(prompt, text string) domain.ChatReply {
	waURL := fmt.Sprintf("https://wa.me/%s?text=%s", s.whatsAppNumber, url.QueryEscape(text))
	return domain.ChatReply{
		Answer:      "Great! You can chat with a team member on WhatsApp here: Link",
		Suggestions: Suggestions(prompt),
		WhatsAppURL: waURL,
	}
}

func sessionKeyFor(req AskRequest) string {
	if req.SessionID != "" {
		return req.SessionID
	}
	if req.ChatID != "" {
		return req.ChatID
	}
	return defaultSessionKey
}
