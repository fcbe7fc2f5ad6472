package search

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mamatega/assistant/internal/domain"
	"github.com/mamatega/assistant/internal/logger"
	"github.com/mamatega/assistant/internal/metrics"
)

// semanticThreshold is the minimum cosine similarity for a semantic match to
// count as relevant.
const semanticThreshold = 0.1

// Service orchestrates the product-resolution fallback chain:
// fuzzy prefix match, then embedding similarity, then keyword match on
// extracted terms, then keyword match on the raw query. Each strategy
// degrades to an empty list; Search never returns an error.
type Service struct {
	catalog CatalogReader
	embed   Embedder
}

// New creates a search service.
func New(catalog CatalogReader, embed Embedder) *Service {
	return &Service{catalog: catalog, embed: embed}
}

// Search returns up to k products for the query, best match first. The
// result never contains two products with the same dedup key.
func (s *Service) Search(ctx context.Context, query string, k int) []domain.Product {
	log := logger.FromContext(ctx)
	catalog := s.catalog.Products()

	terms := ExtractTerms(query)

	// Strategy 1: fuzzy prefix match catches brand names and partial entry
	// without an embedding round-trip.
	if fuzzy := FuzzySearch(query, catalog, k*2); len(fuzzy) > 0 {
		metrics.SearchStrategyTotal.WithLabelValues("fuzzy").Inc()
		if len(fuzzy) > k {
			fuzzy = fuzzy[:k]
		}
		return fuzzy
	}

	// Strategy 2: embedding similarity over the catalog.
	if results := s.searchSemantic(ctx, query, k, catalog); len(results) > 0 {
		metrics.SearchStrategyTotal.WithLabelValues("semantic").Inc()
		return results
	}

	// Strategy 3: keyword match on the extracted vocabulary terms.
	if len(terms) > 0 {
		results := KeywordSearch(strings.Join(terms, " "), catalog, k)
		s.countKeyword(results, "keyword_terms")
		log.Debug("keyword search on extracted terms",
			zap.Strings("terms", terms), zap.Int("results", len(results)))
		return results
	}

	// Strategy 4: keyword match on the raw query.
	results := KeywordSearch(query, catalog, k)
	s.countKeyword(results, "keyword_raw")
	return results
}

func (s *Service) countKeyword(results []domain.Product, strategy string) {
	if len(results) == 0 {
		strategy = "none"
	}
	metrics.SearchStrategyTotal.WithLabelValues(strategy).Inc()
}

// searchSemantic embeds the query and scores every catalog product by cosine
// similarity. Provider failures and sub-threshold scores both yield an empty
// list so the caller falls through to the keyword strategies.
func (s *Service) searchSemantic(ctx context.Context, query string, k int, catalog []domain.Product) []domain.Product {
	if s.embed == nil || len(catalog) == 0 {
		return nil
	}

	embResult, err := s.embed.Embed(ctx, query)
	if err != nil {
		logger.FromContext(ctx).Warn("embedding failed, falling back to keyword search",
			zap.String("query", query), zap.Error(err))
		return nil
	}

	scored := make([]domain.ScoredProduct, 0, len(catalog))
	for _, p := range catalog {
		if len(p.Embedding) == 0 {
			continue
		}
		scored = append(scored, domain.ScoredProduct{
			Product: p,
			Score:   cosineSimilarity(embResult.Embedding, p.Embedding),
			Match:   domain.MatchSemantic,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > k {
		scored = scored[:k]
	}

	var results []domain.Product
	for _, sp := range scored {
		if sp.Score > semanticThreshold {
			results = append(results, sp.Product)
		}
	}
	return results
}
