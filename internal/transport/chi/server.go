// Package chi exposes the assistant over HTTP: the chat endpoint, shared
// cart endpoints, storefront lookups, and operational endpoints.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mamatega/assistant/internal/domain"
	cartuc "github.com/mamatega/assistant/internal/usecase/cart"
	chatuc "github.com/mamatega/assistant/internal/usecase/chat"
	healthuc "github.com/mamatega/assistant/internal/usecase/health"
	"github.com/mamatega/assistant/internal/version"
)

const maxHandlesPerLookup = 20

// ChatService handles one conversational turn.
type ChatService interface {
	Ask(ctx context.Context, req chatuc.AskRequest) (domain.ChatReply, error)
}

// CartService manages shared cart snapshots.
type CartService interface {
	Save(ctx context.Context, req cartuc.SaveRequest) (domain.Cart, error)
	Get(ctx context.Context, cartID string) (domain.Cart, error)
}

// HealthService aggregates component health.
type HealthService interface {
	Check(ctx context.Context) healthuc.Report
}

// HandleLookup resolves storefront products and vendors.
type HandleLookup interface {
	ProductByHandle(ctx context.Context, handle string) (domain.Product, error)
	ListBrands(ctx context.Context, limit int) ([]string, error)
}

// ModelInfo describes the configured model pair for GET /models.
type ModelInfo struct {
	ChatModel      string `json:"chat_model"`
	EmbeddingModel string `json:"embedding_model"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server routes HTTP requests to the usecase services.
type Server struct {
	chat          ChatService
	cart          CartService
	health        HealthService
	storefront    HandleLookup
	models        ModelInfo
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	chat ChatService,
	cart CartService,
	health HealthService,
	storefront HandleLookup,
	models ModelInfo,
	logger *zap.Logger,
) *Server {
	s := &Server{
		chat:       chat,
		cart:       cart,
		health:     health,
		storefront: storefront,
		models:     models,
		logger:     logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyPrompt, http.StatusBadRequest, "empty_prompt"),
		sentinelHandler(domain.ErrEmptyCart, http.StatusBadRequest, "empty_cart"),
		sentinelHandler(domain.ErrCartNotFound, http.StatusNotFound, "cart_not_found"),
		sentinelHandler(domain.ErrCartExpired, http.StatusGone, "cart_expired"),
		sentinelHandler(domain.ErrCatalogUnavailable, http.StatusServiceUnavailable, "catalog_unavailable"),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, "embedding_provider_error"),
		sentinelHandler(domain.ErrCompletionProviderError, http.StatusBadGateway, "completion_provider_error"),
	}
	return s
}

// Routes registers all handlers on the router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/ask", s.Ask)
	r.Post("/api/cart/create", s.SaveCart)
	r.Get("/cart/{cartID}", s.GetCart)
	r.Get("/api/products_by_handles", s.ProductsByHandles)
	r.Get("/api/brands", s.Brands)
	r.Get("/health", s.HealthCheck)
	r.Get("/models", s.Models)
	r.Get("/metrics", s.Metrics)
}

type askRequest struct {
	Prompt    string           `json:"prompt"`
	History   []domain.Message `json:"history,omitempty"`
	SessionID string           `json:"sessionId,omitempty"`
	ChatID    string           `json:"chatId,omitempty"`
}

// Ask handles POST /ask.
func (s *Server) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	reply, err := s.chat.Ask(r.Context(), chatuc.AskRequest{
		Prompt:    req.Prompt,
		History:   req.History,
		SessionID: req.SessionID,
		ChatID:    req.ChatID,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reply)
}

type saveCartRequest struct {
	ExistingCartID string            `json:"existing_cart_id,omitempty"`
	Items          []domain.CartItem `json:"items"`
	UserInfo       map[string]string `json:"user_info,omitempty"`
}

type saveCartResponse struct {
	CartID   string `json:"cart_id"`
	CartURL  string `json:"cart_url"`
	Expires  string `json:"expires_at"`
	ItemsNum int    `json:"total_items"`
}

// SaveCart handles POST /api/cart/create.
func (s *Server) SaveCart(w http.ResponseWriter, r *http.Request) {
	var req saveCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	cart, err := s.cart.Save(r.Context(), cartuc.SaveRequest{
		ExistingCartID: req.ExistingCartID,
		Items:          req.Items,
		UserInfo:       req.UserInfo,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, saveCartResponse{
		CartID:   cart.ID,
		CartURL:  "/cart/" + cart.ID,
		Expires:  cart.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		ItemsNum: cart.TotalItems,
	})
}

// GetCart handles GET /cart/{cartID}.
func (s *Server) GetCart(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartID")
	if cartID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "Cart ID is required")
		return
	}

	cart, err := s.cart.Get(r.Context(), cartID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

type handleLookupResponse struct {
	Products []domain.Product `json:"products"`
	Missing  []string         `json:"missing,omitempty"`
}

// ProductsByHandles handles GET /api/products_by_handles. Handles are passed
// as a comma-separated query parameter; unknown handles are reported rather
// than failing the whole lookup.
func (s *Server) ProductsByHandles(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("handles")
	if strings.TrimSpace(raw) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "handles query parameter is required")
		return
	}

	var handles []string
	for _, h := range strings.Split(raw, ",") {
		if h = strings.TrimSpace(h); h != "" {
			handles = append(handles, h)
		}
	}
	if len(handles) == 0 || len(handles) > maxHandlesPerLookup {
		writeError(w, http.StatusBadRequest, "bad_request", "handles count must be between 1 and 20")
		return
	}

	resp := handleLookupResponse{Products: []domain.Product{}}
	for _, h := range handles {
		p, err := s.storefront.ProductByHandle(r.Context(), h)
		if err != nil {
			s.logger.Warn("storefront handle lookup failed",
				zap.String("handle", h), zap.Error(err))
			resp.Missing = append(resp.Missing, h)
			continue
		}
		resp.Products = append(resp.Products, p)
	}

	writeJSON(w, http.StatusOK, resp)
}

const defaultBrandLimit = 20

// Brands handles GET /api/brands, listing distinct vendors from the live
// storefront.
func (s *Server) Brands(w http.ResponseWriter, r *http.Request) {
	limit := defaultBrandLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", "limit must be a positive integer")
			return
		}
		limit = n
	}

	brands, err := s.storefront.ListBrands(r.Context(), limit)
	if err != nil {
		s.logger.Warn("storefront brand listing failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "storefront_error", "storefront unavailable")
		return
	}
	if brands == nil {
		brands = []string{}
	}

	writeJSON(w, http.StatusOK, map[string][]string{"brands": brands})
}

type healthResponse struct {
	Status   string            `json:"status"`
	Checks   map[string]string `json:"checks"`
	Products int               `json:"products"`
	Version  string            `json:"version"`
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status:   string(report.Status),
		Checks:   checks,
		Products: report.Products,
		Version:  version.Version,
	})
}

// Models handles GET /models.
func (s *Server) Models(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.models)
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEmptyPrompt,
		domain.ErrEmptyCart,
		domain.ErrCartNotFound,
		domain.ErrCartExpired,
		domain.ErrCatalogUnavailable,
		domain.ErrEmbeddingProviderError,
		domain.ErrCompletionProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
