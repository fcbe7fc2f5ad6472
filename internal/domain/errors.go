package domain

import "errors"

var (
	// ErrCartNotFound signals a missing cart snapshot.
	ErrCartNotFound = errors.New("cart not found")
	// ErrCartExpired signals a cart past its TTL.
	ErrCartExpired = errors.New("cart expired")
	// ErrEmptyCart signals a create/update request with no items.
	ErrEmptyCart = errors.New("no items provided")
	// ErrEmptyPrompt signals an /ask request with a blank prompt.
	ErrEmptyPrompt = errors.New("no prompt received")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrCompletionProviderError signals a chat completion provider failure.
	ErrCompletionProviderError = errors.New("completion provider error")
	// ErrCatalogUnavailable signals that the catalog source could not be read.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)
