package domain

import "time"

// VariantOption is a single selected option on a cart item (e.g. Color).
type VariantOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CartItem is one line of a shared cart. FinalPrice is in minor currency
// units (kobo), matching the storefront.
type CartItem struct {
	Title          string          `json:"product_title"`
	Handle         string          `json:"handle,omitempty"`
	Quantity       int             `json:"quantity"`
	FinalPrice     int64           `json:"final_price"`
	VariantOptions []VariantOption `json:"variant_options,omitempty"`
}

// Cart is an ephemeral shareable snapshot of a shopper's selection. It is
// identified by a short opaque ID embedded in the share URL and expires after
// a configured TTL.
type Cart struct {
	ID         string            `json:"cart_id"`
	Items      []CartItem        `json:"items"`
	UserInfo   map[string]string `json:"user_info,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	ExpiresAt  time.Time         `json:"expires_at"`
	TotalItems int               `json:"total_items"`
	TotalPrice int64             `json:"total_price"`
}

// Expired reports whether the cart is past its expiry at the given instant.
func (c Cart) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// Recalculate recomputes the denormalized totals from the item lines.
// Items with zero quantity count as one, matching the storefront widget.
func (c *Cart) Recalculate() {
	totalItems := 0
	var totalPrice int64
	for _, item := range c.Items {
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}
		totalItems += qty
		totalPrice += item.FinalPrice
	}
	c.TotalItems = totalItems
	c.TotalPrice = totalPrice
}
